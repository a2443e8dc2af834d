package tools

import (
	"context"
	"encoding/json"
)

func registerMarketTools(r *Registry, deps Deps) {
	categoryProp := prop("string", "Instrument category: spot, linear, inverse or option (default spot)")

	r.mustRegister(Tool{
		Name:        "get_crypto_price",
		Description: "Текущая цена и статистика за 24 часа для криптовалютной пары на Bybit.",
		Parameters: schema(map[string]interface{}{
			"symbol":   prop("string", "Trading pair, e.g. BTCUSDT or BTC/USDT"),
			"category": categoryProp,
		}, "symbol"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				Symbol   string `json:"symbol"`
				Category string `json:"category"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			if params.Category == "" {
				params.Category = "spot"
			}
			ticker, err := deps.Bybit.Price(ctx, params.Symbol, params.Category)
			if err != nil {
				return errJSON("%v", err), nil
			}
			return okJSON(ticker), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "get_crypto_history",
		Description: "Исторические свечи для криптовалютной пары на Bybit за последние N дней.",
		Parameters: schema(map[string]interface{}{
			"symbol":      prop("string", "Trading pair, e.g. BTCUSDT"),
			"interval":    prop("string", "Kline interval: 1,3,5,15,30,60,120,240,360,720,D,W,M (default D)"),
			"days":        prop("integer", "Number of days of history (default 7)"),
			"category":    categoryProp,
			"auto_extend": prop("boolean", "Split long ranges into multiple requests (default true)"),
		}, "symbol"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				Symbol     string `json:"symbol"`
				Interval   string `json:"interval"`
				Days       int    `json:"days"`
				Category   string `json:"category"`
				AutoExtend *bool  `json:"auto_extend"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			if params.Interval == "" {
				params.Interval = "D"
			}
			if params.Category == "" {
				params.Category = "spot"
			}
			autoExtend := true
			if params.AutoExtend != nil {
				autoExtend = *params.AutoExtend
			}
			history, err := deps.Bybit.HistoryRange(ctx, params.Symbol, params.Interval, params.Days, params.Category, autoExtend)
			if err != nil {
				return errJSON("%v", err), nil
			}
			return okJSON(history), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "get_crypto_symbols",
		Description: "Список доступных торговых пар на Bybit с базовой статистикой.",
		Parameters: schema(map[string]interface{}{
			"category": categoryProp,
			"limit":    prop("integer", "Maximum pairs to return (default 50)"),
		}),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				Category string `json:"category"`
				Limit    int    `json:"limit"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			if params.Category == "" {
				params.Category = "spot"
			}
			tickers, total, err := deps.Bybit.Symbols(ctx, params.Category, params.Limit)
			if err != nil {
				return errJSON("%v", err), nil
			}
			return okJSON(map[string]interface{}{
				"category":        params.Category,
				"total_available": total,
				"symbols":         tickers,
			}), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "get_crypto_market_summary",
		Description: "Сводка рынка по нескольким криптовалютным парам за один запрос.",
		Parameters: schema(map[string]interface{}{
			"symbols":  map[string]interface{}{"type": "array", "items": prop("string", "Trading pair"), "description": "Trading pairs, e.g. [\"BTCUSDT\", \"ETHUSDT\"]"},
			"category": categoryProp,
		}, "symbols"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				Symbols  []string `json:"symbols"`
				Category string   `json:"category"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			if params.Category == "" {
				params.Category = "spot"
			}
			summary, notFound, err := deps.Bybit.MarketSummary(ctx, params.Symbols, params.Category)
			if err != nil {
				return errJSON("%v", err), nil
			}
			return okJSON(map[string]interface{}{
				"category":  params.Category,
				"tickers":   summary,
				"not_found": notFound,
			}), nil
		},
	})
}
