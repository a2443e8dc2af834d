package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"investagent/pkg/core/trades"
)

const journalUnavailable = "журнал сделок недоступен: DATABASE_URL не настроен"

func registerJournalTools(r *Registry, deps Deps) {
	r.mustRegister(Tool{
		Name:        "add_trade",
		Description: "Добавляет новую открытую сделку в журнал.",
		Parameters: schema(map[string]interface{}{
			"strategy":      prop("string", "Trading strategy, e.g. Momentum, Value"),
			"trade_type":    prop("string", "Instrument type: Stocks, Options, Futures, Forex, Crypto"),
			"instrument":    prop("string", "Ticker or instrument name, e.g. AAPL"),
			"position_type": prop("string", "Position: long or short"),
			"quantity":      prop("number", "Quantity bought/sold"),
			"open_date":     prop("string", "Open date in YYYY-MM-DD format"),
			"open_price":    prop("number", "Open price"),
		}, "strategy", "trade_type", "instrument", "position_type", "quantity", "open_date", "open_price"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			if deps.Trades == nil {
				return errJSON(journalUnavailable), nil
			}
			var input trades.NewTrade
			if err := json.Unmarshal(args, &input); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			trade, err := deps.Trades.AddTrade(ctx, input)
			if err != nil {
				return errJSON("%v", err), nil
			}
			return okJSON(map[string]interface{}{
				"success":       true,
				"message":       fmt.Sprintf("Сделка #%d успешно добавлена", trade.ID),
				"trade_id":      trade.ID,
				"trade_details": trade,
			}), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "close_trade",
		Description: "Закрывает существующую сделку, вычисляя прибыль/убыток.",
		Parameters: schema(map[string]interface{}{
			"trade_id":    prop("integer", "ID of the trade to close"),
			"close_date":  prop("string", "Close date in YYYY-MM-DD format"),
			"close_price": prop("number", "Close price"),
		}, "trade_id", "close_date", "close_price"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			if deps.Trades == nil {
				return errJSON(journalUnavailable), nil
			}
			var params struct {
				TradeID    int64   `json:"trade_id"`
				CloseDate  string  `json:"close_date"`
				ClosePrice float64 `json:"close_price"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			trade, found, err := deps.Trades.CloseTrade(ctx, params.TradeID, params.CloseDate, params.ClosePrice)
			if err != nil {
				return errJSON("%v", err), nil
			}
			if !found {
				return errJSON("Сделка с ID %d не найдена", params.TradeID), nil
			}
			return okJSON(map[string]interface{}{
				"success":       true,
				"message":       fmt.Sprintf("Сделка #%d успешно закрыта", trade.ID),
				"trade_id":      trade.ID,
				"trade_details": trade,
			}), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "get_trade",
		Description: "Получает информацию о конкретной сделке по ID.",
		Parameters: schema(map[string]interface{}{
			"trade_id": prop("integer", "Trade ID"),
		}, "trade_id"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			if deps.Trades == nil {
				return errJSON(journalUnavailable), nil
			}
			var params struct {
				TradeID int64 `json:"trade_id"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			trade, found, err := deps.Trades.GetTrade(ctx, params.TradeID)
			if err != nil {
				return errJSON("%v", err), nil
			}
			if !found {
				return errJSON("Сделка с ID %d не найдена", params.TradeID), nil
			}
			return okJSON(map[string]interface{}{"success": true, "trade": trade}), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "list_trades",
		Description: "Возвращает список сделок с фильтрами по статусу, инструменту и стратегии.",
		Parameters: schema(map[string]interface{}{
			"status":     prop("string", "Filter by status: open or closed"),
			"instrument": prop("string", "Filter by instrument"),
			"strategy":   prop("string", "Filter by strategy"),
			"limit":      prop("integer", "Maximum trades to return"),
		}),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			if deps.Trades == nil {
				return errJSON(journalUnavailable), nil
			}
			var filter trades.TradeFilter
			if err := json.Unmarshal(args, &filter); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			list, err := deps.Trades.ListTrades(ctx, filter)
			if err != nil {
				return errJSON("%v", err), nil
			}
			return okJSON(map[string]interface{}{
				"success":      true,
				"trades_count": len(list),
				"trades":       list,
			}), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "get_trade_statistics",
		Description: "Статистика по сделкам: количество, процент прибыльных, общая и средняя прибыль, максимальная прибыль и убыток.",
		Parameters: schema(map[string]interface{}{
			"period":   prop("string", "Analysis period: month, quarter, year or all (default all)"),
			"strategy": prop("string", "Filter by strategy"),
		}),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			if deps.Trades == nil {
				return errJSON(journalUnavailable), nil
			}
			var params struct {
				Period   string `json:"period"`
				Strategy string `json:"strategy"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			stats, err := deps.Trades.Statistics(ctx, params.Period, params.Strategy)
			if err != nil {
				return errJSON("%v", err), nil
			}
			period := params.Period
			if period == "" {
				period = "all"
			}
			strategy := params.Strategy
			if strategy == "" {
				strategy = "all"
			}
			return okJSON(map[string]interface{}{
				"success":    true,
				"period":     period,
				"strategy":   strategy,
				"statistics": stats,
			}), nil
		},
	})
}
