package tools

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"investagent/pkg/core/edgar"
	"investagent/pkg/core/utils"
)

// financialConcepts are the us-gaap concepts surfaced by
// get_company_financials, in display order.
var financialConcepts = []struct {
	Key     string
	Concept string
}{
	{"revenue", "Revenues"},
	{"assets", "Assets"},
	{"liabilities", "Liabilities"},
	{"net_income", "NetIncomeLoss"},
}

const (
	financialsCacheTTL = time.Hour
	trendPeriods       = 4
)

func registerCompanyTools(r *Registry, deps Deps) {
	r.mustRegister(Tool{
		Name:        "get_recent_filings_summary",
		Description: "Возвращает список последних отчетов компании из SEC EDGAR (10-K, 10-Q, 8-K и другие).",
		Parameters: schema(map[string]interface{}{
			"ticker":     prop("string", "Stock ticker, e.g. AAPL"),
			"form_types": map[string]interface{}{"type": "array", "items": prop("string", "Form type filter, e.g. 10-K"), "description": "Optional form type filter"},
			"limit":      prop("integer", "Maximum filings to return (default 5)"),
		}, "ticker"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				Ticker    string   `json:"ticker"`
				FormTypes []string `json:"form_types"`
				Limit     int      `json:"limit"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			if params.Limit <= 0 {
				params.Limit = 5
			}

			cik, err := deps.Edgar.LookupCIK(ctx, params.Ticker)
			if err != nil {
				return errJSON("%v", err), nil
			}
			info, err := deps.Edgar.FetchCompanyInfo(ctx, cik)
			if err != nil {
				return errJSON("%v", err), nil
			}

			return okJSON(map[string]interface{}{
				"ticker":       params.Ticker,
				"cik":          cik,
				"company_name": info.Name,
				"filings":      edgar.Filings(info, params.FormTypes, params.Limit),
				"retrieved_at": time.Now().Format(time.RFC3339),
			}), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "get_company_financials",
		Description: "Получает ключевые финансовые показатели компании из SEC EDGAR XBRL: выручка, активы, обязательства, чистая прибыль.",
		Parameters: schema(map[string]interface{}{
			"ticker": prop("string", "Stock ticker, e.g. AAPL"),
		}, "ticker"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				Ticker string `json:"ticker"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}

			cacheKey := "tools:financials:" + params.Ticker
			if cached, ok := deps.Cache.Get(cacheKey); ok {
				if payload, ok := cached.(string); ok {
					return payload, nil
				}
			}

			cik, err := deps.Edgar.LookupCIK(ctx, params.Ticker)
			if err != nil {
				return errJSON("%v", err), nil
			}

			metrics := make(map[string]interface{}, len(financialConcepts))
			for _, fc := range financialConcepts {
				data, err := deps.Edgar.FetchCompanyConcept(ctx, cik, "us-gaap", fc.Concept)
				if err != nil {
					metrics[fc.Key] = map[string]string{"error": err.Error()}
					continue
				}
				latest, ok := edgar.LatestFactValue(data)
				if !ok {
					metrics[fc.Key] = map[string]string{"error": "no values reported"}
					continue
				}

				entry := map[string]interface{}{
					"latest":    latest,
					"formatted": utils.FormatCurrency(latest.Value, latest.Unit),
				}
				if trend, ok := edgar.SummarizeConcept(data, trendPeriods)[latest.Unit]; ok && len(trend) >= 2 {
					entry["trend"] = trend
					// Skip the growth figure on a zero base: Inf is not
					// representable in the JSON payload.
					if growth := utils.GrowthRate(trend[len(trend)-1].Value, trend[len(trend)-2].Value); !math.IsInf(growth, 0) {
						entry["growth_percent"] = growth
					}
				}
				metrics[fc.Key] = entry
			}

			payload := okJSON(map[string]interface{}{
				"ticker":       params.Ticker,
				"cik":          cik,
				"source":       "SEC EDGAR",
				"metrics":      metrics,
				"retrieved_at": time.Now().Format(time.RFC3339),
			})
			deps.Cache.Put(cacheKey, payload, financialsCacheTTL)
			return payload, nil
		},
	})
}
