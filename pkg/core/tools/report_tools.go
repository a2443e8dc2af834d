package tools

import (
	"context"
	"encoding/json"

	"investagent/pkg/core/extract"
	"investagent/pkg/core/report"
	"investagent/pkg/core/textdoc"
)

const textPreviewLimit = 5000

func registerReportTools(r *Registry, deps Deps) {
	filePathProps := map[string]interface{}{
		"file_path": prop("string", "Path to the report file (PDF or plain text)"),
	}

	r.mustRegister(Tool{
		Name:        "analyze_financial_report",
		Description: "Полный анализ финансового отчета: тип отчета, период, ключевые метрики, найденные разделы и рекомендации.",
		Parameters:  schema(filePathProps, "file_path"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				FilePath string `json:"file_path"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			analysis, err := deps.Analyzer.AnalyzeReport(params.FilePath)
			if err != nil {
				return errJSON("%v", err), nil
			}
			return okJSON(analysis), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "extract_specific_section",
		Description: "Извлекает конкретный раздел отчета (assets, liabilities, equity, revenue, income, cash_flow, balance_sheet, income_statement или произвольное название) с числовыми данными и анализом.",
		Parameters: schema(map[string]interface{}{
			"file_path":    prop("string", "Path to the report file"),
			"section_name": prop("string", "Section to extract, e.g. balance_sheet"),
		}, "file_path", "section_name"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				FilePath    string `json:"file_path"`
				SectionName string `json:"section_name"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			text, err := textdoc.Extract(params.FilePath)
			if err != nil {
				return errJSON("%v", err), nil
			}
			section, found := extract.LocateSection(text, params.SectionName)
			if !found {
				return errJSON("Раздел '%s' не найден в документе", params.SectionName), nil
			}
			return okJSON(section), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "extract_text_from_document",
		Description: "Извлекает текст из документа (PDF или текстовый файл) для дальнейшего анализа.",
		Parameters:  schema(filePathProps, "file_path"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				FilePath string `json:"file_path"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			text, err := textdoc.Extract(params.FilePath)
			if err != nil {
				return errJSON("%v", err), nil
			}
			preview := text
			truncated := false
			if len(preview) > textPreviewLimit {
				preview = preview[:textPreviewLimit] + "..."
				truncated = true
			}
			return okJSON(map[string]interface{}{
				"text_length": len(text),
				"truncated":   truncated,
				"text":        preview,
			}), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "find_financial_tables",
		Description: "Находит основные финансовые отчеты в документе: отчет о прибылях и убытках, баланс, отчет о движении денежных средств, отчет об изменениях капитала.",
		Parameters:  schema(filePathProps, "file_path"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				FilePath string `json:"file_path"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			text, err := textdoc.Extract(params.FilePath)
			if err != nil {
				return errJSON("%v", err), nil
			}
			sections := report.FindFinancialTables(text)
			return okJSON(map[string]interface{}{
				"sections_found": report.StatementNames(sections),
				"sections":       sections,
			}), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "extract_key_metrics",
		Description: "Извлекает ключевые финансовые метрики (выручка, чистая прибыль, EPS) из отчета.",
		Parameters:  schema(filePathProps, "file_path"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				FilePath string `json:"file_path"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			text, err := textdoc.Extract(params.FilePath)
			if err != nil {
				return errJSON("%v", err), nil
			}
			return okJSON(map[string]interface{}{
				"metrics": report.ExtractKeyMetrics(text),
			}), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "extract_related_keywords",
		Description: "Возвращает список синонимов и связанных терминов для раздела финансового отчета.",
		Parameters: schema(map[string]interface{}{
			"section_name": prop("string", "Section name, e.g. revenue"),
		}, "section_name"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				SectionName string `json:"section_name"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			return okJSON(map[string]interface{}{
				"section":  params.SectionName,
				"keywords": extract.RelatedKeywords(params.SectionName),
			}), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "summarize_report",
		Description: "Готовит краткий дайджест анализа отчета в формате markdown.",
		Parameters:  schema(filePathProps, "file_path"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				FilePath string `json:"file_path"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			analysis, err := deps.Analyzer.AnalyzeReport(params.FilePath)
			if err != nil {
				return errJSON("%v", err), nil
			}
			return report.Summarize(analysis), nil
		},
	})

	r.mustRegister(Tool{
		Name:        "get_and_analyze_latest_report",
		Description: "Скачивает последний отчет компании (10-K или 10-Q) через sec-api.io (или напрямую с SEC EDGAR) и сразу анализирует его.",
		Parameters: schema(map[string]interface{}{
			"ticker":    prop("string", "Stock ticker, e.g. AAPL"),
			"form_type": prop("string", "Form type: 10-K or 10-Q (default 10-K)"),
		}, "ticker"),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var params struct {
				Ticker   string `json:"ticker"`
				FormType string `json:"form_type"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return errJSON("invalid arguments: %v", err), nil
			}
			if params.FormType == "" {
				params.FormType = "10-K"
			}
			path, err := deps.SecAPI.DownloadRecentFilingPDF(ctx, params.Ticker, params.FormType)
			if err == nil {
				analysis, aerr := deps.Analyzer.AnalyzeReport(path)
				if aerr != nil {
					return errJSON("%v", aerr), nil
				}
				return okJSON(map[string]interface{}{
					"file_path": path,
					"source":    "sec-api.io",
					"analysis":  analysis,
					"summary":   report.Summarize(analysis),
				}), nil
			}

			// Without a sec-api.io key (or on a download failure) fall back to
			// the filing's primary document on SEC EDGAR.
			filing, ferr := deps.Edgar.FetchLatestFiling(ctx, params.Ticker, params.FormType)
			if ferr != nil {
				return errJSON("%v; EDGAR fallback: %v", err, ferr), nil
			}
			text, ferr := deps.Edgar.FetchFilingText(ctx, filing.URL)
			if ferr != nil {
				return errJSON("%v; EDGAR fallback: %v", err, ferr), nil
			}
			analysis, aerr := deps.Analyzer.AnalyzeText(text)
			if aerr != nil {
				return errJSON("%v", aerr), nil
			}
			return okJSON(map[string]interface{}{
				"filing_url": filing.URL,
				"source":     "edgar",
				"analysis":   analysis,
				"summary":    report.Summarize(analysis),
			}), nil
		},
	})
}
