package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	RegisterAll(r, Deps{})
	return r
}

func TestRegisterAll_CountAndOrder(t *testing.T) {
	r := newTestRegistry(t)

	expected := []string{
		"analyze_financial_report",
		"extract_specific_section",
		"extract_text_from_document",
		"find_financial_tables",
		"extract_key_metrics",
		"extract_related_keywords",
		"summarize_report",
		"get_and_analyze_latest_report",
		"get_recent_filings_summary",
		"get_company_financials",
		"get_crypto_price",
		"get_crypto_history",
		"get_crypto_symbols",
		"get_crypto_market_summary",
		"add_trade",
		"close_trade",
		"get_trade",
		"list_trades",
		"get_trade_statistics",
	}

	list := r.List()
	if len(list) != len(expected) {
		t.Fatalf("expected %d tools, got %d", len(expected), len(list))
	}
	for i, tool := range list {
		if tool.Name != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], tool.Name)
		}
	}

	t.Log("✅ tool registry holds all bindings in order")
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := NewRegistry()
	tool := Tool{
		Name:       "sample",
		Parameters: schema(nil),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			return "{}", nil
		},
	}

	if err := r.Register(tool); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := r.Register(tool); err == nil {
		t.Error("expected an error on duplicate registration")
	}
	if err := r.Register(Tool{Name: "no-handler"}); err == nil {
		t.Error("expected an error for a tool without a handler")
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	r := newTestRegistry(t)

	out, err := r.Dispatch(t.Context(), "no_such_tool", json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if !strings.Contains(payload["error"], "no_such_tool") {
		t.Errorf("expected the unknown name in the error payload, got %q", out)
	}
}

func TestDispatch_RelatedKeywords(t *testing.T) {
	r := newTestRegistry(t)

	out, err := r.Dispatch(t.Context(), "extract_related_keywords", json.RawMessage(`{"section_name": "revenue"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		Section  string   `json:"section"`
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if payload.Section != "revenue" || len(payload.Keywords) == 0 {
		t.Errorf("expected revenue keywords, got %+v", payload)
	}
}

func TestDispatch_ExtractSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	content := "Consolidated statements of operations. Total revenues: $1,500 million for the year. " +
		"Cost of sales: $800 million in the same period."
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newTestRegistry(t)
	args, _ := json.Marshal(map[string]string{"file_path": path, "section_name": "revenue"})

	out, err := r.Dispatch(t.Context(), "extract_specific_section", args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, `"error"`) {
		t.Fatalf("expected a section payload, got %q", out)
	}
	if !strings.Contains(out, "revenue") {
		t.Errorf("expected the section name in the payload, got %q", out)
	}
}

func TestDispatch_JournalUnavailable(t *testing.T) {
	r := newTestRegistry(t)

	out, err := r.Dispatch(t.Context(), "list_trades", json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "DATABASE_URL") {
		t.Errorf("expected unavailability payload, got %q", out)
	}
}

func TestSpecs(t *testing.T) {
	r := newTestRegistry(t)

	specs := r.Specs()
	if len(specs) != r.Len() {
		t.Fatalf("expected %d specs, got %d", r.Len(), len(specs))
	}
	for _, spec := range specs {
		if spec.Description == "" {
			t.Errorf("tool %s has no description", spec.Name)
		}
		if spec.Parameters["type"] != "object" {
			t.Errorf("tool %s parameters are not an object schema", spec.Name)
		}
	}
}
