package utils

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSmartParse_ValidJSON(t *testing.T) {
	var parsed map[string]interface{}
	input := `{"ticker": "AAPL", "limit": 5}`

	out, err := SmartParse(input, &parsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != input {
		t.Errorf("valid JSON should pass through unchanged, got %q", out)
	}
	if parsed["ticker"] != "AAPL" {
		t.Errorf("expected ticker AAPL, got %v", parsed["ticker"])
	}
}

func TestSmartParse_RepairsCommonErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"single quotes", `{'ticker': 'TSLA'}`},
		{"trailing comma", `{"ticker": "TSLA",}`},
		{"code fence", "```json\n{\"ticker\": \"TSLA\"}\n```"},
		{"unclosed brace", `{"ticker": "TSLA"`},
	}

	for _, tc := range tests {
		var parsed map[string]interface{}
		if _, err := SmartParse(tc.input, &parsed); err != nil {
			t.Errorf("%s: expected a successful parse, got %v", tc.name, err)
			continue
		}
		if parsed["ticker"] != "TSLA" {
			t.Errorf("%s: expected ticker TSLA, got %v", tc.name, parsed["ticker"])
		}
	}

	t.Log("✅ lenient parsing recovered all malformed inputs")
}

func TestSmartParse_IntoStruct(t *testing.T) {
	var args struct {
		Symbol string `json:"symbol"`
		Days   int    `json:"days"`
	}

	if _, err := SmartParse(`{symbol: "BTCUSDT", days: 30}`, &args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.Symbol != "BTCUSDT" || args.Days != 30 {
		t.Errorf("expected {BTCUSDT 30}, got %+v", args)
	}
}

func TestParseHJSON(t *testing.T) {
	out, err := ParseHJSON(`{
		// lenient input with a comment
		name: Acme
		value: 42
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("ParseHJSON returned invalid JSON: %v", err)
	}
	if parsed["name"] != "Acme" {
		t.Errorf("expected name Acme, got %v", parsed["name"])
	}
}

func TestMustRepairJSON_FallsBackToEmptyObject(t *testing.T) {
	if out := MustRepairJSON(""); out == "" {
		t.Error("expected a non-empty JSON string")
	}
}

func TestCleanMarkdown(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"```markdown\n# Title\n```", "# Title"},
		{"```\n# Title\n```", "# Title"},
		{"# Title", "# Title"},
		{"  # Title  ", "# Title"},
	}

	for _, tc := range tests {
		if got := CleanMarkdown(tc.input); got != tc.expected {
			t.Errorf("CleanMarkdown(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestMarkdownToHTML(t *testing.T) {
	html, err := MarkdownToHTML("# Анализ\n\n- пункт один\n- пункт два")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1>") || !strings.Contains(html, "<li>") {
		t.Errorf("expected rendered heading and list, got %q", html)
	}
}
