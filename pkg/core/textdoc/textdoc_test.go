package textdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sandbox:/mnt/data/report.pdf", "/mnt/data/report.pdf"},
		{"/tmp/report.pdf", "/tmp/report.pdf"},
		{"report.txt", "report.txt"},
		{"sandbox:relative.pdf", "relative.pdf"},
	}

	for _, tc := range tests {
		if got := CleanPath(tc.input); got != tc.expected {
			t.Errorf("Input %q: expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestExtract_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filing.txt")
	content := "FORM 10-K\nTotal revenue: $1,234.5 million\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != content {
		t.Errorf("expected file content back, got %q", text)
	}
}

func TestExtract_SandboxPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filing.txt")
	if err := os.WriteFile(path, []byte("some filing text"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := Extract("sandbox:" + path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "some filing text") {
		t.Errorf("expected content, got %q", text)
	}
}

func TestExtract_MissingFile(t *testing.T) {
	if _, err := Extract("/nonexistent/report.pdf"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestExtract_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Extract(path); err == nil {
		t.Error("expected an error for an empty extraction result")
	}
}
