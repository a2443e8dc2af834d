// Package textdoc turns downloaded report files into plain text for the
// extraction pipeline. PDF is the primary format; pre-extracted .txt files
// are read directly so fixtures and cached extractions flow through the same
// path.
package textdoc

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// sandboxPrefix appears on file paths produced by some LLM tool calls and
// must be stripped before touching the filesystem.
const sandboxPrefix = "sandbox:"

// CleanPath strips the sandbox scheme prefix, if present.
func CleanPath(path string) string {
	if strings.HasPrefix(path, sandboxPrefix) {
		return strings.TrimPrefix(path, sandboxPrefix)
	}
	return path
}

// Extract reads a report file and returns its plain text. The extension
// picks the extraction method; a missing file or an empty extraction result
// is an error, never an empty success.
func Extract(path string) (string, error) {
	clean := CleanPath(path)

	if _, err := os.Stat(clean); err != nil {
		return "", fmt.Errorf("file not found at %s", clean)
	}

	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(clean)) {
	case ".pdf":
		text, err = extractPDF(clean)
	case ".txt", ".text":
		text, err = readPlain(clean)
	default:
		// Unknown extensions get the PDF reader first, then a plain read.
		text, err = extractPDF(clean)
		if err != nil || text == "" {
			text, err = readPlain(clean)
		}
	}
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("no text extracted from %s", clean)
	}
	return text, nil
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	totalPages := r.NumPage()

	for i := 1; i <= totalPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[TextDoc] page %d of %s: %v", i, path, err)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
