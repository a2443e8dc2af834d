package edgar

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// FILING TEXT RETRIEVAL
// =============================================================================

var blankLines = regexp.MustCompile(`\n{3,}`)

// FetchFilingText downloads a filing's primary document and reduces its HTML
// to plain text suitable for the extraction pipeline. Script and style
// content is dropped; runs of blank lines are collapsed.
func (c *Client) FetchFilingText(ctx context.Context, filingURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, filingURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("filing download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("filing download returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse filing HTML: %w", err)
	}

	return FlattenFilingHTML(doc), nil
}

// FlattenFilingHTML converts a parsed filing document to plain text,
// preserving rough block structure so section headings stay on their own
// lines.
func FlattenFilingHTML(doc *goquery.Document) string {
	doc.Find("script, style").Remove()

	var sb strings.Builder
	doc.Find("p, div, td, th, h1, h2, h3, h4, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		// Parent containers repeat their children's text; keep leaf-ish nodes only.
		if s.Children().Length() > 0 && s.Children().Is("p, div, table") {
			return
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})

	text := sb.String()
	if text == "" {
		text = strings.TrimSpace(doc.Text())
	}
	return blankLines.ReplaceAllString(text, "\n\n")
}
