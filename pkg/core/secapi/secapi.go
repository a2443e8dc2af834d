// Package secapi wraps the sec-api.io services used to search filings and
// download them as PDF: the Query API for full-text filing search and the
// filing-reader endpoint for HTML-to-PDF conversion.
package secapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	QueryAPIURL = "https://api.sec-api.io"
	PDFAPIURL   = "https://api.sec-api.io/filing-reader"

	// DefaultOutputDir is where downloaded filings are written.
	DefaultOutputDir = "downloaded_filings"
)

// Filing is one search hit from the Query API. Only the fields the agent
// uses are mapped.
type Filing struct {
	ID                  string `json:"id"`
	AccessionNo         string `json:"accessionNo"`
	CompanyName         string `json:"companyName"`
	Ticker              string `json:"ticker"`
	FormType            string `json:"formType"`
	FiledAt             string `json:"filedAt"`
	PeriodOfReport      string `json:"periodOfReport"`
	Description         string `json:"description"`
	LinkToFilingDetails string `json:"linkToFilingDetails"`
}

// SearchResult is the formatted outcome of a filing search.
type SearchResult struct {
	Ticker  string   `json:"ticker"`
	Count   int      `json:"count"`
	Filings []Filing `json:"filings"`
}

// Client talks to sec-api.io. The API key comes from configuration
// (SEC_API_KEY); an empty key fails fast on every call.
type Client struct {
	apiKey     string
	httpClient *http.Client
	outputDir  string
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		outputDir:  DefaultOutputDir,
	}
}

// BuildQuery assembles the Lucene-style query string for the Query API:
// ticker, optional form type, optional filedAt date range.
func BuildQuery(ticker, formType, startDate, endDate string) string {
	query := "ticker:" + ticker
	if formType != "" {
		query += fmt.Sprintf(" AND formType:%q", formType)
	}
	if startDate != "" && endDate != "" {
		query += fmt.Sprintf(" AND filedAt:[%s TO %s]", startDate, endDate)
	}
	return query
}

// QuarterDateRange maps a year and quarter to a filedAt range. Quarter 0
// means the whole year; a year of 0 returns empty bounds (no date filter).
func QuarterDateRange(year, quarter int) (string, string) {
	if year == 0 {
		return "", ""
	}
	switch quarter {
	case 1:
		return fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-03-31", year)
	case 2:
		return fmt.Sprintf("%d-04-01", year), fmt.Sprintf("%d-06-30", year)
	case 3:
		return fmt.Sprintf("%d-07-01", year), fmt.Sprintf("%d-09-30", year)
	case 4:
		return fmt.Sprintf("%d-10-01", year), fmt.Sprintf("%d-12-31", year)
	default:
		return fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-12-31", year)
	}
}

// SearchFilings queries sec-api.io for filings matching the ticker and
// optional filters, newest first.
func (c *Client) SearchFilings(ctx context.Context, ticker, formType, startDate, endDate string, limit int) (*SearchResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("SEC API key is not configured")
	}
	if limit <= 0 {
		limit = 10
	}

	payload := map[string]interface{}{
		"query": BuildQuery(ticker, formType, startDate, endDate),
		"from":  "0",
		"size":  strconv.Itoa(limit),
		"sort":  []map[string]interface{}{{"filedAt": map[string]string{"order": "desc"}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, QueryAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("filing search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("filing search returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Filings []Filing `json:"filings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	log.Printf("[SECAPI] found %d filings for %s", len(parsed.Filings), ticker)
	return &SearchResult{
		Ticker:  ticker,
		Count:   len(parsed.Filings),
		Filings: parsed.Filings,
	}, nil
}

// RecentFiling returns the newest filing of the given form for a ticker.
func (c *Client) RecentFiling(ctx context.Context, ticker, formType string) (*Filing, error) {
	result, err := c.SearchFilings(ctx, ticker, formType, "", "", 1)
	if err != nil {
		return nil, err
	}
	if result.Count == 0 {
		return nil, fmt.Errorf("no %s filings found for %s", formType, ticker)
	}
	return &result.Filings[0], nil
}

// DownloadFilingPDF streams the filing-reader PDF rendition of a filing URL
// into outputDir and returns the written path.
func (c *Client) DownloadFilingPDF(ctx context.Context, filingURL, outputFilename string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("SEC API key is not configured")
	}

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	if outputFilename == "" {
		base := strings.SplitN(filepath.Base(filingURL), ".", 2)[0]
		outputFilename = fmt.Sprintf("%s_%s.pdf", base, time.Now().Format("20060102_150405"))
	}
	outputPath := filepath.Join(c.outputDir, outputFilename)

	params := url.Values{}
	params.Set("token", c.apiKey)
	params.Set("url", filingURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, PDFAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("PDF download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("PDF download returned status %d", resp.StatusCode)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	log.Printf("[SECAPI] downloaded %s", outputPath)
	return outputPath, nil
}

// DownloadRecentFilingPDF finds the newest filing of a form type and
// downloads it as <ticker>_<form>_<filed-date>.pdf.
func (c *Client) DownloadRecentFilingPDF(ctx context.Context, ticker, formType string) (string, error) {
	filing, err := c.RecentFiling(ctx, ticker, formType)
	if err != nil {
		return "", err
	}
	if filing.LinkToFilingDetails == "" {
		return "", fmt.Errorf("no filing URL found for %s (%s)", ticker, formType)
	}

	form := filing.FormType
	if form == "" {
		form = formType
	}
	filedDate := "unknown_date"
	if len(filing.FiledAt) >= 10 {
		filedDate = filing.FiledAt[:10]
	}

	filename := fmt.Sprintf("%s_%s_%s.pdf", ticker, form, filedDate)
	return c.DownloadFilingPDF(ctx, filing.LinkToFilingDetails, filename)
}

// FormatFilingSummary renders one filing as a display line.
func FormatFilingSummary(filing Filing) string {
	formType := filing.FormType
	if formType == "" {
		formType = "Неизвестный тип"
	}
	filedDate := "Неизвестная дата"
	if len(filing.FiledAt) >= 10 {
		filedDate = filing.FiledAt[:10]
	}
	description := filing.Description
	if description == "" {
		description = "Нет описания"
	}

	period := ""
	if filing.PeriodOfReport != "" {
		period = fmt.Sprintf(" за период до %s", filing.PeriodOfReport)
	}

	return fmt.Sprintf("%s от %s%s: %s", formType, filedDate, period, description)
}

// FormatFilingList renders a search result as a numbered display list.
func FormatFilingList(result *SearchResult) string {
	if result.Count == 0 {
		return fmt.Sprintf("Для компании %s не найдено отчетов с указанными параметрами.", result.Ticker)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Найдено %d отчетов для %s:\n\n", result.Count, result.Ticker)
	for i, filing := range result.Filings {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, FormatFilingSummary(filing))
	}
	return sb.String()
}
