// Package edgar provides SEC EDGAR API integration: CIK lookup, company
// submissions, XBRL company facts and concepts, and filing text retrieval.
// API Documentation: https://www.sec.gov/developer
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"investagent/pkg/core/cache"
)

const (
	// SEC EDGAR API endpoints
	SubmissionsURL    = "https://data.sec.gov/submissions/CIK%s.json"
	CompanyFactsURL   = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"
	CompanyConceptURL = "https://data.sec.gov/api/xbrl/companyconcept/CIK%s/%s/%s.json"
	TickerMappingURL  = "https://www.sec.gov/files/company_tickers.json"
	FilingArchiveURL  = "https://www.sec.gov/Archives/edgar/data/%s/%s"

	// Required User-Agent per SEC guidelines
	UserAgent = "InvestAgent/1.0 (contact@example.com)"

	// SEC asks automated clients to stay at or below 10 requests per second.
	requestsPerSecond = 10

	cikCacheTTL = 24 * time.Hour
)

// =============================================================================
// SEC EDGAR DATA TYPES
// =============================================================================

// CompanyInfo represents the top-level company submission response.
type CompanyInfo struct {
	CIK            string   `json:"cik"`
	EntityType     string   `json:"entityType"`
	SIC            string   `json:"sic"`
	SICDescription string   `json:"sicDescription"`
	Name           string   `json:"name"`
	Tickers        []string `json:"tickers"`
	Exchanges      []string `json:"exchanges"`
	Filings        struct {
		Recent RecentFilings `json:"recent"`
	} `json:"filings"`
}

// RecentFilings holds arrays of filing attributes (parallel arrays).
type RecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"` // e.g., "0000320193-24-000012"
	FilingDate      []string `json:"filingDate"`      // e.g., "2024-02-06"
	ReportDate      []string `json:"reportDate"`      // fiscal period end
	Form            []string `json:"form"`            // "10-K", "10-Q", "8-K"
	PrimaryDocument []string `json:"primaryDocument"` // filename
	Size            []int    `json:"size"`            // bytes
}

// Filing is a single SEC filing, denormalized from the parallel arrays.
type Filing struct {
	AccessionNumber string    `json:"accession_number"`
	FilingDate      time.Time `json:"filing_date"`
	ReportDate      time.Time `json:"report_date"`
	FormType        string    `json:"form_type"`
	PrimaryDocument string    `json:"primary_document"`
	Size            int       `json:"size"`
	URL             string    `json:"url"` // constructed download URL
}

// =============================================================================
// SEC EDGAR CLIENT
// =============================================================================

// Client handles SEC EDGAR API requests. All requests pass through a shared
// rate limiter; lookups that rarely change go through the injected cache.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Cache
}

// NewClient creates an EDGAR client. The cache may be nil, in which case
// every lookup hits the network.
func NewClient(c *cache.Cache) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		cache:      c,
	}
}

// PadCIK zero-pads a CIK to the 10 digits the data.sec.gov endpoints expect.
func PadCIK(cik string) string {
	return fmt.Sprintf("%010s", strings.TrimLeft(cik, "0"))
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SEC API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEC API returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// LookupCIK finds the zero-padded CIK for a ticker symbol via the SEC
// ticker mapping file. Results are cached for a day.
func (c *Client) LookupCIK(ctx context.Context, ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	cacheKey := "edgar:cik:" + ticker

	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			return cached.(string), nil
		}
	}

	body, err := c.get(ctx, TickerMappingURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch ticker mapping: %w", err)
	}

	// Response structure: { "0": {"cik_str": 320193, "ticker": "AAPL", "title": "..."}, ... }
	var mapping map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &mapping); err != nil {
		return "", fmt.Errorf("failed to parse ticker mapping: %w", err)
	}

	for _, entry := range mapping {
		if entry.Ticker == ticker {
			cik := fmt.Sprintf("%010d", entry.CIK)
			if c.cache != nil {
				c.cache.Put(cacheKey, cik, cikCacheTTL)
			}
			return cik, nil
		}
	}

	return "", fmt.Errorf("ticker %s not found in SEC database", ticker)
}

// FetchCompanyInfo retrieves company submission data. The CIK is zero-padded
// automatically.
func (c *Client) FetchCompanyInfo(ctx context.Context, cik string) (*CompanyInfo, error) {
	body, err := c.get(ctx, fmt.Sprintf(SubmissionsURL, PadCIK(cik)))
	if err != nil {
		return nil, err
	}

	var info CompanyInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse SEC response: %w", err)
	}
	return &info, nil
}

// Filings extracts filings from submission data, filtered by form type.
// Pass nil formTypes for all types; limit 0 means no limit.
func Filings(info *CompanyInfo, formTypes []string, limit int) []Filing {
	recent := info.Filings.Recent
	filings := make([]Filing, 0)

	formTypeSet := make(map[string]bool)
	for _, ft := range formTypes {
		formTypeSet[ft] = true
	}

	for i := range recent.AccessionNumber {
		if len(formTypes) > 0 && !formTypeSet[recent.Form[i]] {
			continue
		}

		filingDate, _ := time.Parse("2006-01-02", recent.FilingDate[i])
		reportDate, _ := time.Parse("2006-01-02", recent.ReportDate[i])

		// Format: https://www.sec.gov/Archives/edgar/data/{cik}/{accession-no-dashes}/{document}
		accessionNoDashes := strings.ReplaceAll(recent.AccessionNumber[i], "-", "")
		downloadURL := fmt.Sprintf(FilingArchiveURL, info.CIK, accessionNoDashes+"/"+recent.PrimaryDocument[i])

		filings = append(filings, Filing{
			AccessionNumber: recent.AccessionNumber[i],
			FilingDate:      filingDate,
			ReportDate:      reportDate,
			FormType:        recent.Form[i],
			PrimaryDocument: recent.PrimaryDocument[i],
			Size:            recent.Size[i],
			URL:             downloadURL,
		})

		if limit > 0 && len(filings) >= limit {
			break
		}
	}

	return filings
}

// FetchLatestFiling fetches the most recent filing of the given form for a
// ticker, resolving the CIK first.
func (c *Client) FetchLatestFiling(ctx context.Context, ticker, form string) (*Filing, error) {
	cik, err := c.LookupCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}

	info, err := c.FetchCompanyInfo(ctx, cik)
	if err != nil {
		return nil, err
	}

	filings := Filings(info, []string{form}, 1)
	if len(filings) == 0 {
		return nil, fmt.Errorf("no %s filings found for %s", form, ticker)
	}
	return &filings[0], nil
}
