// Package bybit is a client for the Bybit V5 public market-data API:
// tickers, klines, and multi-symbol summaries. Transport failures retry with
// linear backoff; Bybit-level errors (retCode != 0) do not retry.
package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	MainnetURL = "https://api.bybit.com"
	TestnetURL = "https://api-testnet.bybit.com"

	MaxRetries = 3
	RetryDelay = time.Second

	// maxKlinesPerRequest is Bybit's per-request candle cap.
	maxKlinesPerRequest = 1000
	// maxAutoExtendRequests bounds the chunked fetch for long ranges.
	maxAutoExtendRequests = 5
)

// ValidIntervals are the kline intervals Bybit accepts (minutes, or D/W/M).
var ValidIntervals = []string{"1", "3", "5", "15", "30", "60", "120", "240", "360", "720", "D", "W", "M"}

// ValidCategories are the instrument categories.
var ValidCategories = []string{"spot", "linear", "inverse", "option"}

// Client talks to the Bybit V5 market endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sleep      func(time.Duration) // injectable for tests
}

// NewClient selects mainnet or testnet.
func NewClient(testnet bool) *Client {
	base := MainnetURL
	if testnet {
		base = TestnetURL
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		sleep:      time.Sleep,
	}
}

// FormatSymbol normalizes a trading-pair symbol: upper-case, separators
// removed ("btc/usdt" -> "BTCUSDT").
func FormatSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, sep := range []string{"/", "-", "_"} {
		symbol = strings.ReplaceAll(symbol, sep, "")
	}
	return symbol
}

// ValidateCategory checks an instrument category.
func ValidateCategory(category string) error {
	for _, valid := range ValidCategories {
		if category == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid category %q, valid options: %s", category, strings.Join(ValidCategories, ", "))
}

// ValidateInterval checks a kline interval.
func ValidateInterval(interval string) error {
	for _, valid := range ValidIntervals {
		if interval == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid interval %q, valid options: %s", interval, strings.Join(ValidIntervals, ", "))
}

// CandlesNeeded estimates how many candles a days-long range produces at a
// given interval.
func CandlesNeeded(days int, interval string) int {
	totalMinutes := days * 24 * 60

	switch interval {
	case "1":
		return totalMinutes
	case "3", "5", "15", "30", "60", "120", "240", "360", "720":
		var m int
		fmt.Sscanf(interval, "%d", &m)
		return totalMinutes / m
	case "D":
		return days
	case "W":
		return days / 7
	case "M":
		return days / 30
	default:
		return days
	}
}

type apiResponse struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
}

// request performs a GET with bounded linear-backoff retry on transport
// errors. An API-level error aborts immediately.
func (c *Client) request(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt == MaxRetries-1 {
				break
			}
			log.Printf("[Bybit] request failed (attempt %d/%d): %v", attempt+1, MaxRetries, err)
			c.sleep(RetryDelay * time.Duration(attempt+1))
			continue
		}

		body := resp.Body
		var parsed apiResponse
		decodeErr := json.NewDecoder(body).Decode(&parsed)
		body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("bybit returned status %d", resp.StatusCode)
			if attempt == MaxRetries-1 {
				break
			}
			c.sleep(RetryDelay * time.Duration(attempt+1))
			continue
		}
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to parse bybit response: %w", decodeErr)
		}
		if parsed.RetCode != 0 {
			return nil, fmt.Errorf("bybit API error: %s", parsed.RetMsg)
		}
		return parsed.Result, nil
	}

	return nil, fmt.Errorf("failed to connect to Bybit API after %d attempts: %v", MaxRetries, lastErr)
}

// Ticker is one /v5/market/tickers entry in display form.
type Ticker struct {
	Symbol                string `json:"symbol"`
	Category              string `json:"category"`
	LastPrice             string `json:"last_price"`
	BidPrice              string `json:"bid_price,omitempty"`
	AskPrice              string `json:"ask_price,omitempty"`
	High24h               string `json:"high_24h"`
	Low24h                string `json:"low_24h"`
	Volume24h             string `json:"volume_24h"`
	Turnover24h           string `json:"turnover_24h,omitempty"`
	PriceChange24hPercent string `json:"price_change_24h_percent"`
	PrevPrice24h          string `json:"prev_price_24h,omitempty"`
}

type rawTicker struct {
	Symbol        string `json:"symbol"`
	LastPrice     string `json:"lastPrice"`
	Bid1Price     string `json:"bid1Price"`
	Ask1Price     string `json:"ask1Price"`
	HighPrice24h  string `json:"highPrice24h"`
	LowPrice24h   string `json:"lowPrice24h"`
	Volume24h     string `json:"volume24h"`
	Turnover24h   string `json:"turnover24h"`
	Price24hPcnt  string `json:"price24hPcnt"`
	PrevPrice24h  string `json:"prevPrice24h"`
}

func (t rawTicker) toTicker(category string) Ticker {
	return Ticker{
		Symbol:                t.Symbol,
		Category:              category,
		LastPrice:             t.LastPrice,
		BidPrice:              t.Bid1Price,
		AskPrice:              t.Ask1Price,
		High24h:               t.HighPrice24h,
		Low24h:                t.LowPrice24h,
		Volume24h:             t.Volume24h,
		Turnover24h:           t.Turnover24h,
		PriceChange24hPercent: t.Price24hPcnt,
		PrevPrice24h:          t.PrevPrice24h,
	}
}

func (c *Client) fetchTickers(ctx context.Context, category, symbol string) ([]rawTicker, error) {
	params := url.Values{}
	params.Set("category", category)
	if symbol != "" {
		params.Set("symbol", symbol)
	}

	result, err := c.request(ctx, "/v5/market/tickers", params)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		List []rawTicker `json:"list"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse tickers: %w", err)
	}
	return parsed.List, nil
}

// Price fetches the current quote for one symbol.
func (c *Client) Price(ctx context.Context, symbol, category string) (Ticker, error) {
	symbol = FormatSymbol(symbol)
	if err := ValidateCategory(category); err != nil {
		return Ticker{}, err
	}

	list, err := c.fetchTickers(ctx, category, symbol)
	if err != nil {
		return Ticker{}, err
	}
	if len(list) == 0 {
		return Ticker{}, fmt.Errorf("no quote found for %s in category %s", symbol, category)
	}
	return list[0].toTicker(category), nil
}

// Symbols lists up to limit trading pairs in a category with basic stats.
// The second return is the total number available.
func (c *Client) Symbols(ctx context.Context, category string, limit int) ([]Ticker, int, error) {
	if err := ValidateCategory(category); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}

	list, err := c.fetchTickers(ctx, category, "")
	if err != nil {
		return nil, 0, err
	}

	total := len(list)
	if len(list) > limit {
		list = list[:limit]
	}

	tickers := make([]Ticker, 0, len(list))
	for _, t := range list {
		tickers = append(tickers, t.toTicker(category))
	}
	return tickers, total, nil
}

// MarketSummary fetches quotes for a set of symbols in one pass. Returns the
// found tickers and the symbols that had no quote.
func (c *Client) MarketSummary(ctx context.Context, symbols []string, category string) ([]Ticker, []string, error) {
	if len(symbols) == 0 {
		return nil, nil, fmt.Errorf("symbol list is empty")
	}
	if err := ValidateCategory(category); err != nil {
		return nil, nil, err
	}

	wanted := make(map[string]bool, len(symbols))
	normalized := make([]string, 0, len(symbols))
	for _, s := range symbols {
		formatted := FormatSymbol(s)
		if formatted == "" {
			continue
		}
		wanted[formatted] = true
		normalized = append(normalized, formatted)
	}

	list, err := c.fetchTickers(ctx, category, "")
	if err != nil {
		return nil, nil, err
	}

	found := make(map[string]bool)
	var summary []Ticker
	for _, t := range list {
		if wanted[t.Symbol] {
			summary = append(summary, t.toTicker(category))
			found[t.Symbol] = true
		}
	}

	var notFound []string
	for _, s := range normalized {
		if !found[s] {
			notFound = append(notFound, s)
		}
	}
	return summary, notFound, nil
}
