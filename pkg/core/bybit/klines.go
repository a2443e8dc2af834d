package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Kline is one candle in display form, chronologically sortable by
// Timestamp (milliseconds).
type Kline struct {
	Timestamp  int64  `json:"timestamp"`
	Datetime   string `json:"datetime"`
	OpenPrice  string `json:"open_price"`
	HighPrice  string `json:"high_price"`
	LowPrice   string `json:"low_price"`
	ClosePrice string `json:"close_price"`
	Volume     string `json:"volume"`
	Turnover   string `json:"turnover"`
}

// History is the result of a kline fetch.
type History struct {
	Symbol           string  `json:"symbol"`
	Category         string  `json:"category"`
	Interval         string  `json:"interval"`
	PeriodDays       int     `json:"period_days"`
	DataCount        int     `json:"data_count"`
	Klines           []Kline `json:"klines"`
	AutoExtendUsed   bool    `json:"auto_extend_used"`
	EstimatedCandles int     `json:"estimated_candles,omitempty"`
}

// FormatKlines converts raw Bybit kline rows ([ts, open, high, low, close,
// volume, turnover] as strings) into display candles in chronological order.
// Rows with an unparsable timestamp are dropped.
func FormatKlines(rows [][]string) []Kline {
	klines := make([]Kline, 0, len(rows))
	for _, row := range rows {
		if len(row) < 7 {
			continue
		}
		ts, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			continue
		}
		klines = append(klines, Kline{
			Timestamp:  ts,
			Datetime:   time.UnixMilli(ts).Format(time.RFC3339),
			OpenPrice:  row[1],
			HighPrice:  row[2],
			LowPrice:   row[3],
			ClosePrice: row[4],
			Volume:     row[5],
			Turnover:   row[6],
		})
	}

	sort.Slice(klines, func(i, j int) bool { return klines[i].Timestamp < klines[j].Timestamp })
	return klines
}

// DedupeKlines drops rows that repeat a timestamp, keeping the last seen.
func DedupeKlines(rows [][]string) [][]string {
	seen := make(map[string]int)
	var out [][]string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if idx, ok := seen[row[0]]; ok {
			out[idx] = row
			continue
		}
		seen[row[0]] = len(out)
		out = append(out, row)
	}
	return out
}

func (c *Client) fetchKlines(ctx context.Context, category, symbol, interval string, start, end int64) ([][]string, error) {
	params := url.Values{}
	params.Set("category", category)
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("start", strconv.FormatInt(start, 10))
	params.Set("end", strconv.FormatInt(end, 10))
	params.Set("limit", strconv.Itoa(maxKlinesPerRequest))

	result, err := c.request(ctx, "/v5/market/kline", params)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		List [][]string `json:"list"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse klines: %w", err)
	}
	return parsed.List, nil
}

// HistoryRange fetches candles for the last days days. With autoExtend the
// range is split into up to five chunked requests when its estimated candle
// count exceeds the per-request cap; otherwise a single capped request is
// made.
func (c *Client) HistoryRange(ctx context.Context, symbol, interval string, days int, category string, autoExtend bool) (*History, error) {
	symbol = FormatSymbol(symbol)
	if err := ValidateCategory(category); err != nil {
		return nil, err
	}
	if err := ValidateInterval(interval); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 7
	}

	endTime := time.Now()
	startTime := endTime.AddDate(0, 0, -days)
	estimated := CandlesNeeded(days, interval)
	extend := autoExtend && estimated > maxKlinesPerRequest

	var rows [][]string
	if extend {
		requestsNeeded := (estimated + maxKlinesPerRequest - 1) / maxKlinesPerRequest
		if requestsNeeded > maxAutoExtendRequests {
			requestsNeeded = maxAutoExtendRequests
		}
		log.Printf("[Bybit] ~%d candles needed for %s, splitting into %d requests", estimated, symbol, requestsNeeded)

		chunk := endTime.Sub(startTime) / time.Duration(requestsNeeded)
		for i := 0; i < requestsNeeded; i++ {
			chunkEnd := endTime.Add(-chunk * time.Duration(i))
			chunkStart := chunkEnd.Add(-chunk)

			part, err := c.fetchKlines(ctx, category, symbol, interval, chunkStart.UnixMilli(), chunkEnd.UnixMilli())
			if err != nil {
				log.Printf("[Bybit] chunk %d/%d failed: %v", i+1, requestsNeeded, err)
				continue
			}
			rows = append(rows, part...)
		}
		rows = DedupeKlines(rows)
	} else {
		var err error
		rows, err = c.fetchKlines(ctx, category, symbol, interval, startTime.UnixMilli(), endTime.UnixMilli())
		if err != nil {
			return nil, err
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no historical data found for %s", symbol)
	}

	klines := FormatKlines(rows)
	return &History{
		Symbol:           symbol,
		Category:         category,
		Interval:         interval,
		PeriodDays:       days,
		DataCount:        len(klines),
		Klines:           klines,
		AutoExtendUsed:   extend,
		EstimatedCandles: estimated,
	}, nil
}
