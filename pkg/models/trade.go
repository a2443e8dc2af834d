package models

import "time"

// PositionType distinguishes long from short trades.
type PositionType string

const (
	PositionLong  PositionType = "long"
	PositionShort PositionType = "short"
)

// TradeStatus tracks whether a journal entry is still open.
type TradeStatus string

const (
	TradeOpen   TradeStatus = "open"
	TradeClosed TradeStatus = "closed"
)

// Trade is one entry in the trade journal.
// Close fields stay nil while the position is open.
type Trade struct {
	ID            int64        `json:"id"`
	Strategy      string       `json:"strategy"`
	TradeType     string       `json:"trade_type"` // Stocks, Options, Futures, Crypto, ...
	Instrument    string       `json:"instrument"`
	PositionType  PositionType `json:"position_type"`
	Quantity      float64      `json:"quantity"`
	OpenDate      string       `json:"open_date"` // YYYY-MM-DD
	OpenPrice     float64      `json:"open_price"`
	CloseDate     *string      `json:"close_date,omitempty"`
	ClosePrice    *float64     `json:"close_price,omitempty"`
	ProfitPercent *float64     `json:"profit_percent,omitempty"`
	ProfitAmount  *float64     `json:"profit_amount,omitempty"`
	Status        TradeStatus  `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

// TradeStatistics aggregates closed-trade performance.
type TradeStatistics struct {
	TotalTrades      int     `json:"total_trades"`
	ClosedTrades     int     `json:"closed_trades"`
	OpenTrades       int     `json:"open_trades"`
	ProfitableTrades int     `json:"profitable_trades"`
	LosingTrades     int     `json:"losing_trades"`
	WinRate          float64 `json:"win_rate"`
	TotalProfit      float64 `json:"total_profit"`
	AvgProfit        float64 `json:"avg_profit"`
	AvgProfitPercent float64 `json:"avg_profit_percent"`
	MaxProfit        float64 `json:"max_profit"`
	MaxLoss          float64 `json:"max_loss"`
}
