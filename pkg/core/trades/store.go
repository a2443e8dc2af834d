// Package trades is the trade journal: a Postgres-backed log of opened and
// closed positions with profit/loss accounting and aggregate statistics.
package trades

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"investagent/pkg/models"
)

const dateLayout = "2006-01-02"

// Store persists journal entries through a shared pgx pool.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time // injectable for tests
}

// NewStore wraps an initialized pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, now: time.Now}
}

// InitSchema creates the trades table if it does not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS trades (
		id BIGSERIAL PRIMARY KEY,
		strategy TEXT NOT NULL,
		trade_type TEXT NOT NULL,
		instrument TEXT NOT NULL,
		position_type TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		open_date DATE NOT NULL,
		open_price DOUBLE PRECISION NOT NULL,
		close_date DATE,
		close_price DOUBLE PRECISION,
		profit_percent DOUBLE PRECISION,
		profit_amount DOUBLE PRECISION,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create trades table: %w", err)
	}
	log.Println("[Trades] schema ready")
	return nil
}

// ParsePositionType normalizes and validates a position type string.
func ParsePositionType(positionType string) (models.PositionType, error) {
	switch models.PositionType(strings.ToLower(strings.TrimSpace(positionType))) {
	case models.PositionLong:
		return models.PositionLong, nil
	case models.PositionShort:
		return models.PositionShort, nil
	default:
		return "", fmt.Errorf("недопустимый тип позиции: %s. Используйте 'long' или 'short'", positionType)
	}
}

// ValidateDate checks the YYYY-MM-DD format used for open and close dates.
func ValidateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("неверный формат даты: %s. Используйте формат YYYY-MM-DD", date)
	}
	return nil
}

// ProfitOnClose computes profit amount and percent for a closing position.
// Long: (close - open) * quantity; short is the inverse.
func ProfitOnClose(positionType models.PositionType, quantity, openPrice, closePrice float64) (amount, percent float64) {
	if positionType == models.PositionShort {
		amount = (openPrice - closePrice) * quantity
		percent = (openPrice - closePrice) / openPrice * 100
		return amount, percent
	}
	amount = (closePrice - openPrice) * quantity
	percent = (closePrice - openPrice) / openPrice * 100
	return amount, percent
}

// NewTrade carries the fields needed to open a journal entry.
type NewTrade struct {
	Strategy     string  `json:"strategy"`
	TradeType    string  `json:"trade_type"`
	Instrument   string  `json:"instrument"`
	PositionType string  `json:"position_type"`
	Quantity     float64 `json:"quantity"`
	OpenDate     string  `json:"open_date"`
	OpenPrice    float64 `json:"open_price"`
}

// AddTrade validates the entry and inserts it as an open position.
func (s *Store) AddTrade(ctx context.Context, input NewTrade) (models.Trade, error) {
	positionType, err := ParsePositionType(input.PositionType)
	if err != nil {
		return models.Trade{}, err
	}
	if err := ValidateDate(input.OpenDate); err != nil {
		return models.Trade{}, err
	}

	trade := models.Trade{
		Strategy:     input.Strategy,
		TradeType:    input.TradeType,
		Instrument:   input.Instrument,
		PositionType: positionType,
		Quantity:     input.Quantity,
		OpenDate:     input.OpenDate,
		OpenPrice:    input.OpenPrice,
		Status:       models.TradeOpen,
	}

	err = s.pool.QueryRow(ctx, `
	INSERT INTO trades (strategy, trade_type, instrument, position_type,
		quantity, open_date, open_price, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, created_at`,
		trade.Strategy, trade.TradeType, trade.Instrument, string(trade.PositionType),
		trade.Quantity, trade.OpenDate, trade.OpenPrice, string(trade.Status),
	).Scan(&trade.ID, &trade.CreatedAt)
	if err != nil {
		return models.Trade{}, fmt.Errorf("failed to insert trade: %w", err)
	}

	log.Printf("[Trades] opened trade #%d %s %s", trade.ID, trade.PositionType, trade.Instrument)
	return trade, nil
}

// CloseTrade closes an open entry, recording the realized profit/loss.
// Returns (zero, false, nil) when no trade has the given id.
func (s *Store) CloseTrade(ctx context.Context, tradeID int64, closeDate string, closePrice float64) (models.Trade, bool, error) {
	if err := ValidateDate(closeDate); err != nil {
		return models.Trade{}, false, err
	}

	trade, found, err := s.GetTrade(ctx, tradeID)
	if err != nil || !found {
		return models.Trade{}, found, err
	}
	if trade.Status == models.TradeClosed {
		return models.Trade{}, true, fmt.Errorf("сделка с ID %d уже закрыта", tradeID)
	}

	amount, percent := ProfitOnClose(trade.PositionType, trade.Quantity, trade.OpenPrice, closePrice)

	_, err = s.pool.Exec(ctx, `
	UPDATE trades
	SET close_date = $1, close_price = $2, profit_percent = $3,
		profit_amount = $4, status = $5
	WHERE id = $6`,
		closeDate, closePrice, percent, amount, string(models.TradeClosed), tradeID)
	if err != nil {
		return models.Trade{}, true, fmt.Errorf("failed to close trade %d: %w", tradeID, err)
	}

	trade.CloseDate = &closeDate
	trade.ClosePrice = &closePrice
	trade.ProfitPercent = &percent
	trade.ProfitAmount = &amount
	trade.Status = models.TradeClosed

	log.Printf("[Trades] closed trade #%d, profit %.2f (%.2f%%)", tradeID, amount, percent)
	return trade, true, nil
}

// GetTrade fetches one entry. Returns (zero, false, nil) when not found.
func (s *Store) GetTrade(ctx context.Context, tradeID int64) (models.Trade, bool, error) {
	row := s.pool.QueryRow(ctx, `
	SELECT id, strategy, trade_type, instrument, position_type, quantity,
		to_char(open_date, 'YYYY-MM-DD'), open_price,
		to_char(close_date, 'YYYY-MM-DD'), close_price,
		profit_percent, profit_amount, status, created_at
	FROM trades WHERE id = $1`, tradeID)

	trade, err := scanTrade(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Trade{}, false, nil
	}
	if err != nil {
		return models.Trade{}, false, fmt.Errorf("failed to fetch trade %d: %w", tradeID, err)
	}
	return trade, true, nil
}

// TradeFilter narrows ListTrades. Zero values mean no filter.
type TradeFilter struct {
	Status     string `json:"status,omitempty"`
	Instrument string `json:"instrument,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// ListTrades returns journal entries, newest first.
func (s *Store) ListTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := `
	SELECT id, strategy, trade_type, instrument, position_type, quantity,
		to_char(open_date, 'YYYY-MM-DD'), open_price,
		to_char(close_date, 'YYYY-MM-DD'), close_price,
		profit_percent, profit_amount, status, created_at
	FROM trades`

	var clauses []string
	var args []interface{}
	addClause := func(column, value string) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Status != "" {
		addClause("status", filter.Status)
	}
	if filter.Instrument != "" {
		addClause("instrument", filter.Instrument)
	}
	if filter.Strategy != "" {
		addClause("strategy", filter.Strategy)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}

// PeriodCutoff maps a named statistics period to an open-date lower bound.
// Unknown or empty periods mean no bound.
func PeriodCutoff(period string, now time.Time) (string, bool) {
	switch period {
	case "month":
		return now.AddDate(0, -1, 0).Format(dateLayout), true
	case "quarter":
		return now.AddDate(0, -3, 0).Format(dateLayout), true
	case "year":
		return now.AddDate(-1, 0, 0).Format(dateLayout), true
	default:
		return "", false
	}
}

// Statistics aggregates closed-trade performance, optionally bounded by a
// named period ("month", "quarter", "year") and a strategy.
func (s *Store) Statistics(ctx context.Context, period, strategy string) (models.TradeStatistics, error) {
	where := "1=1"
	var args []interface{}
	if cutoff, ok := PeriodCutoff(period, s.now()); ok {
		args = append(args, cutoff)
		where += fmt.Sprintf(" AND open_date >= $%d", len(args))
	}
	if strategy != "" {
		args = append(args, strategy)
		where += fmt.Sprintf(" AND strategy = $%d", len(args))
	}

	var stats models.TradeStatistics
	err := s.pool.QueryRow(ctx, fmt.Sprintf(`
	SELECT COUNT(*),
		COUNT(*) FILTER (WHERE status = 'closed' AND profit_amount > 0),
		COUNT(*) FILTER (WHERE status = 'closed' AND profit_amount < 0),
		COALESCE(SUM(profit_amount) FILTER (WHERE status = 'closed'), 0),
		COALESCE(AVG(profit_amount) FILTER (WHERE status = 'closed'), 0),
		COALESCE(AVG(profit_percent) FILTER (WHERE status = 'closed'), 0),
		COALESCE(MAX(profit_amount) FILTER (WHERE status = 'closed'), 0),
		COALESCE(MIN(profit_amount) FILTER (WHERE status = 'closed'), 0)
	FROM trades WHERE %s`, where), args...).Scan(
		&stats.TotalTrades,
		&stats.ProfitableTrades,
		&stats.LosingTrades,
		&stats.TotalProfit,
		&stats.AvgProfit,
		&stats.AvgProfitPercent,
		&stats.MaxProfit,
		&stats.MaxLoss,
	)
	if err != nil {
		return models.TradeStatistics{}, fmt.Errorf("failed to compute statistics: %w", err)
	}

	return FinalizeStatistics(stats), nil
}

// FinalizeStatistics derives closed/open counts and win rate, rounding
// monetary aggregates to two decimals.
func FinalizeStatistics(stats models.TradeStatistics) models.TradeStatistics {
	stats.ClosedTrades = stats.ProfitableTrades + stats.LosingTrades
	stats.OpenTrades = stats.TotalTrades - stats.ClosedTrades
	if stats.ClosedTrades > 0 {
		stats.WinRate = round2(float64(stats.ProfitableTrades) / float64(stats.ClosedTrades) * 100)
	}
	stats.TotalProfit = round2(stats.TotalProfit)
	stats.AvgProfit = round2(stats.AvgProfit)
	stats.AvgProfitPercent = round2(stats.AvgProfitPercent)
	stats.MaxProfit = round2(stats.MaxProfit)
	stats.MaxLoss = round2(stats.MaxLoss)
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (models.Trade, error) {
	var trade models.Trade
	var positionType, status string
	var closeDate *string
	err := row.Scan(
		&trade.ID, &trade.Strategy, &trade.TradeType, &trade.Instrument,
		&positionType, &trade.Quantity, &trade.OpenDate, &trade.OpenPrice,
		&closeDate, &trade.ClosePrice, &trade.ProfitPercent, &trade.ProfitAmount,
		&status, &trade.CreatedAt,
	)
	if err != nil {
		return models.Trade{}, err
	}
	trade.PositionType = models.PositionType(positionType)
	trade.Status = models.TradeStatus(status)
	trade.CloseDate = closeDate
	return trade, nil
}
