// Package market exposes Bybit market data over HTTP.
package market

import (
	"encoding/json"
	"net/http"
	"strconv"

	"investagent/pkg/core/bybit"
)

// Handler holds the Bybit client.
type Handler struct {
	Bybit *bybit.Client
}

// NewHandler creates a new market handler.
func NewHandler(client *bybit.Client) *Handler {
	return &Handler{Bybit: client}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func categoryParam(r *http.Request) string {
	if category := r.URL.Query().Get("category"); category != "" {
		return category
	}
	return "spot"
}

// HandlePrice returns the current quote: GET ?symbol=BTCUSDT&category=spot.
func (h *Handler) HandlePrice(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol query parameter is required")
		return
	}

	ticker, err := h.Bybit.Price(r.Context(), symbol, categoryParam(r))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, ticker)
}

// HandleHistory returns candles: GET ?symbol=&interval=D&days=30&category=spot.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol query parameter is required")
		return
	}
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = "D"
	}
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	history, err := h.Bybit.HistoryRange(r.Context(), symbol, interval, days, categoryParam(r), true)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, history)
}

// HandleSymbols lists trading pairs: GET ?category=spot&limit=50.
func (h *Handler) HandleSymbols(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	tickers, total, err := h.Bybit.Symbols(r.Context(), categoryParam(r), limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, map[string]interface{}{
		"category":        categoryParam(r),
		"total_available": total,
		"symbols":         tickers,
	})
}
