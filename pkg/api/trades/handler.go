// Package trades exposes the trade journal over HTTP.
package trades

import (
	"encoding/json"
	"net/http"
	"strconv"

	"investagent/pkg/core/trades"
)

// Handler holds the journal store. Store may be nil when DATABASE_URL is
// not configured; every endpoint then reports unavailability.
type Handler struct {
	Store *trades.Store
}

// NewHandler creates a new trades handler.
func NewHandler(store *trades.Store) *Handler {
	return &Handler{Store: store}
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
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func (h *Handler) unavailable(w http.ResponseWriter) bool {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "trade journal is unavailable: DATABASE_URL is not configured")
		return true
	}
	return false
}

// HandleTrades lists trades (GET, with status/instrument/strategy/limit
// query filters) or opens a new one (POST).
func (h *Handler) HandleTrades(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if h.unavailable(w) {
		return
	}

	switch r.Method {
	case "GET":
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		filter := trades.TradeFilter{
			Status:     r.URL.Query().Get("status"),
			Instrument: r.URL.Query().Get("instrument"),
			Strategy:   r.URL.Query().Get("strategy"),
			Limit:      limit,
		}
		list, err := h.Store.ListTrades(r.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, map[string]interface{}{"trades_count": len(list), "trades": list})

	case "POST":
		var input trades.NewTrade
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		trade, err := h.Store.AddTrade(r.Context(), input)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, trade)

	default:
		writeError(w, http.StatusMethodNotAllowed, "use GET or POST")
	}
}

// HandleTrade fetches one trade by ?id=.
func (h *Handler) HandleTrade(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}
	if h.unavailable(w) {
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	trade, found, err := h.Store.GetTrade(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "trade not found")
		return
	}
	writeJSON(w, trade)
}

type closeRequest struct {
	TradeID    int64   `json:"trade_id"`
	CloseDate  string  `json:"close_date"`
	ClosePrice float64 `json:"close_price"`
}

// HandleClose closes an open trade, computing realized P&L.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	if h.unavailable(w) {
		return
	}

	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trade, found, err := h.Store.CloseTrade(r.Context(), req.TradeID, req.CloseDate, req.ClosePrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "trade not found")
		return
	}
	writeJSON(w, trade)
}

// HandleStatistics aggregates closed-trade performance.
// Optional query parameters: period (month/quarter/year), strategy.
func (h *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}
	if h.unavailable(w) {
		return
	}

	stats, err := h.Store.Statistics(r.Context(), r.URL.Query().Get("period"), r.URL.Query().Get("strategy"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, stats)
}
