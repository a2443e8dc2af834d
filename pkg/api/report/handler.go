// Package report exposes the filing-analysis pipeline over HTTP.
package report

import (
	"encoding/json"
	"net/http"

	"investagent/pkg/core/extract"
	"investagent/pkg/core/report"
	"investagent/pkg/core/secapi"
	"investagent/pkg/core/textdoc"
	"investagent/pkg/core/utils"
)

// Handler holds dependencies for analysis endpoints.
type Handler struct {
	Analyzer *report.Analyzer
	SecAPI   *secapi.Client
}

// NewHandler creates a new report handler.
func NewHandler(analyzer *report.Analyzer, secAPI *secapi.Client) *Handler {
	return &Handler{
		Analyzer: analyzer,
		SecAPI:   secAPI,
	}
}

type analyzeRequest struct {
	FilePath string `json:"file_path"`
	Ticker   string `json:"ticker"`
	FormType string `json:"form_type"`
}

type sectionRequest struct {
	FilePath    string `json:"file_path"`
	SectionName string `json:"section_name"`
}

// writeError renders the handler-boundary error payload.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleAnalyze runs the full analysis. The body names either a local file
// or a ticker whose latest filing is downloaded first.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	path := req.FilePath
	if path == "" {
		if req.Ticker == "" {
			writeError(w, http.StatusBadRequest, "file_path or ticker is required")
			return
		}
		form := req.FormType
		if form == "" {
			form = "10-K"
		}
		downloaded, err := h.SecAPI.DownloadRecentFilingPDF(r.Context(), req.Ticker, form)
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		path = downloaded
	}

	analysis, err := h.Analyzer.AnalyzeReport(path)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}

// HandleSection extracts one named section from a local document.
func (h *Handler) HandleSection(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req sectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FilePath == "" || req.SectionName == "" {
		writeError(w, http.StatusBadRequest, "file_path and section_name are required")
		return
	}

	text, err := textdoc.Extract(req.FilePath)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	section, found := extract.LocateSection(text, req.SectionName)
	if !found {
		writeError(w, http.StatusNotFound, "section '"+req.SectionName+"' not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(section)
}

// HandleDigest renders the markdown digest of an analysis.
// ?format=html returns the goldmark rendering instead of raw markdown.
func (h *Handler) HandleDigest(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	path := r.URL.Query().Get("file_path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "file_path query parameter is required")
		return
	}

	analysis, err := h.Analyzer.AnalyzeReport(path)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	digest := report.Summarize(analysis)

	if r.URL.Query().Get("format") == "html" {
		html, err := utils.MarkdownToHTML(digest)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(digest))
}
