// Package models defines the shared value objects produced by the filing
// analysis pipeline. All types here are plain data: constructed once per
// extraction call, JSON-serializable, never mutated after construction.
package models

// Confidence is a coarse reliability tag on an extracted numeric fact.
// "high" means a currency symbol was adjacent to the matched number.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// NumericFact is one quantity extracted from report text.
// Value is already scaled by the detected multiplier (million/billion/...);
// RawValue keeps the original numeric token for audit.
type NumericFact struct {
	Description string     `json:"description"`
	Value       float64    `json:"value"`
	RawValue    string     `json:"raw_value"`
	Confidence  Confidence `json:"confidence"`
}

// SectionMatch is a located financial-statement section.
// Content is a bounded display excerpt, not the full matched region.
type SectionMatch struct {
	Name     string        `json:"section"`
	Content  string        `json:"content"`
	Facts    []NumericFact `json:"numerical_data"`
	Analysis string        `json:"analysis"`
}

// Recommendation is one qualitative conclusion attached to a ReportAnalysis.
type Recommendation struct {
	Recommendation string     `json:"recommendation"`
	Confidence     Confidence `json:"confidence"`
	Reasoning      string     `json:"reasoning"`
}

// ReportAnalysis is the top-level result of analyzing one document.
// Metrics keys are a fixed controlled vocabulary (revenue, net_income, eps);
// unknown concepts are never inserted.
type ReportAnalysis struct {
	CompanyName       string             `json:"company_name"`
	ReportType        string             `json:"report_type"` // 10-K, 10-Q, 8-K or "unknown"
	Period            string             `json:"period"`
	Metrics           map[string]float64 `json:"metrics"`
	SectionsFound     []string           `json:"sections_found"`
	Recommendations   []Recommendation   `json:"recommendations"`
	AnalysisTimestamp string             `json:"analysis_timestamp"` // ISO-8601
}

// Sentiment classifies the tone of the MD&A narrative.
type Sentiment string

const (
	SentimentVeryPositive Sentiment = "very positive"
	SentimentPositive     Sentiment = "positive"
	SentimentNeutral      Sentiment = "neutral"
	SentimentNegative     Sentiment = "negative"
	SentimentVeryNegative Sentiment = "very negative"
)
