package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// =============================================================================
// XBRL COMPANY FACTS
// =============================================================================

// FactValue is one reported value for an XBRL concept.
type FactValue struct {
	Start string  `json:"start,omitempty"`
	End   string  `json:"end,omitempty"`
	Val   float64 `json:"val"`
	FY    int     `json:"fy,omitempty"`
	FP    string  `json:"fp,omitempty"`
	Form  string  `json:"form,omitempty"`
	Filed string  `json:"filed,omitempty"`
}

// ConceptData is the companyconcept response for one taxonomy concept.
type ConceptData struct {
	CIK        int                    `json:"cik"`
	Taxonomy   string                 `json:"taxonomy"`
	Tag        string                 `json:"tag"`
	Label      string                 `json:"label"`
	EntityName string                 `json:"entityName"`
	Units      map[string][]FactValue `json:"units"`
}

// LatestValue is the most recent reported value for a concept with its
// reporting metadata.
type LatestValue struct {
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	EndDate   string  `json:"end_date"`
	StartDate string  `json:"start_date,omitempty"`
	FiledDate string  `json:"filed_date,omitempty"`
	Form      string  `json:"form,omitempty"`
}

// PeriodValue is one point of a concept trend.
type PeriodValue struct {
	Value   float64 `json:"value"`
	EndDate string  `json:"end_date"`
	Form    string  `json:"form,omitempty"`
}

// FetchCompanyConcept retrieves all reported values for one XBRL concept,
// e.g. taxonomy "us-gaap", concept "Revenues" or "NetIncomeLoss".
func (c *Client) FetchCompanyConcept(ctx context.Context, cik, taxonomy, concept string) (*ConceptData, error) {
	body, err := c.get(ctx, fmt.Sprintf(CompanyConceptURL, PadCIK(cik), taxonomy, concept))
	if err != nil {
		return nil, err
	}

	var data ConceptData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse concept response: %w", err)
	}
	return &data, nil
}

// FetchCompanyFacts retrieves the full companyfacts document as raw JSON.
// The document is large and schema-heavy; callers usually want
// FetchCompanyConcept instead.
func (c *Client) FetchCompanyFacts(ctx context.Context, cik string) (json.RawMessage, error) {
	body, err := c.get(ctx, fmt.Sprintf(CompanyFactsURL, PadCIK(cik)))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// LatestFactValue picks the most recently ended value across the concept's
// units. Unit keys are visited in sorted order so the choice is
// deterministic; within a unit, values sort by end date descending.
func LatestFactValue(data *ConceptData) (LatestValue, bool) {
	if data == nil || len(data.Units) == 0 {
		return LatestValue{}, false
	}

	units := make([]string, 0, len(data.Units))
	for unit := range data.Units {
		units = append(units, unit)
	}
	sort.Strings(units)

	for _, unit := range units {
		values := data.Units[unit]
		if len(values) == 0 {
			continue
		}

		sorted := make([]FactValue, len(values))
		copy(sorted, values)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].End > sorted[j].End
		})

		latest := sorted[0]
		return LatestValue{
			Value:     latest.Val,
			Unit:      unit,
			EndDate:   latest.End,
			StartDate: latest.Start,
			FiledDate: latest.Filed,
			Form:      latest.Form,
		}, true
	}

	return LatestValue{}, false
}

// SummarizeConcept returns up to numPeriods of the most recent values per
// unit, in chronological order, for trend display.
func SummarizeConcept(data *ConceptData, numPeriods int) map[string][]PeriodValue {
	result := make(map[string][]PeriodValue)
	if data == nil {
		return result
	}

	for unit, values := range data.Units {
		sorted := make([]FactValue, len(values))
		copy(sorted, values)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].End > sorted[j].End
		})

		if len(sorted) > numPeriods {
			sorted = sorted[:numPeriods]
		}

		// Back to chronological order.
		points := make([]PeriodValue, 0, len(sorted))
		for i := len(sorted) - 1; i >= 0; i-- {
			points = append(points, PeriodValue{
				Value:   sorted[i].Val,
				EndDate: sorted[i].End,
				Form:    sorted[i].Form,
			})
		}
		result[unit] = points
	}

	return result
}
