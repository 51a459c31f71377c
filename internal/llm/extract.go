package llm

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// Extraction is the structured profile an extraction completion returns.
// Its contents are untrusted until FixRanges has run.
type Extraction struct {
	Demographics models.Demographics `json:"demographics"`
	Preferences  models.Preferences  `json:"preferences"`
	Summary      string              `json:"summary"`
	Lifestyle    models.Lifestyle    `json:"lifestyle"`
}

// ParseExtraction pulls the JSON object out of content and decodes it.
func ParseExtraction(content string) (*Extraction, error) {
	raw, err := ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var e Extraction
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("unmarshal extraction: %w", err)
	}
	return &e, nil
}

// Rent-to-income rule: a tenant earns three times the annual rent, and the
// band extends 50% above that.
const (
	incomeRentMultiple = 3 * 12
	incomeBandSpread   = 1.5
)

// FixRanges repairs the demographic ranges of an extraction. rent is the
// property's target rent band and may be nil.
//
// Income: a reversed band is swapped; a missing max is derived (2× min, or
// 1.5× the rent-derived income when a rent is known); a band of two zeros is
// derived entirely from rent when one is known. Age: a reversed band is
// swapped, and a band with a zero bound is dropped so it counts as absent.
func FixRanges(e *Extraction, rent *models.RentRange) {
	if r := e.Demographics.IncomeRange; r != nil {
		fixIncome(r, monthlyRent(rent))
		if r.Min == 0 && r.Max == 0 {
			e.Demographics.IncomeRange = nil
		}
	}

	if r := e.Demographics.AgeRange; r != nil {
		if r.Min > r.Max && r.Max > 0 {
			r.Min, r.Max = r.Max, r.Min
		}
		if r.Min <= 0 || r.Max <= 0 {
			e.Demographics.AgeRange = nil
		}
	}
}

func fixIncome(r *models.Range, rent float64) {
	sensibleMax := r.Min * 2
	if rent > 0 {
		sensibleMax = math.Max(rent*incomeRentMultiple*incomeBandSpread, r.Min*incomeBandSpread)
	}

	switch {
	case r.Min > 0 && r.Max == 0:
		r.Max = sensibleMax
	case r.Min > r.Max && r.Min > 0:
		r.Min, r.Max = r.Max, r.Min
	case r.Min == 0 && r.Max == 0 && rent > 0:
		r.Min = rent * incomeRentMultiple
		r.Max = r.Min * incomeBandSpread
	}
}

// monthlyRent prefers the top of the target band.
func monthlyRent(rent *models.RentRange) float64 {
	if rent == nil {
		return 0
	}
	if rent.Max > 0 {
		return rent.Max
	}
	return rent.Min
}
