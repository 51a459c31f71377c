// Package rent produces a rule-based monthly rent band for a property.
package rent

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// Methodology describes how every estimate is produced.
const Methodology = "Market-based estimation using property type, location, age, and amenities"

const (
	ageFactorPerYear    = -0.01
	ageFactorGraceYears = 10
	newBuildMaxAge      = 5
	newBuildPremium     = 1.15
	premiumAmenityBonus = 50
	roundingStep        = 50
	baseConfidence      = 0.7
	signalConfidence    = 0.1
)

type band struct{ min, max float64 }

var baseRentByType = map[models.PropertyType]band{
	models.PropertyTypeApartment: {1200, 2000},
	models.PropertyTypeCondo:     {1500, 2500},
	models.PropertyTypeTownhouse: {2000, 3500},
	models.PropertyTypeOther:     {1500, 2500},
}

type cityMultiplier struct {
	city       string
	multiplier float64
}

// cityMultipliers is ordered; the first city contained in the address wins.
var cityMultipliers = []cityMultiplier{
	{"New York", 2.5},
	{"San Francisco", 2.3},
	{"Los Angeles", 1.8},
	{"Chicago", 1.5},
	{"Boston", 1.9},
	{"Seattle", 1.8},
	{"Washington", 1.7},
	{"Miami", 1.6},
	{"Austin", 1.5},
	{"Denver", 1.4},
}

var premiumAmenities = []string{
	"gym", "fitness center", "pool", "parking", "garage",
	"concierge", "doorman", "rooftop", "balcony", "terrace",
	"washer", "dryer", "dishwasher", "central air", "elevator",
}

// Estimate is a suggested monthly rent band with the factors behind it.
type Estimate struct {
	Methodology string   `json:"methodology"`
	Factors     []string `json:"factors"`
	Min         float64  `json:"min"`
	Max         float64  `json:"max"`
	Confidence  float64  `json:"confidence"`
}

// Estimator computes rent estimates relative to the current year.
type Estimator struct {
	now func() time.Time
}

// NewEstimator creates an Estimator that reads the wall clock.
func NewEstimator() *Estimator {
	return &Estimator{now: time.Now}
}

// Estimate returns the rent band for p. Unknown property types use the
// "other" base band.
func (e *Estimator) Estimate(p *models.Property) Estimate {
	var factors []string

	base, ok := baseRentByType[p.Details.PropertyType]
	if !ok {
		base = baseRentByType[models.PropertyTypeOther]
	}
	lo, hi := base.min, base.max
	factors = append(factors, fmt.Sprintf("Base %s rent: $%.0f-$%.0f", typeLabel(p.Details.PropertyType), lo, hi))

	multiplier := 1.0
	city := strings.ToLower(p.Address.City)
	for _, cm := range cityMultipliers {
		if strings.Contains(city, strings.ToLower(cm.city)) {
			multiplier = cm.multiplier
			factors = append(factors, fmt.Sprintf("%s market premium: %.0f%%", cm.city, (cm.multiplier-1)*100))
			break
		}
	}
	lo, hi = math.Round(lo*multiplier), math.Round(hi*multiplier)

	age := e.now().Year() - p.Details.YearBuilt
	switch {
	case age > ageFactorGraceYears:
		pct := ageFactorPerYear * float64(age-ageFactorGraceYears)
		lo, hi = math.Round(lo*(1+pct)), math.Round(hi*(1+pct))
		factors = append(factors, fmt.Sprintf("Property age (%d years): %.0f%%", age, pct*100))
	case age <= newBuildMaxAge:
		lo, hi = math.Round(lo*newBuildPremium), math.Round(hi*newBuildPremium)
		factors = append(factors, "New construction premium: +15%")
	}

	if n := countPremium(p.Details.CurrentAmenities); n > 0 {
		bonus := float64(n * premiumAmenityBonus)
		lo += bonus
		hi += bonus
		factors = append(factors, fmt.Sprintf("Premium amenities (%d): +$%.0f", n, bonus))
	}

	if lo > hi {
		lo, hi = hi, lo
	}

	confidence := baseConfidence
	if multiplier > 1 {
		confidence += signalConfidence
	}
	if len(p.Details.CurrentAmenities) > 0 {
		confidence += signalConfidence
	}
	if p.Latitude != 0 && p.Longitude != 0 {
		confidence += signalConfidence
	}

	return Estimate{
		Min:         roundTo(lo, roundingStep),
		Max:         roundTo(hi, roundingStep),
		Confidence:  math.Min(math.Round(confidence*100)/100, 1),
		Factors:     factors,
		Methodology: Methodology,
	}
}

// IsReasonable reports whether a rent band is plausible: positive, ordered,
// no more than 2× wide, and within $500-$10,000.
func IsReasonable(min, max float64) bool {
	switch {
	case min <= 0 || max <= 0:
		return false
	case min >= max:
		return false
	case max > min*2:
		return false
	case min < 500 || max > 10000:
		return false
	}
	return true
}

func countPremium(amenities []string) int {
	n := 0
	for _, a := range amenities {
		a = strings.ToLower(a)
		for _, premium := range premiumAmenities {
			if strings.Contains(a, premium) {
				n++
				break
			}
		}
	}
	return n
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}

func typeLabel(t models.PropertyType) string {
	if _, ok := baseRentByType[t]; ok {
		return string(t)
	}
	return string(models.PropertyTypeOther)
}
