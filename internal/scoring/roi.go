package scoring

import (
	"strings"

	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// Income floors that unlock the premium rules and ROI multipliers.
const (
	HighIncomeThreshold   = 100000
	LuxuryIncomeThreshold = 150000
)

// ROIConfig holds the revenue assumptions behind the ROI estimate.
type ROIConfig struct {
	// UnitsAffected is the number of units assumed to pay the rent uplift.
	// It is a fixed assumption and does not follow the property's unit count.
	UnitsAffected int
	Occupancy     float64
}

// DefaultROIConfig returns the production revenue assumptions.
func DefaultROIConfig() ROIConfig {
	return ROIConfig{UnitsAffected: 50, Occupancy: 0.8}
}

// monthlyUplift estimates the per-unit monthly rent increase an amenity supports.
func monthlyUplift(p Profile, a models.Amenity) float64 {
	var uplift float64
	switch {
	case a.ImpactScore > 80:
		uplift = 50
	case a.ImpactScore > 60:
		uplift = 30
	default:
		uplift = 15
	}

	if p.MinIncome() >= HighIncomeThreshold {
		uplift *= 1.5
	}

	switch {
	case strings.EqualFold(a.Category, CategoryFitness):
		uplift *= 1.2
	case strings.EqualFold(a.Category, CategoryTechnology):
		if anyTagContains(p.ProfessionalBackgrounds, "tech") {
			uplift *= 1.3
		}
	case strings.EqualFold(a.Category, CategoryLuxury):
		if p.MinIncome() >= LuxuryIncomeThreshold {
			uplift *= 1.4
		}
	}

	return uplift
}

// EstimateROI returns the first-year return on an amenity as a percentage of
// its average cost, rounded to 1 decimal. Zero-cost amenities return 0.
func EstimateROI(cfg ROIConfig, p Profile, a models.Amenity) float64 {
	averageCost := float64(a.EstimatedCostLow+a.EstimatedCostHigh) / 2
	if averageCost <= 0 {
		return 0
	}

	annualRevenue := monthlyUplift(p, a) * 12 * float64(cfg.UnitsAffected) * cfg.Occupancy
	return round1(annualRevenue / averageCost * 100)
}
