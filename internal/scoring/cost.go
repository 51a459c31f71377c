package scoring

import (
	"math"

	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// SizeMultiplier scales amenity costs by the number of units in a property.
func SizeMultiplier(propertySize int) float64 {
	switch {
	case propertySize > 200:
		return 1.5
	case propertySize > 100:
		return 1.25
	default:
		return 1.0
	}
}

// EstimateCosts scales each amenity's stored cost band to the property size.
func EstimateCosts(amenities []models.Amenity, propertySize int) []models.AmenityCostEstimate {
	multiplier := SizeMultiplier(propertySize)
	out := make([]models.AmenityCostEstimate, 0, len(amenities))

	for _, a := range amenities {
		low := int(math.Round(float64(a.EstimatedCostLow) * multiplier))
		high := int(math.Round(float64(a.EstimatedCostHigh) * multiplier))
		out = append(out, models.AmenityCostEstimate{
			Amenity:            a,
			ImplementationTime: a.ImplementationTime,
			EstimatedCost: models.CostRange{
				Low:  low,
				High: high,
				// Averaged from the rounded bounds.
				Average: int(math.Round(float64(low+high) / 2)),
			},
		})
	}
	return out
}
