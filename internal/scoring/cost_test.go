package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florenciacomuzzi/amp-report/internal/models"
)

func TestSizeMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, SizeMultiplier(0))
	assert.Equal(t, 1.0, SizeMultiplier(100))
	assert.Equal(t, 1.25, SizeMultiplier(101))
	assert.Equal(t, 1.25, SizeMultiplier(200))
	assert.Equal(t, 1.5, SizeMultiplier(201))
}

func TestEstimateCosts(t *testing.T) {
	amenities := []models.Amenity{{
		ID:                 "gym",
		Name:               "Fitness Center",
		EstimatedCostLow:   10000,
		EstimatedCostHigh:  20000,
		ImplementationTime: "2-3 months",
	}}

	tests := []struct {
		name     string
		size     int
		expected models.CostRange
	}{
		{name: "small", size: 50, expected: models.CostRange{Low: 10000, High: 20000, Average: 15000}},
		{name: "medium", size: 150, expected: models.CostRange{Low: 12500, High: 25000, Average: 18750}},
		{name: "large", size: 250, expected: models.CostRange{Low: 15000, High: 30000, Average: 22500}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := EstimateCosts(amenities, tc.size)
			require.Len(t, out, 1)
			assert.Equal(t, tc.expected, out[0].EstimatedCost)
			assert.Equal(t, "2-3 months", out[0].ImplementationTime)
			assert.Equal(t, "gym", out[0].Amenity.ID)
		})
	}
}

func TestEstimateCosts_Rounds(t *testing.T) {
	out := EstimateCosts([]models.Amenity{{EstimatedCostLow: 1001, EstimatedCostHigh: 2003}}, 150)

	require.Len(t, out, 1)
	// 1251.25, 2503.75, 1877.5
	assert.Equal(t, models.CostRange{Low: 1251, High: 2504, Average: 1878}, out[0].EstimatedCost)
}

func TestEstimateCosts_AverageOfRoundedBounds(t *testing.T) {
	out := EstimateCosts([]models.Amenity{{EstimatedCostLow: 1003, EstimatedCostHigh: 1007}}, 150)

	require.Len(t, out, 1)
	// 1253.75 and 1258.75 round to 1254 and 1259, whose mean 1256.5 rounds up.
	assert.Equal(t, models.CostRange{Low: 1254, High: 1259, Average: 1257}, out[0].EstimatedCost)
}

func TestEstimateCosts_Empty(t *testing.T) {
	out := EstimateCosts(nil, 300)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
