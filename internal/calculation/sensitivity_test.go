package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepReturnRate(t *testing.T) {
	ce := NewCalculationEngine()

	points, err := ce.SweepReturnRate(recurringPlan(), 6, 15, 1)
	require.NoError(t, err)
	require.Len(t, points, 10)

	assert.Equal(t, 6.0, points[0].RatePercent)
	assert.Equal(t, 15.0, points[9].RatePercent)
	assert.InDelta(t, 1161695.38, points[6].FutureValue, 0.01)

	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].FutureValue, points[i-1].FutureValue)
		assert.Less(t, points[i].InflationAdjustedFutureValue, points[i].FutureValue)
	}
}

func TestSweepReturnRate_FractionalStepIncludesUpperBound(t *testing.T) {
	ce := NewCalculationEngine()

	points, err := ce.SweepReturnRate(lumpSumPlan(), 6, 8, 0.1)
	require.NoError(t, err)
	require.Len(t, points, 21)
	assert.InDelta(t, 8.0, points[20].RatePercent, 1e-9)
}

func TestSweepReturnRate_SinglePoint(t *testing.T) {
	ce := NewCalculationEngine()

	points, err := ce.SweepReturnRate(lumpSumPlan(), 10, 10, 0.5)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 64530.89, points[0].TotalGain, 0.01)
}

func TestSweepReturnRate_Invalid(t *testing.T) {
	ce := NewCalculationEngine()

	tests := []struct {
		name           string
		from, to, step float64
	}{
		{"zero step", 6, 15, 0},
		{"negative step", 6, 15, -1},
		{"inverted bounds", 15, 6, 1},
		{"too many points", 0, 1000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ce.SweepReturnRate(recurringPlan(), tt.from, tt.to, tt.step)
			assert.ErrorIs(t, err, ErrInvalidPlan)
		})
	}

	plan := recurringPlan()
	plan.Amount = -5
	_, err := ce.SweepReturnRate(plan, 6, 15, 1)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}
