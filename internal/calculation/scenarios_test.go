package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

func TestCompareScenarios(t *testing.T) {
	ce := NewCalculationEngine()

	comparison, err := ce.CompareScenarios(recurringPlan())
	require.NoError(t, err)
	require.Len(t, comparison.Scenarios, 4)

	labels := make([]string, 0, 4)
	for _, s := range comparison.Scenarios {
		labels = append(labels, s.Label)
		assert.False(t, s.Selected, s.Label)
	}
	assert.Equal(t, []string{"Conservative", "Moderate", "Aggressive", domain.CurrentPlanLabel}, labels)

	fv := comparison.FutureValues()
	assert.InDelta(t, 920828.38, fv["Conservative"], 0.01)
	assert.InDelta(t, 1161695.38, fv["Moderate"], 0.01)
	assert.InDelta(t, 1393286.36, fv["Aggressive"], 0.01)
	assert.Equal(t, fv["Moderate"], fv[domain.CurrentPlanLabel])

	current, ok := comparison.Get(domain.CurrentPlanLabel)
	require.True(t, ok)
	assert.Equal(t, 12.0, current.RatePercent)

	_, ok = comparison.Get("Speculative")
	assert.False(t, ok)
}

func TestCompareScenarios_MatchesProjectGrowth(t *testing.T) {
	ce := NewCalculationEngine()
	plan := lumpSumPlan()

	comparison, err := ce.CompareScenarios(plan)
	require.NoError(t, err)

	for _, s := range comparison.Scenarios {
		projection, err := ce.ProjectGrowth(plan.WithReturnRate(s.RatePercent), domain.GranularityYearly)
		require.NoError(t, err)
		assert.Equal(t, projection.Outcome.FutureValue, s.FutureValue, s.Label)
	}
}

func TestCompareScenarios_Ordering(t *testing.T) {
	ce := NewCalculationEngine()

	for _, rate := range []float64{6, 7.25, 8, 10, 12, 14.9, 15} {
		plan := recurringPlan()
		plan.AnnualReturnRatePercent = rate

		comparison, err := ce.CompareScenarios(plan)
		require.NoError(t, err)
		fv := comparison.FutureValues()

		assert.LessOrEqual(t, fv["Conservative"], fv["Moderate"])
		assert.LessOrEqual(t, fv["Moderate"], fv["Aggressive"])
		if rate >= 8 {
			assert.LessOrEqual(t, fv["Conservative"], fv[domain.CurrentPlanLabel], "rate %.2f", rate)
		}
		assert.LessOrEqual(t, fv[domain.CurrentPlanLabel], fv["Aggressive"], "rate %.2f", rate)
	}
}

func TestCompareScenarios_SelectedProfile(t *testing.T) {
	ce := NewCalculationEngine()
	plan := recurringPlan()
	plan.RiskProfile = domain.RiskAggressive

	comparison, err := ce.CompareScenarios(plan)
	require.NoError(t, err)

	for _, s := range comparison.Scenarios {
		assert.Equal(t, s.Label == "Aggressive", s.Selected, s.Label)
	}
}

func TestCompareScenarios_Errors(t *testing.T) {
	ce := NewCalculationEngine()

	plan := recurringPlan()
	plan.DurationYears = 0
	_, err := ce.CompareScenarios(plan)
	assert.ErrorIs(t, err, ErrInvalidPlan)

	plan = recurringPlan()
	plan.AnnualReturnRatePercent = 50000
	plan.DurationYears = 100
	_, err = ce.CompareScenarios(plan)
	assert.ErrorIs(t, err, ErrProjectionOverflow)
}
