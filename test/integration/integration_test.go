package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatrix/sipcalc/internal/calculation"
	"github.com/stockmatrix/sipcalc/internal/config"
	"github.com/stockmatrix/sipcalc/internal/domain"
)

const examplePlans = "../testdata/example_plans.yaml"

func TestEndToEndCalculation(t *testing.T) {
	// Test that we can load a plan file and run every plan
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(examplePlans)
	require.NoError(t, err)
	require.Len(t, cfg.Plans, 2)
	assert.Equal(t, domain.ContributionRecurring, cfg.Plans[0].ContributionMode)
	assert.Equal(t, domain.ContributionLumpSum, cfg.Plans[1].ContributionMode)

	engine := calculation.NewCalculationEngine()
	reports, err := engine.RunPlans(cfg)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	sip := reports[0]
	assert.Equal(t, "INR", sip.Currency)
	assert.InDelta(t, 1161695.38, sip.Projection.Outcome.FutureValue, 0.01)
	assert.InDelta(t, 638505.81, sip.Projection.Outcome.InflationAdjustedFutureValue, 0.01)
	require.Len(t, sip.Projection.Series, 10)
	require.NotNil(t, sip.Projection.Series[0].Date)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), sip.Projection.Series[0].Date.UTC())

	selected := ""
	for _, sc := range sip.Comparison.Scenarios {
		if sc.Selected {
			selected = sc.Label
		}
	}
	assert.Equal(t, "Moderate", selected)

	bonus := reports[1].Projection.Outcome
	assert.InDelta(t, 164530.89, bonus.FutureValue, 0.01)
	assert.InDelta(t, 6453.09, bonus.TaxOnGain, 0.01)
	assert.InDelta(t, bonus.FutureValue-bonus.TaxOnGain, bonus.PostTaxFutureValue, 1e-9)
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	cfg, err := parser.LoadFromFile(examplePlans)
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(cfg))

	cfg.Plans[1].DurationYears = 0
	err = parser.ValidateConfiguration(cfg)
	assert.ErrorIs(t, err, calculation.ErrInvalidPlan)
}

func TestSimulationAgreesWithProjection(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(examplePlans)
	require.NoError(t, err)

	plan := cfg.Plans[0].InvestmentPlan
	zero := 0.0
	summary, err := calculation.NewMonteCarloSimulator().Run(context.Background(), plan,
		calculation.MonteCarloConfig{NumSimulations: 50, Seed: 1, VolatilityPercent: &zero})
	require.NoError(t, err)

	projection, err := calculation.NewCalculationEngine().ProjectGrowth(plan, domain.GranularityYearly)
	require.NoError(t, err)
	assert.InDelta(t, projection.Outcome.FutureValue, summary.Percentiles.P50, 0.01)
	assert.Equal(t, 0.0, summary.ProbabilityOfLoss)
}
