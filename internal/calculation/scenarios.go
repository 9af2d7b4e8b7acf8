package calculation

import (
	"golang.org/x/sync/errgroup"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// RiskBand is a fixed comparison band. Projections use the band's upper bound.
type RiskBand struct {
	Profile        domain.RiskProfile
	MinRatePercent float64
	RatePercent    float64
}

// RiskBands lists the comparison bands in ascending rate order
var RiskBands = []RiskBand{
	{Profile: domain.RiskConservative, MinRatePercent: 6, RatePercent: 8},
	{Profile: domain.RiskModerate, MinRatePercent: 8, RatePercent: 12},
	{Profile: domain.RiskAggressive, MinRatePercent: 12, RatePercent: 15},
}

// CompareScenarios projects the plan once per risk band with the band's rate substituted, plus once
// unmodified as the current plan. The runs are independent and execute concurrently; the result
// order is always Conservative, Moderate, Aggressive, Current Plan.
func (ce *CalculationEngine) CompareScenarios(plan domain.InvestmentPlan) (*domain.ScenarioComparison, error) {
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}

	results := make([]domain.ScenarioResult, len(RiskBands)+1)
	for i, band := range RiskBands {
		results[i] = domain.ScenarioResult{
			Label:          band.Profile.Label(),
			Profile:        band.Profile,
			RatePercent:    band.RatePercent,
			MinRatePercent: band.MinRatePercent,
			MaxRatePercent: band.RatePercent,
			Selected:       plan.RiskProfile == band.Profile,
		}
	}
	results[len(RiskBands)] = domain.ScenarioResult{
		Label:       domain.CurrentPlanLabel,
		Profile:     plan.RiskProfile,
		RatePercent: plan.AnnualReturnRatePercent,
	}

	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			fv, err := futureValue(plan.WithReturnRate(results[i].RatePercent))
			if err != nil {
				return err
			}
			results[i].FutureValue = fv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.ScenarioComparison{Scenarios: results}, nil
}

// futureValue runs the compounding loop without materializing a series
func futureValue(plan domain.InvestmentPlan) (float64, error) {
	rate := plan.AnnualReturnRatePercent / 100 / 12
	c := newCompounder(plan)
	for k := 1; k <= plan.Periods(); k++ {
		if err := c.step(k, rate); err != nil {
			return 0, err
		}
	}
	return c.value, nil
}
