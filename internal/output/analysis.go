package output

import (
	"github.com/stockmatrix/sipcalc/internal/domain"
)

// Recommendation compares the plan with the scenario an investor would most likely move to.
type Recommendation struct {
	ScenarioName     string
	FutureValue      float64
	Change           float64 // scenario minus current plan
	PercentageChange float64
}

// AnalyzeScenarios picks the scenario selected by the plan's risk profile or, without one, the band
// whose rate range contains the plan's own rate. An empty ScenarioName means neither applies.
// Extracted from embedded console logic for testability.
func AnalyzeScenarios(comparison *domain.ScenarioComparison) Recommendation {
	if comparison == nil {
		return Recommendation{}
	}
	current, ok := comparison.Get(domain.CurrentPlanLabel)
	if !ok {
		return Recommendation{}
	}

	var pick *domain.ScenarioResult
	for i := range comparison.Scenarios {
		sc := &comparison.Scenarios[i]
		if sc.Selected {
			pick = sc
			break
		}
	}
	if pick == nil {
		for i := range comparison.Scenarios {
			sc := &comparison.Scenarios[i]
			if sc.Label == domain.CurrentPlanLabel {
				continue
			}
			if current.RatePercent >= sc.MinRatePercent && current.RatePercent <= sc.MaxRatePercent {
				pick = sc
				break
			}
		}
	}
	if pick == nil {
		return Recommendation{}
	}

	change := pick.FutureValue - current.FutureValue
	pct := 0.0
	if current.FutureValue != 0 {
		pct = change / current.FutureValue * 100
	}
	return Recommendation{
		ScenarioName:     pick.Label,
		FutureValue:      pick.FutureValue,
		Change:           change,
		PercentageChange: pct,
	}
}
