package domain

import (
	"time"
)

// CurrentPlanLabel labels the unmodified plan in a scenario comparison
const CurrentPlanLabel = "Current Plan"

// GrowthPoint represents the state of the investment at the end of one period
type GrowthPoint struct {
	Period                 int        `json:"period"`
	Date                   *time.Time `json:"date,omitempty"`
	CumulativeContribution float64    `json:"cumulative_contribution"`
	ProjectedValue         float64    `json:"projected_value"`
	InflationAdjustedValue float64    `json:"inflation_adjusted_value"`
	Gain                   float64    `json:"gain"` // projected value less contributions
}

// Year returns the 1-based investment year the period falls in
func (gp GrowthPoint) Year() int {
	return (gp.Period + 11) / 12
}

// InvestmentOutcome provides the summary figures of a projection
type InvestmentOutcome struct {
	FutureValue                  float64 `json:"future_value"`
	TotalContribution            float64 `json:"total_contribution"`
	TotalGain                    float64 `json:"total_gain"`
	AbsoluteReturnPercent        float64 `json:"absolute_return_percent"`
	InflationAdjustedFutureValue float64 `json:"inflation_adjusted_future_value"`
	TaxOnGain                    float64 `json:"tax_on_gain"`
	PostTaxFutureValue           float64 `json:"post_tax_future_value"`
	EffectiveMonthlyWithdrawal   float64 `json:"effective_monthly_withdrawal"` // illustrative, not an annuity
}

// Projection is the result of projecting a plan: summary plus the growth series
type Projection struct {
	Granularity Granularity       `json:"granularity"`
	Outcome     InvestmentOutcome `json:"outcome"`
	Series      []GrowthPoint     `json:"series"`
}

// Final returns the last growth point of the series
func (p *Projection) Final() GrowthPoint {
	if len(p.Series) == 0 {
		return GrowthPoint{}
	}
	return p.Series[len(p.Series)-1]
}

// ScenarioResult is the future value of the plan under one substituted return rate
type ScenarioResult struct {
	Label          string      `json:"label"`
	Profile        RiskProfile `json:"profile,omitempty"`
	RatePercent    float64     `json:"rate_percent"`
	MinRatePercent float64     `json:"min_rate_percent,omitempty"`
	MaxRatePercent float64     `json:"max_rate_percent,omitempty"`
	FutureValue    float64     `json:"future_value"`
	Selected       bool        `json:"selected,omitempty"` // matches the plan's risk profile
}

// ScenarioComparison holds the comparison scenarios in a fixed order
type ScenarioComparison struct {
	Scenarios []ScenarioResult `json:"scenarios"`
}

// FutureValues returns the comparison as a label -> future value mapping
func (sc *ScenarioComparison) FutureValues() map[string]float64 {
	out := make(map[string]float64, len(sc.Scenarios))
	for _, s := range sc.Scenarios {
		out[s.Label] = s.FutureValue
	}
	return out
}

// Get looks up a scenario by label
func (sc *ScenarioComparison) Get(label string) (ScenarioResult, bool) {
	for _, s := range sc.Scenarios {
		if s.Label == label {
			return s, true
		}
	}
	return ScenarioResult{}, false
}

// SensitivityPoint is one step of a return-rate sweep
type SensitivityPoint struct {
	RatePercent                  float64 `json:"rate_percent"`
	FutureValue                  float64 `json:"future_value"`
	InflationAdjustedFutureValue float64 `json:"inflation_adjusted_future_value"`
	TotalGain                    float64 `json:"total_gain"`
}

// PercentileRanges represents percentile ranges for Monte Carlo results
type PercentileRanges struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// SimulationSummary aggregates the final values of a Monte Carlo run
type SimulationSummary struct {
	NumSimulations           int              `json:"num_simulations"`
	Seed                     uint64           `json:"seed"`
	VolatilityPercent        float64          `json:"volatility_percent"`
	TotalContribution        float64          `json:"total_contribution"`
	DeterministicFutureValue float64          `json:"deterministic_future_value"`
	MeanFutureValue          float64          `json:"mean_future_value"`
	StdDevFutureValue        float64          `json:"std_dev_future_value"`
	Percentiles              PercentileRanges `json:"percentiles"`
	ProbabilityOfLoss        float64          `json:"probability_of_loss"`
	TargetValue              float64          `json:"target_value,omitempty"`
	ProbabilityOfTarget      float64          `json:"probability_of_target,omitempty"`
}

// Report bundles everything a presentation layer renders for one plan
type Report struct {
	Name        string              `json:"name"`
	Currency    string              `json:"currency"`
	Plan        InvestmentPlan      `json:"plan"`
	Projection  *Projection         `json:"projection"`
	Comparison  *ScenarioComparison `json:"comparison,omitempty"`
	Simulation  *SimulationSummary  `json:"simulation,omitempty"`
	Sweep       []SensitivityPoint  `json:"sweep,omitempty"`
	Assumptions []string            `json:"assumptions,omitempty"`
}
