package calculation

import (
	"math"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// MaxSweepPoints bounds the number of rates a single sweep evaluates
const MaxSweepPoints = 200

// SweepReturnRate projects the plan at every rate from `from` to `to` inclusive in increments of
// step, holding every other field fixed.
func (ce *CalculationEngine) SweepReturnRate(plan domain.InvestmentPlan, from, to, step float64) ([]domain.SensitivityPoint, error) {
	if !isFinite(from) || !isFinite(to) || !isFinite(step) {
		return nil, invalid("sweep", "bounds and step must be numbers")
	}
	if step <= 0 {
		return nil, invalid("sweep", "step must be positive, got %g", step)
	}
	if from > to {
		return nil, invalid("sweep", "from (%g) must not exceed to (%g)", from, to)
	}
	// small epsilon so that 6..15 by 0.1 still includes 15
	count := int(math.Floor((to-from)/step+1e-9)) + 1
	if count > MaxSweepPoints {
		return nil, invalid("sweep", "%d points requested, at most %d allowed", count, MaxSweepPoints)
	}
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}

	points := make([]domain.SensitivityPoint, 0, count)
	for idx := 0; idx < count; idx++ {
		rate := from + float64(idx)*step
		series, err := projectSeries(plan.WithReturnRate(rate), domain.GranularityYearly)
		if err != nil {
			return nil, err
		}
		final := series[len(series)-1]
		points = append(points, domain.SensitivityPoint{
			RatePercent:                  rate,
			FutureValue:                  final.ProjectedValue,
			InflationAdjustedFutureValue: final.InflationAdjustedValue,
			TotalGain:                    final.Gain,
		})
	}

	ce.Logger.Debugf("sweep evaluated %d rates between %.2f%% and %.2f%%", len(points), from, to)
	return points, nil
}
