package calculation

import (
	"math"

	"github.com/stockmatrix/sipcalc/internal/domain"
	"github.com/stockmatrix/sipcalc/pkg/dateutil"
)

// compounder walks a plan period by period. The same loop backs the deterministic projection and
// every Monte Carlo path; only the per-period rate differs.
type compounder struct {
	plan        domain.InvestmentPlan
	inflation   float64 // monthly
	contributed float64
	value       float64
}

func newCompounder(plan domain.InvestmentPlan) *compounder {
	c := &compounder{
		plan:      plan,
		inflation: plan.AnnualInflationRatePercent / 100 / 12,
	}
	if !plan.IsRecurring() {
		c.contributed = plan.Amount
		c.value = plan.Amount
	}
	return c
}

// step advances one period at the given monthly rate. Recurring plans contribute at the start of
// the period (annuity-due). Lump sums compound by repeated multiplication, which agrees with
// amount*(1+i)^k to a relative error below 1e-12 over plan-length series.
func (c *compounder) step(k int, rate float64) error {
	if c.plan.IsRecurring() {
		c.contributed += c.plan.Amount
		c.value = (c.value + c.plan.Amount) * (1 + rate)
	} else {
		c.value *= 1 + rate
	}
	if !isFinite(c.value) || !isFinite(c.contributed) {
		return &ProjectionOverflowError{Period: k}
	}
	return nil
}

// point builds the growth point for period k from the current state.
func (c *compounder) point(k int) (domain.GrowthPoint, error) {
	value := c.value
	deflator := math.Pow(1+c.inflation, float64(k))
	adjusted := value / deflator
	if !isFinite(value) || !isFinite(deflator) || !isFinite(adjusted) {
		return domain.GrowthPoint{}, &ProjectionOverflowError{Period: k}
	}
	gp := domain.GrowthPoint{
		Period:                 k,
		CumulativeContribution: c.contributed,
		ProjectedValue:         value,
		InflationAdjustedValue: adjusted,
		Gain:                   value - c.contributed,
	}
	if c.plan.StartDate != nil {
		d := dateutil.PeriodEnd(*c.plan.StartDate, k)
		gp.Date = &d
	}
	return gp, nil
}

// maxPreallocatedPoints caps the up-front series allocation; longer series grow by append.
const maxPreallocatedPoints = 1200

// projectSeries runs the deterministic loop and returns the points selected by granularity.
// The final period is always emitted.
func projectSeries(plan domain.InvestmentPlan, granularity domain.Granularity) ([]domain.GrowthPoint, error) {
	n := plan.Periods()
	rate := plan.AnnualReturnRatePercent / 100 / 12

	capacity := n
	if granularity == domain.GranularityYearly {
		capacity = plan.DurationYears
	}
	series := make([]domain.GrowthPoint, 0, min(max(capacity, 0), maxPreallocatedPoints))

	c := newCompounder(plan)
	for k := 1; k <= n; k++ {
		if err := c.step(k, rate); err != nil {
			return nil, err
		}
		if granularity == domain.GranularityYearly && k%12 != 0 {
			continue
		}
		gp, err := c.point(k)
		if err != nil {
			return nil, err
		}
		series = append(series, gp)
	}
	return series, nil
}

// summarize derives the outcome from the final growth point. Tax is a flat share of the total gain,
// so a loss yields a negative tax.
func summarize(plan domain.InvestmentPlan, final domain.GrowthPoint) domain.InvestmentOutcome {
	gain := final.ProjectedValue - final.CumulativeContribution
	tax := gain * plan.AnnualTaxRatePercent / 100
	return domain.InvestmentOutcome{
		FutureValue:                  final.ProjectedValue,
		TotalContribution:            final.CumulativeContribution,
		TotalGain:                    gain,
		AbsoluteReturnPercent:        gain / final.CumulativeContribution * 100,
		InflationAdjustedFutureValue: final.InflationAdjustedValue,
		TaxOnGain:                    tax,
		PostTaxFutureValue:           final.ProjectedValue - tax,
		EffectiveMonthlyWithdrawal:   final.ProjectedValue / float64(plan.Periods()),
	}
}
