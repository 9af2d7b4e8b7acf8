package calculation

import (
	"context"
	"fmt"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// CalculationEngine orchestrates all investment projections
type CalculationEngine struct {
	Debug  bool // Enable debug output for detailed calculations
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// ProjectGrowth compounds the plan month by month and returns its outcome together with the growth
// series at the requested granularity. An empty granularity means monthly.
func (ce *CalculationEngine) ProjectGrowth(plan domain.InvestmentPlan, granularity domain.Granularity) (*domain.Projection, error) {
	if granularity == "" {
		granularity = domain.GranularityMonthly
	}
	if err := validateGranularity(granularity); err != nil {
		return nil, err
	}
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}

	series, err := projectSeries(plan, granularity)
	if err != nil {
		ce.Logger.Warnf("projection stopped: %v", err)
		return nil, err
	}

	projection := &domain.Projection{
		Granularity: granularity,
		Outcome:     summarize(plan, series[len(series)-1]),
		Series:      series,
	}

	if ce.Debug {
		o := projection.Outcome
		ce.Logger.Debugf("PROJECTION: mode=%s amount=%.2f rate=%.2f%% years=%d",
			plan.ContributionMode, plan.Amount, plan.AnnualReturnRatePercent, plan.DurationYears)
		ce.Logger.Debugf("  Total Contribution: %.2f", o.TotalContribution)
		ce.Logger.Debugf("  Future Value:       %.2f", o.FutureValue)
		ce.Logger.Debugf("  Real Future Value:  %.2f", o.InflationAdjustedFutureValue)
		ce.Logger.Debugf("  Tax On Gain:        %.2f", o.TaxOnGain)
	}

	return projection, nil
}

// RunPlan projects and compares one named plan
func (ce *CalculationEngine) RunPlan(ctx context.Context, plan domain.NamedPlan, granularity domain.Granularity) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	projection, err := ce.ProjectGrowth(plan.InvestmentPlan, granularity)
	if err != nil {
		return nil, err
	}

	comparison, err := ce.CompareScenarios(plan.InvestmentPlan)
	if err != nil {
		return nil, err
	}

	return &domain.Report{
		Name:        plan.Name,
		Plan:        plan.InvestmentPlan,
		Projection:  projection,
		Comparison:  comparison,
		Assumptions: GenerateAssumptions(plan.InvestmentPlan),
	}, nil
}

// RunPlans runs every plan of a configuration in file order
func (ce *CalculationEngine) RunPlans(config *domain.Configuration) ([]domain.Report, error) {
	reports := make([]domain.Report, 0, len(config.Plans))
	ctx := context.Background()

	for _, plan := range config.Plans {
		report, err := ce.RunPlan(ctx, plan, config.Granularity)
		if err != nil {
			return nil, fmt.Errorf("plan %q failed: %w", plan.Name, err)
		}
		report.Currency = config.Currency
		reports = append(reports, *report)
	}

	ce.Logger.Infof("projected %d plans", len(reports))
	return reports, nil
}
