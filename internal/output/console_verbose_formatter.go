package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// ConsoleFormatter renders the detailed console report: plan, outcome, growth table, scenarios and
// any simulation or sweep attached to the report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(reports []domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(&buf)
		}
		writeDetailedReport(&buf, r)
	}
	return buf.Bytes(), nil
}

func writeDetailedReport(buf *bytes.Buffer, r domain.Report) {
	cur := currencyOf(r)
	plan := r.Plan

	fmt.Fprintln(buf, strings.Repeat("=", 81))
	fmt.Fprintf(buf, "SIP GROWTH PROJECTION: %s\n", strings.ToUpper(reportTitle(r)))
	fmt.Fprintln(buf, strings.Repeat("=", 81))
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(r) {
		fmt.Fprintf(buf, "• %s\n", a)
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "PLAN")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "  %-22s %s\n", contributionLabel(plan)+":", FormatCurrency(plan.Amount, cur))
	fmt.Fprintf(buf, "  %-22s %s\n", "Expected Return:", FormatPercentage(plan.AnnualReturnRatePercent))
	fmt.Fprintf(buf, "  %-22s %d years (%d months)\n", "Duration:", plan.DurationYears, plan.Periods())
	fmt.Fprintf(buf, "  %-22s %s\n", "Inflation:", FormatPercentage(plan.AnnualInflationRatePercent))
	fmt.Fprintf(buf, "  %-22s %s\n", "Tax On Gains:", FormatPercentage(plan.AnnualTaxRatePercent))
	if plan.RiskProfile != domain.RiskNone {
		fmt.Fprintf(buf, "  %-22s %s\n", "Risk Profile:", plan.RiskProfile.Label())
	}
	fmt.Fprintln(buf)

	if r.Projection != nil {
		writeOutcome(buf, r.Projection.Outcome, cur)
		writeSeries(buf, r.Projection, cur)
	}
	if r.Comparison != nil {
		writeComparison(buf, r.Comparison, cur)
	}
	if r.Simulation != nil {
		writeSimulation(buf, r.Simulation, cur)
	}
	if len(r.Sweep) > 0 {
		writeSweep(buf, r.Sweep, cur)
	}
}

func writeOutcome(w io.Writer, o domain.InvestmentOutcome, cur string) {
	fmt.Fprintln(w, "OUTCOME")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "  %-30s %s\n", "Total Contribution:", FormatCurrency(o.TotalContribution, cur))
	fmt.Fprintf(w, "  %-30s %s\n", "Future Value:", FormatCurrency(o.FutureValue, cur))
	fmt.Fprintf(w, "  %-30s %s\n", "Total Gain:", FormatCurrency(o.TotalGain, cur))
	fmt.Fprintf(w, "  %-30s %s\n", "Absolute Return:", FormatPercentage(o.AbsoluteReturnPercent))
	fmt.Fprintf(w, "  %-30s %s\n", "Inflation-Adjusted Value:", FormatCurrency(o.InflationAdjustedFutureValue, cur))
	fmt.Fprintf(w, "  %-30s %s\n", "Tax On Gain:", FormatCurrency(o.TaxOnGain, cur))
	fmt.Fprintf(w, "  %-30s %s\n", "Post-Tax Value:", FormatCurrency(o.PostTaxFutureValue, cur))
	fmt.Fprintf(w, "  %-30s %s\n", "Monthly Withdrawal (illus.):", FormatCurrency(o.EffectiveMonthlyWithdrawal, cur))
	fmt.Fprintln(w)
}

func writeSeries(w io.Writer, p *domain.Projection, cur string) {
	fmt.Fprintf(w, "GROWTH (%s)\n", p.Granularity)
	fmt.Fprintln(w, strings.Repeat("-", 81))
	fmt.Fprintf(w, "%-8s %-12s %20s %20s %20s\n", "Period", "Date", "Contributed", "Value", "Real Value")
	for _, gp := range p.Series {
		date := "-"
		if gp.Date != nil {
			date = gp.Date.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-8d %-12s %20s %20s %20s\n", gp.Period, date,
			FormatCurrency(gp.CumulativeContribution, cur),
			FormatCurrency(gp.ProjectedValue, cur),
			FormatCurrency(gp.InflationAdjustedValue, cur))
	}
	fmt.Fprintln(w)
}

func writeComparison(w io.Writer, c *domain.ScenarioComparison, cur string) {
	fmt.Fprintln(w, "SCENARIO COMPARISON")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, sc := range c.Scenarios {
		marker := ""
		if sc.Selected {
			marker = " *"
		}
		fmt.Fprintf(w, "  %-22s %8s %22s%s\n", scenarioLabel(sc), FormatPercentage(sc.RatePercent), FormatCurrency(sc.FutureValue, cur), marker)
	}
	if rec := AnalyzeScenarios(c); rec.ScenarioName != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Nearest band: %s (Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.Change, cur), FormatPercentage(rec.PercentageChange))
	}
	fmt.Fprintln(w)
}

func writeSimulation(w io.Writer, s *domain.SimulationSummary, cur string) {
	fmt.Fprintln(w, "MONTE CARLO SIMULATION")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "  %-26s %d (seed %d)\n", "Simulations:", s.NumSimulations, s.Seed)
	fmt.Fprintf(w, "  %-26s %s\n", "Annual Volatility:", FormatPercentage(s.VolatilityPercent))
	fmt.Fprintf(w, "  %-26s %s\n", "Deterministic Value:", FormatCurrency(s.DeterministicFutureValue, cur))
	fmt.Fprintf(w, "  %-26s %s\n", "Mean Value:", FormatCurrency(s.MeanFutureValue, cur))
	fmt.Fprintf(w, "  %-26s %s\n", "Std Deviation:", FormatCurrency(s.StdDevFutureValue, cur))
	for _, p := range percentileRows(s.Percentiles) {
		fmt.Fprintf(w, "  %-26s %s\n", p.label+":", FormatCurrency(p.value, cur))
	}
	fmt.Fprintf(w, "  %-26s %s\n", "Probability Of Loss:", FormatProbability(s.ProbabilityOfLoss))
	if s.TargetValue > 0 {
		fmt.Fprintf(w, "  %-26s %s\n", "Reach "+FormatCurrency(s.TargetValue, cur)+":", FormatProbability(s.ProbabilityOfTarget))
	}
	fmt.Fprintln(w)
}

func writeSweep(w io.Writer, points []domain.SensitivityPoint, cur string) {
	fmt.Fprintln(w, "RETURN RATE SENSITIVITY")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "  %8s %22s %22s\n", "Rate", "Future Value", "Real Value")
	for _, p := range points {
		fmt.Fprintf(w, "  %8s %22s %22s\n", FormatPercentage(p.RatePercent), FormatCurrency(p.FutureValue, cur), FormatCurrency(p.InflationAdjustedFutureValue, cur))
	}
	fmt.Fprintln(w)
}

type percentileRow struct {
	label string
	value float64
}

func percentileRows(p domain.PercentileRanges) []percentileRow {
	return []percentileRow{
		{"10th Percentile", p.P10},
		{"25th Percentile", p.P25},
		{"Median", p.P50},
		{"75th Percentile", p.P75},
		{"90th Percentile", p.P90},
	}
}

func reportTitle(r domain.Report) string {
	if r.Name != "" {
		return r.Name
	}
	return "Investment Plan"
}

func contributionLabel(p domain.InvestmentPlan) string {
	if p.IsRecurring() {
		return "Monthly Contribution"
	}
	return "Lump Sum"
}

func scenarioLabel(sc domain.ScenarioResult) string {
	if sc.MaxRatePercent > 0 {
		return fmt.Sprintf("%s (%.0f-%.0f%%)", sc.Label, sc.MinRatePercent, sc.MaxRatePercent)
	}
	return sc.Label
}
