package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// MarkdownFormatter renders the reports as GitHub-flavoured markdown.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string      { return "markdown" }
func (m MarkdownFormatter) Extension() string { return "md" }

func (m MarkdownFormatter) Format(reports []domain.Report) ([]byte, error) {
	return renderMarkdown(reports), nil
}

// TerminalFormatter renders the markdown report for a terminal with glamour.
// The notty style keeps the output free of ANSI colour codes so it can be piped or saved.
type TerminalFormatter struct {
	Style string
}

func (t TerminalFormatter) Name() string      { return "terminal" }
func (t TerminalFormatter) Extension() string { return "txt" }

func (t TerminalFormatter) Format(reports []domain.Report) ([]byte, error) {
	style := t.Style
	if style == "" {
		style = "notty"
	}
	out, err := glamour.Render(string(renderMarkdown(reports)), style)
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return []byte(out), nil
}

func renderMarkdown(reports []domain.Report) []byte {
	var b bytes.Buffer
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		writeMarkdownReport(&b, r)
	}
	return b.Bytes()
}

func writeMarkdownReport(b *bytes.Buffer, r domain.Report) {
	cur := currencyOf(r)
	plan := r.Plan

	fmt.Fprintf(b, "# %s\n\n", reportTitle(r))
	fmt.Fprintf(b, "%s of **%s** at **%s** for **%d years**",
		contributionLabel(plan), FormatCurrency(plan.Amount, cur), FormatPercentage(plan.AnnualReturnRatePercent), plan.DurationYears)
	if plan.RiskProfile != domain.RiskNone {
		fmt.Fprintf(b, " (%s profile)", plan.RiskProfile.Label())
	}
	b.WriteString(".\n\n")

	if r.Projection != nil {
		o := r.Projection.Outcome
		b.WriteString("## Outcome\n\n")
		b.WriteString("| Metric | Value |\n|---|---:|\n")
		mdRow(b, "Total contribution", FormatCurrency(o.TotalContribution, cur))
		mdRow(b, "Future value", FormatCurrency(o.FutureValue, cur))
		mdRow(b, "Total gain", FormatCurrency(o.TotalGain, cur))
		mdRow(b, "Absolute return", FormatPercentage(o.AbsoluteReturnPercent))
		mdRow(b, "Inflation-adjusted value", FormatCurrency(o.InflationAdjustedFutureValue, cur))
		mdRow(b, "Tax on gain", FormatCurrency(o.TaxOnGain, cur))
		mdRow(b, "Post-tax value", FormatCurrency(o.PostTaxFutureValue, cur))
		mdRow(b, "Monthly withdrawal (illustrative)", FormatCurrency(o.EffectiveMonthlyWithdrawal, cur))
		b.WriteString("\n")

		fmt.Fprintf(b, "## Growth (%s)\n\n", r.Projection.Granularity)
		b.WriteString("| Period | Contributed | Value | Real value |\n|---:|---:|---:|---:|\n")
		for _, gp := range r.Projection.Series {
			fmt.Fprintf(b, "| %d | %s | %s | %s |\n", gp.Period,
				FormatCurrency(gp.CumulativeContribution, cur), FormatCurrency(gp.ProjectedValue, cur), FormatCurrency(gp.InflationAdjustedValue, cur))
		}
		b.WriteString("\n")
	}

	if r.Comparison != nil {
		b.WriteString("## Scenario comparison\n\n")
		b.WriteString("| Scenario | Rate | Future value |\n|---|---:|---:|\n")
		for _, sc := range r.Comparison.Scenarios {
			label := scenarioLabel(sc)
			if sc.Selected {
				label = "**" + label + "**"
			}
			fmt.Fprintf(b, "| %s | %s | %s |\n", label, FormatPercentage(sc.RatePercent), FormatCurrency(sc.FutureValue, cur))
		}
		b.WriteString("\n")
	}

	if s := r.Simulation; s != nil {
		fmt.Fprintf(b, "## Monte Carlo (%d runs, %s volatility)\n\n", s.NumSimulations, FormatPercentage(s.VolatilityPercent))
		b.WriteString("| Percentile | Future value |\n|---|---:|\n")
		for _, p := range percentileRows(s.Percentiles) {
			mdRow(b, p.label, FormatCurrency(p.value, cur))
		}
		fmt.Fprintf(b, "\nProbability of ending below the amount invested: **%s**\n\n", FormatProbability(s.ProbabilityOfLoss))
	}

	if len(r.Sweep) > 0 {
		b.WriteString("## Return rate sensitivity\n\n")
		b.WriteString("| Rate | Future value | Real value |\n|---:|---:|---:|\n")
		for _, p := range r.Sweep {
			fmt.Fprintf(b, "| %s | %s | %s |\n", FormatPercentage(p.RatePercent), FormatCurrency(p.FutureValue, cur), FormatCurrency(p.InflationAdjustedFutureValue, cur))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Assumptions\n\n")
	for _, a := range assumptionsFor(r) {
		fmt.Fprintf(b, "- %s\n", strings.TrimSpace(a))
	}
}

func mdRow(b *bytes.Buffer, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}
