package output

import (
	"bytes"
	"fmt"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// ConsoleLiteFormatter provides a concise one-block-per-plan summary via the formatter interface.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string      { return "console-lite" }
func (c ConsoleLiteFormatter) Extension() string { return "txt" }

func (c ConsoleLiteFormatter) Format(reports []domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SIP PLAN SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, r := range reports {
		if r.Projection == nil {
			continue
		}
		cur := currencyOf(r)
		o := r.Projection.Outcome
		fmt.Fprintf(&buf, "%s: Invested=%s FutureValue=%s Gain=%s Return=%s\n",
			reportTitle(r),
			FormatCurrency(o.TotalContribution, cur),
			FormatCurrency(o.FutureValue, cur),
			FormatCurrency(o.TotalGain, cur),
			FormatPercentage(o.AbsoluteReturnPercent),
		)
		fmt.Fprintf(&buf, "  RealValue=%s PostTax=%s MonthlyWithdrawal=%s\n",
			FormatCurrency(o.InflationAdjustedFutureValue, cur),
			FormatCurrency(o.PostTaxFutureValue, cur),
			FormatCurrency(o.EffectiveMonthlyWithdrawal, cur),
		)
		if rec := AnalyzeScenarios(r.Comparison); rec.ScenarioName != "" {
			fmt.Fprintf(&buf, "  Band: %s (Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.Change, cur), FormatPercentage(rec.PercentageChange))
		}
	}
	return buf.Bytes(), nil
}
