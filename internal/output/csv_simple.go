package output

import (
	"bytes"
	"encoding/csv"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per plan).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(reports []domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "Currency", "Mode", "Amount", "RatePercent", "DurationYears", "TotalContribution", "FutureValue", "TotalGain", "AbsoluteReturnPercent", "InflationAdjustedFutureValue", "TaxOnGain", "PostTaxFutureValue", "EffectiveMonthlyWithdrawal", "Conservative", "Moderate", "Aggressive"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range reports {
		if r.Projection == nil {
			continue
		}
		cur := currencyOf(r)
		o := r.Projection.Outcome
		row := []string{
			r.Name,
			cur,
			string(r.Plan.ContributionMode),
			FormatAmount(r.Plan.Amount, cur),
			floatToString(r.Plan.AnnualReturnRatePercent),
			intToString(r.Plan.DurationYears),
			FormatAmount(o.TotalContribution, cur),
			FormatAmount(o.FutureValue, cur),
			FormatAmount(o.TotalGain, cur),
			percentValue(o.AbsoluteReturnPercent),
			FormatAmount(o.InflationAdjustedFutureValue, cur),
			FormatAmount(o.TaxOnGain, cur),
			FormatAmount(o.PostTaxFutureValue, cur),
			FormatAmount(o.EffectiveMonthlyWithdrawal, cur),
		}
		row = append(row, bandValues(r.Comparison, cur)...)
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// bandValues returns the conservative, moderate and aggressive future values, blank without a comparison
func bandValues(c *domain.ScenarioComparison, cur string) []string {
	out := []string{"", "", ""}
	if c == nil {
		return out
	}
	for i, label := range []string{"Conservative", "Moderate", "Aggressive"} {
		if sc, ok := c.Get(label); ok {
			out[i] = FormatAmount(sc.FutureValue, cur)
		}
	}
	return out
}
