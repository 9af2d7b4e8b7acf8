package output

import (
	"bytes"
	"encoding/csv"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// CSVDetailedExporter exports the growth series, one row per plan and growth point. The columns are
// the chart series keyed by period.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(reports []domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "Period", "Year", "Date", "CumulativeContribution", "ProjectedValue", "InflationAdjustedValue", "Gain"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range reports {
		if r.Projection == nil {
			continue
		}
		cur := currencyOf(r)
		for _, gp := range r.Projection.Series {
			date := ""
			if gp.Date != nil {
				date = gp.Date.Format("2006-01-02")
			}
			row := []string{
				r.Name,
				intToString(gp.Period),
				intToString(gp.Year()),
				date,
				FormatAmount(gp.CumulativeContribution, cur),
				FormatAmount(gp.ProjectedValue, cur),
				FormatAmount(gp.InflationAdjustedValue, cur),
				FormatAmount(gp.Gain, cur),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
