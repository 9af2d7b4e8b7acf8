package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// SimulationCSVExporter exports Monte Carlo summaries and rate sweeps as Metric,Value,Description rows.
type SimulationCSVExporter struct{}

func (s SimulationCSVExporter) Name() string      { return "simulation-csv" }
func (s SimulationCSVExporter) Extension() string { return "csv" }

func (s SimulationCSVExporter) Format(reports []domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Plan", "Metric", "Value", "Description"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range reports {
		cur := currencyOf(r)
		var rows [][]string
		if sim := r.Simulation; sim != nil {
			rows = append(rows,
				[]string{"Simulations", intToString(sim.NumSimulations), "Number of simulated paths"},
				[]string{"Seed", fmt.Sprintf("%d", sim.Seed), "Random seed for reproducing the run"},
				[]string{"Volatility", FormatPercentage(sim.VolatilityPercent), "Annual standard deviation of returns"},
				[]string{"Deterministic", FormatAmount(sim.DeterministicFutureValue, cur), "Future value at the expected rate"},
				[]string{"Mean", FormatAmount(sim.MeanFutureValue, cur), "Mean simulated future value"},
				[]string{"StdDev", FormatAmount(sim.StdDevFutureValue, cur), "Standard deviation of simulated future value"},
			)
			for _, p := range percentileRows(sim.Percentiles) {
				rows = append(rows, []string{p.label, FormatAmount(p.value, cur), "Simulated future value percentile"})
			}
			rows = append(rows, []string{"ProbabilityOfLoss", FormatProbability(sim.ProbabilityOfLoss), "Share of paths ending below total contribution"})
			if sim.TargetValue > 0 {
				rows = append(rows, []string{"ProbabilityOfTarget", FormatProbability(sim.ProbabilityOfTarget), "Share of paths reaching " + FormatAmount(sim.TargetValue, cur)})
			}
		}
		for _, p := range r.Sweep {
			rows = append(rows, []string{"FutureValueAt" + floatToString(p.RatePercent), FormatAmount(p.FutureValue, cur), "Future value at this annual rate"})
		}

		for _, row := range rows {
			if err := w.Write(append([]string{r.Name}, row...)); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
