package output_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatrix/sipcalc/internal/config"
	"github.com/stockmatrix/sipcalc/internal/domain"
	"github.com/stockmatrix/sipcalc/internal/output"
)

func sampleReports() []domain.Report {
	return []domain.Report{{
		Name:     "Baseline",
		Currency: "USD",
		Plan: domain.InvestmentPlan{
			ContributionMode:        domain.ContributionRecurring,
			Amount:                  100,
			AnnualReturnRatePercent: 0,
			DurationYears:           1,
		},
		Projection: &domain.Projection{
			Granularity: domain.GranularityYearly,
			Outcome:     domain.InvestmentOutcome{FutureValue: 1200, TotalContribution: 1200, PostTaxFutureValue: 1200, EffectiveMonthlyWithdrawal: 100},
			Series:      []domain.GrowthPoint{{Period: 12, CumulativeContribution: 1200, ProjectedValue: 1200, InflationAdjustedValue: 1200}},
		},
	}}
}

func TestRender(t *testing.T) {
	out, err := output.Render(sampleReports(), "console-lite")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Baseline: Invested=$1,200.00 FutureValue=$1,200.00")
}

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()

	files, err := output.GenerateReport(sampleReports(), "json", dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".json", filepath.Ext(files[0]))
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Baseline"`)

	files, err = output.GenerateReport(sampleReports(), "all", dir)
	require.NoError(t, err)
	assert.Len(t, files, 3)
	for _, f := range files {
		assert.FileExists(t, f)
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := output.GenerateReport(sampleReports(), "definitely-not-a-format", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, output.ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "Try one of:")

	_, err = output.Render(nil, "pdf")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}

func TestSaveConfiguration(t *testing.T) {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	path := filepath.Join(t.TempDir(), "plans.yaml")

	require.NoError(t, output.SaveConfiguration(cfg, path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, len(cfg.Plans), len(loaded.Plans))
	assert.Equal(t, cfg.Plans[0].Name, loaded.Plans[0].Name)
	assert.Equal(t, cfg.Granularity, loaded.Granularity)
}
