package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatrix/sipcalc/internal/calculation"
	"github.com/stockmatrix/sipcalc/internal/config"
	"github.com/stockmatrix/sipcalc/internal/domain"
	"github.com/stockmatrix/sipcalc/internal/output"
)

func TestFormatters(t *testing.T) {
	if got := output.FormatCurrency(123.45, "USD"); got != "$123.45" {
		t.Fatalf("FormatCurrency got %s", got)
	}
	// FormatPercentage expects the value already in percentage units (not a 0-1 fraction)
	if got := output.FormatPercentage(12.34); got != "12.34%" {
		t.Fatalf("FormatPercentage got %s", got)
	}
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(examplePlans)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, output.SaveConfiguration(cfg, out))

	fi, err := os.Stat(out)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())

	reloaded, err := parser.LoadFromFile(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Plans[0].InvestmentPlan.Amount, reloaded.Plans[0].InvestmentPlan.Amount)
	assert.True(t, cfg.Plans[0].StartDate.Equal(*reloaded.Plans[0].StartDate))
}

func TestReportFormats_AllPlansRendered(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(examplePlans)
	require.NoError(t, err)
	reports, err := calculation.NewCalculationEngine().RunPlans(cfg)
	require.NoError(t, err)

	for _, format := range []string{"console", "lite", "md", "html", "json"} {
		data, err := output.Render(reports, format)
		require.NoError(t, err, format)
		for _, r := range reports {
			assert.Contains(t, strings.ToLower(string(data)), strings.ToLower(r.Name), format)
		}
	}

	data, err := output.Render(reports, "msgpack")
	require.NoError(t, err)
	decoded, err := output.DecodeMsgpack(data)
	require.NoError(t, err)
	require.Len(t, decoded, len(reports))
	assert.Equal(t, domain.ContributionLumpSum, decoded[1].Plan.ContributionMode)
}
