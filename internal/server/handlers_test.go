package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatrix/sipcalc/internal/config"
	"github.com/stockmatrix/sipcalc/internal/domain"
	"github.com/stockmatrix/sipcalc/internal/funds"
)

const retirementPlan = `{
	"name": "Retirement SIP",
	"contribution_mode": "sip",
	"amount": 5000,
	"annual_return_rate_percent": 12,
	"duration_years": 10,
	"annual_inflation_rate_percent": 6,
	"risk_profile": "moderate"
}`

type stubFunds struct {
	list []funds.Fund
	err  error
}

func (s stubFunds) Funds(ctx context.Context) ([]funds.Fund, error) { return s.list, s.err }

func testSettings() config.Settings {
	return config.Settings{
		Server:     config.ServerSettings{Port: 0, RequestTimeout: 5 * time.Second},
		Report:     config.ReportSettings{Currency: "INR"},
		Simulation: config.SimulationSettings{NumSimulations: 100},
	}
}

func newTestServer(source FundSource) http.Handler {
	return New(Config{
		Settings:   testSettings(),
		Log:        zerolog.New(nil).Level(zerolog.Disabled),
		FundSource: source,
	}).Handler()
}

type response struct {
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		Timestamp     string `json:"timestamp"`
		CalculationID string `json:"calculation_id"`
	} `json:"metadata"`
	Error string `json:"error"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestProject(t *testing.T) {
	rec, resp := do(t, newTestServer(nil), http.MethodPost, "/api/sip/project?granularity=yearly", retirementPlan)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	_, err := uuid.Parse(resp.Metadata.CalculationID)
	assert.NoError(t, err)
	_, err = time.Parse(time.RFC3339, resp.Metadata.Timestamp)
	assert.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal(resp.Data, &report))
	assert.Equal(t, "Retirement SIP", report.Name)
	assert.Equal(t, "INR", report.Currency)
	assert.Equal(t, domain.ContributionRecurring, report.Plan.ContributionMode)
	require.NotNil(t, report.Projection)
	assert.Len(t, report.Projection.Series, 10)
	assert.InDelta(t, 1161695.38, report.Projection.Outcome.FutureValue, 0.01)
	require.NotNil(t, report.Comparison)
	assert.Len(t, report.Comparison.Scenarios, 4)
}

func TestProject_MonthlyByDefault(t *testing.T) {
	rec, resp := do(t, newTestServer(nil), http.MethodPost, "/api/sip/project", retirementPlan)
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(resp.Data, &report))
	assert.Equal(t, domain.GranularityMonthly, report.Projection.Granularity)
	assert.Len(t, report.Projection.Series, 120)
}

func TestProject_Errors(t *testing.T) {
	h := newTestServer(nil)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		msg    string
	}{
		{"malformed json", "/api/sip/project", `{"amount":`, http.StatusBadRequest, "invalid request body"},
		{"zero amount", "/api/sip/project", `{"contribution_mode":"recurring","amount":0,"annual_return_rate_percent":12,"duration_years":10}`, http.StatusBadRequest, "amount"},
		{"unknown mode", "/api/sip/project", `{"contribution_mode":"weekly","amount":100,"annual_return_rate_percent":12,"duration_years":10}`, http.StatusBadRequest, "contribution_mode"},
		{"bad granularity", "/api/sip/project?granularity=weekly", retirementPlan, http.StatusBadRequest, "granularity"},
		{"huge duration", "/api/sip/project", `{"contribution_mode":"recurring","amount":100,"annual_return_rate_percent":12,"duration_years":1000000}`, http.StatusBadRequest, "duration_years"},
		{"duration overflowing periods", "/api/sip/project?granularity=yearly", `{"contribution_mode":"recurring","amount":100,"annual_return_rate_percent":12,"duration_years":768614336404564651}`, http.StatusBadRequest, "duration_years"},
		{"huge duration compare", "/api/sip/compare", `{"contribution_mode":"recurring","amount":100,"annual_return_rate_percent":12,"duration_years":1000000}`, http.StatusBadRequest, "duration_years"},
		{"huge duration simulate", "/api/sip/simulate?simulations=10&seed=1", `{"contribution_mode":"recurring","amount":100,"annual_return_rate_percent":12,"duration_years":1000000}`, http.StatusBadRequest, "duration_years"},
		{"overflow", "/api/sip/project", `{"contribution_mode":"lump_sum","amount":1000,"annual_return_rate_percent":50000,"duration_years":100}`, http.StatusUnprocessableEntity, "overflow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, resp.Error, tt.msg)
		})
	}
}

func TestCompare(t *testing.T) {
	rec, resp := do(t, newTestServer(nil), http.MethodPost, "/api/sip/compare", retirementPlan)
	require.Equal(t, http.StatusOK, rec.Code)

	var comparison domain.ScenarioComparison
	require.NoError(t, json.Unmarshal(resp.Data, &comparison))
	values := comparison.FutureValues()
	assert.InDelta(t, 920828.38, values["Conservative"], 0.01)
	assert.InDelta(t, 1393286.36, values["Aggressive"], 0.01)
	assert.InDelta(t, 1161695.38, values[domain.CurrentPlanLabel], 0.01)
}

func TestSimulate(t *testing.T) {
	h := newTestServer(nil)
	path := "/api/sip/simulate?simulations=200&seed=7&target=1000000"

	rec, resp := do(t, h, http.MethodPost, path, retirementPlan)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary domain.SimulationSummary
	require.NoError(t, json.Unmarshal(resp.Data, &summary))
	assert.Equal(t, 200, summary.NumSimulations)
	assert.Equal(t, uint64(7), summary.Seed)
	assert.Equal(t, 12.0, summary.VolatilityPercent)
	assert.Equal(t, 1000000.0, summary.TargetValue)
	assert.LessOrEqual(t, summary.Percentiles.P10, summary.Percentiles.P90)

	_, again := do(t, h, http.MethodPost, path, retirementPlan)
	assert.JSONEq(t, string(resp.Data), string(again.Data), "same seed gives the same summary")
}

func TestSimulate_ZeroVolatility(t *testing.T) {
	rec, resp := do(t, newTestServer(nil), http.MethodPost, "/api/sip/simulate?simulations=10&seed=1&volatility=0", retirementPlan)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.SimulationSummary
	require.NoError(t, json.Unmarshal(resp.Data, &summary))
	assert.InDelta(t, summary.DeterministicFutureValue, summary.Percentiles.P50, 0.01)
}

func TestSimulate_BadQuery(t *testing.T) {
	h := newTestServer(nil)
	for _, q := range []string{"simulations=abc", "seed=-1", "volatility=x", "target=y", "simulations=-5"} {
		rec, resp := do(t, h, http.MethodPost, "/api/sip/simulate?"+q, retirementPlan)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.NotEmpty(t, resp.Error, q)
	}
}

func TestSweep(t *testing.T) {
	h := newTestServer(nil)

	rec, resp := do(t, h, http.MethodPost, "/api/sip/sweep?from=8&to=12&step=2", retirementPlan)
	require.Equal(t, http.StatusOK, rec.Code)
	var points []domain.SensitivityPoint
	require.NoError(t, json.Unmarshal(resp.Data, &points))
	require.Len(t, points, 3)
	assert.Equal(t, 8.0, points[0].RatePercent)
	assert.InDelta(t, 1161695.38, points[2].FutureValue, 0.01)

	rec, resp = do(t, h, http.MethodPost, "/api/sip/sweep", retirementPlan)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &points))
	assert.Len(t, points, 9)

	rec, _ = do(t, h, http.MethodPost, "/api/sip/sweep?from=12&to=8", retirementPlan)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFunds(t *testing.T) {
	list := []funds.Fund{
		{Scheme: "Alpha", Returns: map[funds.Horizon]float64{funds.FiveYears: 14}},
		{Scheme: "Beta", Returns: map[funds.Horizon]float64{funds.OneYear: 20}},
		{Scheme: "Gamma", Returns: map[funds.Horizon]float64{funds.FiveYears: 17}},
	}
	h := newTestServer(stubFunds{list: list})

	rec, resp := do(t, h, http.MethodGet, "/api/funds?horizon=5y", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []funds.Fund
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Gamma", got[0].Scheme)

	rec, resp = do(t, h, http.MethodGet, "/api/funds", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Len(t, got, 3)

	rec, _ = do(t, h, http.MethodGet, "/api/funds?horizon=7Y", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFunds_Unavailable(t *testing.T) {
	rec, resp := do(t, newTestServer(nil), http.MethodGet, "/api/funds", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, resp.Error, "not configured")

	rec, _ = do(t, newTestServer(stubFunds{err: errors.New("boom")}), http.MethodGet, "/api/funds", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRoutesRegistered(t *testing.T) {
	h := newTestServer(nil)
	for _, path := range []string{"/api/sip/project", "/api/sip/compare", "/api/sip/simulate", "/api/sip/sweep"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
}
