package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stockmatrix/sipcalc/internal/calculation"
	"github.com/stockmatrix/sipcalc/internal/config"
	"github.com/stockmatrix/sipcalc/internal/domain"
	"github.com/stockmatrix/sipcalc/internal/funds"
)

// maxBodyBytes bounds a plan request body
const maxBodyBytes = 1 << 20

// FundSource lists the funds of the configured returns table
type FundSource interface {
	Funds(ctx context.Context) ([]funds.Fund, error)
}

// Handlers serves the calculation endpoints
type Handlers struct {
	engine    *calculation.CalculationEngine
	simulator *calculation.MonteCarloSimulator
	funds     FundSource
	settings  config.Settings
	log       zerolog.Logger
}

// NewHandlers creates the handlers. A nil engine or simulator gets a default one.
func NewHandlers(engine *calculation.CalculationEngine, simulator *calculation.MonteCarloSimulator, source FundSource, settings config.Settings, log zerolog.Logger) *Handlers {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if simulator == nil {
		simulator = calculation.NewMonteCarloSimulator()
	}
	return &Handlers{
		engine:    engine,
		simulator: simulator,
		funds:     source,
		settings:  settings,
		log:       log,
	}
}

// RegisterRoutes registers the health check and the /api routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/sip", func(r chi.Router) {
			r.Post("/project", h.HandleProject)   // growth projection and scenario comparison
			r.Post("/compare", h.HandleCompare)   // scenario comparison only
			r.Post("/simulate", h.HandleSimulate) // Monte Carlo summary
			r.Post("/sweep", h.HandleSweep)       // return rate sensitivity
		})
		r.Get("/funds", h.HandleFunds)
	})
}

// envelope wraps every successful response
type envelope struct {
	Data     any      `json:"data"`
	Metadata metadata `json:"metadata"`
}

type metadata struct {
	Timestamp     string `json:"timestamp"`
	CalculationID string `json:"calculation_id"`
}

// HandleHealth reports liveness
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// HandleProject handles POST /api/sip/project
func (h *Handlers) HandleProject(w http.ResponseWriter, r *http.Request) {
	var plan domain.NamedPlan
	if err := decodeBody(w, r, &plan); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// unknown names pass through and fail validation
	granularity, _ := domain.ParseGranularity(r.URL.Query().Get("granularity"))

	report, err := h.engine.RunPlan(r.Context(), plan, granularity)
	if err != nil {
		h.writeCalculationError(w, err)
		return
	}
	report.Currency = h.settings.Report.Currency

	h.writeData(w, report)
}

// HandleCompare handles POST /api/sip/compare
func (h *Handlers) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var plan domain.InvestmentPlan
	if err := decodeBody(w, r, &plan); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comparison, err := h.engine.CompareScenarios(plan)
	if err != nil {
		h.writeCalculationError(w, err)
		return
	}

	h.writeData(w, comparison)
}

// HandleSimulate handles POST /api/sip/simulate
func (h *Handlers) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var plan domain.InvestmentPlan
	if err := decodeBody(w, r, &plan); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := calculation.MonteCarloConfig{NumSimulations: h.settings.Simulation.NumSimulations}
	q := r.URL.Query()
	var err error
	if v := q.Get("simulations"); v != "" {
		if cfg.NumSimulations, err = strconv.Atoi(v); err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid simulations: %q", v))
			return
		}
	}
	if v := q.Get("seed"); v != "" {
		if cfg.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid seed: %q", v))
			return
		}
	}
	if v := q.Get("volatility"); v != "" {
		vol, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid volatility: %q", v))
			return
		}
		cfg.VolatilityPercent = &vol
	}
	if v := q.Get("target"); v != "" {
		if cfg.TargetValue, err = strconv.ParseFloat(v, 64); err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid target: %q", v))
			return
		}
	}

	summary, err := h.simulator.Run(r.Context(), plan, cfg)
	if err != nil {
		h.writeCalculationError(w, err)
		return
	}

	h.writeData(w, summary)
}

// HandleSweep handles POST /api/sip/sweep. Missing bounds default to the plan rate ±4 points in
// steps of 1.
func (h *Handlers) HandleSweep(w http.ResponseWriter, r *http.Request) {
	var plan domain.InvestmentPlan
	if err := decodeBody(w, r, &plan); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	bounds := map[string]float64{
		"from": plan.AnnualReturnRatePercent - 4,
		"to":   plan.AnnualReturnRatePercent + 4,
		"step": 1,
	}
	for name := range bounds {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: %q", name, v))
			return
		}
		bounds[name] = f
	}

	points, err := h.engine.SweepReturnRate(plan, bounds["from"], bounds["to"], bounds["step"])
	if err != nil {
		h.writeCalculationError(w, err)
		return
	}

	h.writeData(w, points)
}

// HandleFunds handles GET /api/funds. With a horizon, only funds reporting it are returned, best
// first.
func (h *Handlers) HandleFunds(w http.ResponseWriter, r *http.Request) {
	if h.funds == nil {
		h.writeError(w, http.StatusServiceUnavailable, "fund returns source is not configured")
		return
	}

	var horizon funds.Horizon
	if v := r.URL.Query().Get("horizon"); v != "" {
		var ok bool
		if horizon, ok = funds.ParseHorizon(v); !ok {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown horizon: %q", v))
			return
		}
	}

	list, err := h.funds.Funds(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch fund returns")
		h.writeError(w, http.StatusBadGateway, "failed to fetch fund returns")
		return
	}
	if horizon != "" {
		list = funds.RankByHorizon(list, horizon)
	}

	h.writeData(w, list)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeCalculationError maps engine errors to status codes
func (h *Handlers) writeCalculationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calculation.ErrInvalidPlan):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, calculation.ErrProjectionOverflow):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		h.writeError(w, http.StatusGatewayTimeout, "calculation timed out")
	default:
		h.log.Error().Err(err).Msg("Calculation failed")
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handlers) writeData(w http.ResponseWriter, data any) {
	h.writeJSON(w, http.StatusOK, envelope{
		Data: data,
		Metadata: metadata{
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			CalculationID: uuid.NewString(),
		},
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
