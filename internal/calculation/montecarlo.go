package calculation

import (
	"context"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

const (
	// DefaultNumSimulations is used when the config leaves NumSimulations at zero
	DefaultNumSimulations = 1000
	// MaxNumSimulations bounds a single run
	MaxNumSimulations = 100000
)

// defaultVolatility is the annual standard deviation of returns, in percent, assumed per risk profile
var defaultVolatility = map[domain.RiskProfile]float64{
	domain.RiskNone:         12,
	domain.RiskConservative: 6,
	domain.RiskModerate:     12,
	domain.RiskAggressive:   18,
}

// DefaultVolatility returns the annual volatility percent assumed for a risk profile
func DefaultVolatility(profile domain.RiskProfile) float64 {
	if v, ok := defaultVolatility[profile]; ok {
		return v
	}
	return defaultVolatility[domain.RiskNone]
}

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations    int
	Seed              uint64   // 0 draws a fresh seed
	VolatilityPercent *float64 // nil selects DefaultVolatility for the plan's risk profile
	TargetValue       float64  // optional goal for ProbabilityOfTarget
}

// MonteCarloSimulator runs the compounding loop with normally distributed monthly returns
type MonteCarloSimulator struct {
	MaxConcurrency int
	Logger         Logger
}

// NewMonteCarloSimulator creates a new Monte Carlo simulator
func NewMonteCarloSimulator() *MonteCarloSimulator {
	return &MonteCarloSimulator{
		MaxConcurrency: runtime.GOMAXPROCS(0),
		Logger:         NopLogger{},
	}
}

// SetLogger sets the simulator logger. If nil is provided, a no-op logger is used.
func (mcs *MonteCarloSimulator) SetLogger(l Logger) {
	if l == nil {
		mcs.Logger = NopLogger{}
		return
	}
	mcs.Logger = l
}

// Run simulates the plan config.NumSimulations times and summarizes the distribution of final
// values. Each simulation draws from its own stream keyed by (seed, index), so the result does not
// depend on scheduling. A zero volatility reproduces the deterministic future value.
func (mcs *MonteCarloSimulator) Run(ctx context.Context, plan domain.InvestmentPlan, config MonteCarloConfig) (*domain.SimulationSummary, error) {
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}

	numSims := config.NumSimulations
	if numSims == 0 {
		numSims = DefaultNumSimulations
	}
	if numSims < 0 || numSims > MaxNumSimulations {
		return nil, invalid("simulations", "must be between 1 and %d, got %d", MaxNumSimulations, numSims)
	}

	volatility := DefaultVolatility(plan.RiskProfile)
	if config.VolatilityPercent != nil {
		volatility = *config.VolatilityPercent
	}
	if !isFinite(volatility) || volatility < 0 {
		return nil, invalid("volatility", "must be a non-negative number, got %g", volatility)
	}

	seed := config.Seed
	if seed == 0 {
		seed = seedFunc()
	}

	deterministic, err := futureValue(plan)
	if err != nil {
		return nil, err
	}

	mean := plan.AnnualReturnRatePercent / 100 / 12
	sigma := volatility / 100 / math.Sqrt(12)
	periods := plan.Periods()

	finals := make([]float64, numSims)
	g, gctx := errgroup.WithContext(ctx)
	limit := mcs.MaxConcurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for s := 0; s < numSims; s++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(seed, uint64(s)))
			c := newCompounder(plan)
			for k := 1; k <= periods; k++ {
				if err := c.step(k, mean+sigma*rng.NormFloat64()); err != nil {
					return err
				}
			}
			finals[s] = c.value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contributed := plan.Amount
	if plan.IsRecurring() {
		contributed = plan.Amount * float64(periods)
	}

	summary := summarizeSimulations(finals, contributed, config.TargetValue)
	summary.Seed = seed
	summary.VolatilityPercent = volatility
	summary.DeterministicFutureValue = deterministic

	mcs.Logger.Infof("monte carlo: %d simulations, seed=%d, volatility=%.1f%%, median=%.2f",
		numSims, seed, volatility, summary.Percentiles.P50)
	return summary, nil
}

// summarizeSimulations sorts finals in place and computes the distribution summary
func summarizeSimulations(finals []float64, contributed, target float64) *domain.SimulationSummary {
	sort.Float64s(finals)

	summary := &domain.SimulationSummary{
		NumSimulations:    len(finals),
		TotalContribution: contributed,
		MeanFutureValue:   stat.Mean(finals, nil),
		TargetValue:       target,
		Percentiles: domain.PercentileRanges{
			P10: stat.Quantile(0.10, stat.Empirical, finals, nil),
			P25: stat.Quantile(0.25, stat.Empirical, finals, nil),
			P50: stat.Quantile(0.50, stat.Empirical, finals, nil),
			P75: stat.Quantile(0.75, stat.Empirical, finals, nil),
			P90: stat.Quantile(0.90, stat.Empirical, finals, nil),
		},
	}
	if len(finals) > 1 {
		summary.StdDevFutureValue = stat.StdDev(finals, nil)
	}

	// finals is sorted, so the counts are search positions
	losses := sort.SearchFloat64s(finals, contributed)
	summary.ProbabilityOfLoss = float64(losses) / float64(len(finals))
	if target > 0 {
		below := sort.SearchFloat64s(finals, target)
		summary.ProbabilityOfTarget = float64(len(finals)-below) / float64(len(finals))
	}
	return summary
}
