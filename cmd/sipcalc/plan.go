package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockmatrix/sipcalc/internal/config"
	"github.com/stockmatrix/sipcalc/internal/domain"
	"github.com/stockmatrix/sipcalc/internal/funds"
	"github.com/stockmatrix/sipcalc/internal/output"
)

// planFlags describes one plan either through a plan file or individual flags. Flags given together
// with --plan override the file's values.
type planFlags struct {
	file      string
	name      string
	mode      string
	amount    float64
	rate      float64
	years     int
	inflation float64
	tax       float64
	profile   string
	start     string
	fund      string
	horizon   string
	fundsURL  string
}

func addPlanFlags(cmd *cobra.Command, pf *planFlags) {
	f := cmd.Flags()
	f.StringVar(&pf.file, "plan", "", "plan file (YAML)")
	f.StringVar(&pf.name, "name", "", "plan name (selects a plan from --plan)")
	f.StringVar(&pf.mode, "mode", "recurring", "contribution mode: recurring (sip) or lump_sum")
	f.Float64Var(&pf.amount, "amount", 0, "monthly contribution or lump sum principal")
	f.Float64Var(&pf.rate, "rate", 0, "expected annual return in percent")
	f.IntVar(&pf.years, "years", 0, "investment duration in years")
	f.Float64Var(&pf.inflation, "inflation", 0, "annual inflation in percent")
	f.Float64Var(&pf.tax, "tax", 0, "tax on gains in percent")
	f.StringVar(&pf.profile, "profile", "", "risk profile: conservative, moderate or aggressive")
	f.StringVar(&pf.start, "start", "", "start date (YYYY-MM-DD) for dated growth points")
	f.StringVar(&pf.fund, "fund", "", "seed the return rate from this fund's track record")
	f.StringVar(&pf.horizon, "horizon", string(funds.FiveYears), "fund return horizon used with --fund")
	f.StringVar(&pf.fundsURL, "funds-url", "", "fund returns page (default: funds.source_url setting)")
}

// resolve builds the plan and returns it with the report currency
func (pf *planFlags) resolve(cmd *cobra.Command, a *app) (domain.NamedPlan, string, error) {
	plan := domain.NamedPlan{Name: "Investment Plan"}
	currency := a.settings.Report.Currency

	if pf.file != "" {
		cfg, err := config.NewInputParser().LoadFromFile(pf.file)
		if err != nil {
			return plan, "", err
		}
		selected, err := selectPlan(cfg, pf.name)
		if err != nil {
			return plan, "", err
		}
		plan = selected
		currency = cfg.Currency
	} else {
		plan.ContributionMode = domain.ContributionRecurring
	}

	flags := cmd.Flags()
	if flags.Changed("name") && pf.file == "" {
		plan.Name = pf.name
	}
	if flags.Changed("mode") {
		plan.ContributionMode, _ = domain.ParseContributionMode(pf.mode)
	}
	if flags.Changed("amount") {
		plan.Amount = pf.amount
	}
	if flags.Changed("rate") {
		plan.AnnualReturnRatePercent = pf.rate
	}
	if flags.Changed("years") {
		plan.DurationYears = pf.years
	}
	if flags.Changed("inflation") {
		plan.AnnualInflationRatePercent = pf.inflation
	}
	if flags.Changed("tax") {
		plan.AnnualTaxRatePercent = pf.tax
	}
	if flags.Changed("profile") {
		plan.RiskProfile, _ = domain.ParseRiskProfile(pf.profile)
	}
	if pf.start != "" {
		start, err := time.Parse("2006-01-02", pf.start)
		if err != nil {
			return plan, "", fmt.Errorf("invalid start date %q: %w", pf.start, err)
		}
		plan.StartDate = &start
	}

	if pf.fund != "" {
		rate, err := pf.fundRate(cmd.Context(), a)
		if err != nil {
			return plan, "", err
		}
		plan.AnnualReturnRatePercent = rate
	}

	return plan, currency, nil
}

// fundRate looks up the annualised return of --fund over --horizon
func (pf *planFlags) fundRate(ctx context.Context, a *app) (float64, error) {
	horizon, ok := funds.ParseHorizon(pf.horizon)
	if !ok || !horizon.IsAnnualised() {
		return 0, fmt.Errorf("horizon %q is not an annualised horizon (1Y, 2Y, 3Y, 5Y, 10Y)", pf.horizon)
	}
	list, err := fetchFunds(ctx, a, pf.fundsURL)
	if err != nil {
		return 0, err
	}
	fund, ok := funds.Find(list, pf.fund)
	if !ok {
		return 0, fmt.Errorf("fund %q not found", pf.fund)
	}
	rate, ok := fund.AnnualisedReturn(horizon)
	if !ok {
		return 0, fmt.Errorf("fund %q has no %s return", fund.Scheme, horizon)
	}
	a.log.Info().Str("fund", fund.Scheme).Str("horizon", string(horizon)).Float64("rate", rate).Msg("Seeded return rate from fund")
	return rate, nil
}

func fetchFunds(ctx context.Context, a *app, url string) ([]funds.Fund, error) {
	if url == "" {
		url = a.settings.Funds.SourceURL
	}
	if url == "" {
		return nil, fmt.Errorf("no fund returns source: pass --funds-url or set funds.source_url")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return funds.NewClient(a.settings.Funds.Timeout).Fetch(ctx, url)
}

func selectPlan(cfg *domain.Configuration, name string) (domain.NamedPlan, error) {
	if name == "" {
		return cfg.Plans[0], nil
	}
	for _, p := range cfg.Plans {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return domain.NamedPlan{}, fmt.Errorf("plan %q not found in plan file", name)
}

// outputFlags select the formatter and destination
type outputFlags struct {
	format string
	file   string
}

func addOutputFlags(cmd *cobra.Command, of *outputFlags) {
	cmd.Flags().StringVarP(&of.format, "format", "f", "", "output format (default: report.format setting)")
	cmd.Flags().StringVarP(&of.file, "output", "o", "", "write the report to this file instead of stdout")
}

func (of *outputFlags) write(cmd *cobra.Command, a *app, reports []domain.Report) error {
	format := of.format
	if format == "" {
		format = a.settings.Report.Format
	}
	data, err := output.Render(reports, format)
	if err != nil {
		return err
	}
	if of.file == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(of.file, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", of.file, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", of.file)
	return nil
}
