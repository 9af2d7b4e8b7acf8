package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockmatrix/sipcalc/internal/calculation"
	"github.com/stockmatrix/sipcalc/internal/config"
	"github.com/stockmatrix/sipcalc/internal/domain"
	"github.com/stockmatrix/sipcalc/internal/funds"
	"github.com/stockmatrix/sipcalc/internal/output"
	"github.com/stockmatrix/sipcalc/internal/server"
)

// --- Project Command ---

func newProjectCmd(a *app) *cobra.Command {
	var pf planFlags
	var of outputFlags
	var granularity string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the growth of one plan",
		Example: `  sipcalc project --amount 5000 --rate 12 --years 10 --inflation 6
  sipcalc project --mode lump_sum --amount 100000 --rate 10 --years 5 --format markdown
  sipcalc project --plan plans.yaml --name "Retirement SIP" --granularity monthly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, currency, err := pf.resolve(cmd, a)
			if err != nil {
				return err
			}
			if granularity == "" {
				granularity = a.settings.Report.Granularity
			}
			g, _ := domain.ParseGranularity(granularity)

			report, err := a.engine().RunPlan(cmd.Context(), plan, g)
			if err != nil {
				return err
			}
			report.Currency = currency
			return of.write(cmd, a, []domain.Report{*report})
		},
	}
	addPlanFlags(cmd, &pf)
	addOutputFlags(cmd, &of)
	cmd.Flags().StringVarP(&granularity, "granularity", "g", "", "growth series granularity: monthly or yearly (default: report.granularity setting)")
	return cmd
}

// --- Compare Command ---

func newCompareCmd(a *app) *cobra.Command {
	var pf planFlags
	var of outputFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the plan with the conservative, moderate and aggressive bands",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, currency, err := pf.resolve(cmd, a)
			if err != nil {
				return err
			}
			comparison, err := a.engine().CompareScenarios(plan.InvestmentPlan)
			if err != nil {
				return err
			}
			return of.write(cmd, a, []domain.Report{{
				Name:        plan.Name,
				Currency:    currency,
				Plan:        plan.InvestmentPlan,
				Comparison:  comparison,
				Assumptions: calculation.GenerateAssumptions(plan.InvestmentPlan),
			}})
		},
	}
	addPlanFlags(cmd, &pf)
	addOutputFlags(cmd, &of)
	return cmd
}

// --- Simulate Command ---

func newSimulateCmd(a *app) *cobra.Command {
	var pf planFlags
	var of outputFlags
	var numSims int
	var seed uint64
	var volatility, target float64

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a Monte Carlo simulation of the plan with volatile monthly returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, currency, err := pf.resolve(cmd, a)
			if err != nil {
				return err
			}

			mc := calculation.MonteCarloConfig{
				NumSimulations: numSims,
				Seed:           seed,
				TargetValue:    target,
			}
			if !cmd.Flags().Changed("simulations") {
				mc.NumSimulations = a.settings.Simulation.NumSimulations
			}
			if cmd.Flags().Changed("volatility") {
				mc.VolatilityPercent = &volatility
			}

			ce := a.engine()
			report, err := ce.RunPlan(cmd.Context(), plan, domain.GranularityYearly)
			if err != nil {
				return err
			}
			summary, err := a.simulator().Run(cmd.Context(), plan.InvestmentPlan, mc)
			if err != nil {
				return err
			}
			report.Currency = currency
			report.Simulation = summary
			return of.write(cmd, a, []domain.Report{*report})
		},
	}
	addPlanFlags(cmd, &pf)
	addOutputFlags(cmd, &of)
	cmd.Flags().IntVarP(&numSims, "simulations", "n", calculation.DefaultNumSimulations, "number of simulated paths")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 draws a fresh one)")
	cmd.Flags().Float64Var(&volatility, "volatility", 0, "annual volatility in percent (default: by risk profile)")
	cmd.Flags().Float64Var(&target, "target", 0, "goal amount for the probability of reaching it")
	return cmd
}

// --- Sweep Command ---

func newSweepCmd(a *app) *cobra.Command {
	var pf planFlags
	var of outputFlags
	var from, to, step float64

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Project the plan across a range of return rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, currency, err := pf.resolve(cmd, a)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("from") {
				from = plan.AnnualReturnRatePercent - 4
			}
			if !cmd.Flags().Changed("to") {
				to = plan.AnnualReturnRatePercent + 4
			}

			points, err := a.engine().SweepReturnRate(plan.InvestmentPlan, from, to, step)
			if err != nil {
				return err
			}
			return of.write(cmd, a, []domain.Report{{
				Name:        plan.Name,
				Currency:    currency,
				Plan:        plan.InvestmentPlan,
				Sweep:       points,
				Assumptions: calculation.GenerateAssumptions(plan.InvestmentPlan),
			}})
		},
	}
	addPlanFlags(cmd, &pf)
	addOutputFlags(cmd, &of)
	cmd.Flags().Float64Var(&from, "from", 0, "lowest annual rate in percent (default: plan rate - 4)")
	cmd.Flags().Float64Var(&to, "to", 0, "highest annual rate in percent (default: plan rate + 4)")
	cmd.Flags().Float64Var(&step, "step", 1, "rate increment in percent")
	return cmd
}

// --- Run Command ---

func newRunCmd(a *app) *cobra.Command {
	var of outputFlags
	var dir string

	cmd := &cobra.Command{
		Use:   "run [plan-file]",
		Short: "Project every plan of a plan file",
		Long: `Project and compare every plan of a plan file. With --output-dir the report is written to a
timestamped file; format "all" writes the console, detailed CSV and HTML reports together.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			reports, err := a.engine().RunPlans(cfg)
			if err != nil {
				return err
			}

			if dir == "" {
				return of.write(cmd, a, reports)
			}
			format := of.format
			if format == "" {
				format = a.settings.Report.Format
			}
			files, err := output.GenerateReport(reports, format, dir)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
			}
			return nil
		},
	}
	addOutputFlags(cmd, &of)
	cmd.Flags().StringVar(&dir, "output-dir", "", "write timestamped report files to this directory")
	return cmd
}

// --- Funds Command ---

func newFundsCmd(a *app) *cobra.Command {
	var url, horizon string
	var top int

	cmd := &cobra.Command{
		Use:   "funds",
		Short: "List mutual funds from the configured returns table",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, ok := funds.ParseHorizon(horizon)
			if !ok {
				return fmt.Errorf("unknown horizon %q", horizon)
			}
			list, err := fetchFunds(cmd.Context(), a, url)
			if err != nil {
				return err
			}
			list = funds.RankByHorizon(list, h)
			if top > 0 && len(list) > top {
				list = list[:top]
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-50s %-14s %8s\n", "Scheme", "Plan", string(h))
			for _, f := range list {
				fmt.Fprintf(w, "%-50s %-14s %7.2f%%\n", f.Scheme, f.Plan, f.Returns[h])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "fund returns page (default: funds.source_url setting)")
	cmd.Flags().StringVar(&horizon, "horizon", string(funds.FiveYears), "return horizon to rank by")
	cmd.Flags().IntVar(&top, "top", 20, "number of funds to list (0 for all)")
	return cmd
}

// --- Serve Command ---

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := *a.settings
			if cmd.Flags().Changed("port") {
				settings.Server.Port = port
			}

			var source server.FundSource
			if settings.Funds.SourceURL != "" {
				source = funds.Source{Client: funds.NewClient(settings.Funds.Timeout), URL: settings.Funds.SourceURL}
			}

			srv := server.New(server.Config{
				Settings:   settings,
				Log:        a.log,
				Engine:     a.engine(),
				Simulator:  a.simulator(),
				FundSource: source,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(settings))
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port (default: server.port setting)")
	return cmd
}

func shutdownTimeout(s config.Settings) time.Duration {
	if s.Server.ShutdownTimeout > 0 {
		return s.Server.ShutdownTimeout
	}
	return 10 * time.Second
}

// --- Example Config Command ---

func newExampleConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example-config [file]",
		Short: "Write an example plan file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "example_plans.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			cfg := config.NewInputParser().CreateExampleConfiguration()
			cfg.Currency = a.settings.Report.Currency
			if err := output.SaveConfiguration(cfg, filename); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example plan file written to %s\n", filename)
			return nil
		},
	}
}
