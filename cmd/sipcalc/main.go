// sipcalc projects the growth of systematic and lump-sum investment plans.
//
// Main CLI entrypoint using the cobra command framework.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stockmatrix/sipcalc/internal/calculation"
	"github.com/stockmatrix/sipcalc/internal/config"
	"github.com/stockmatrix/sipcalc/pkg/logger"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what PersistentPreRunE loads for the subcommands
type app struct {
	settings *config.Settings
	log      zerolog.Logger
	debug    bool
}

func (a *app) engine() *calculation.CalculationEngine {
	ce := calculation.NewCalculationEngine()
	ce.Debug = a.debug
	ce.SetLogger(calculation.NewZerologLogger(a.log))
	return ce
}

func (a *app) simulator() *calculation.MonteCarloSimulator {
	mcs := calculation.NewMonteCarloSimulator()
	if a.settings.Simulation.MaxConcurrency > 0 {
		mcs.MaxConcurrency = a.settings.Simulation.MaxConcurrency
	}
	mcs.SetLogger(calculation.NewZerologLogger(a.log))
	return mcs
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sipcalc",
		Short: "SIP calculator: growth projection, scenario comparison and Monte Carlo",
		Long: `sipcalc projects how a recurring monthly investment (SIP) or a one-time lump sum grows
under monthly compounding, adjusts the result for inflation and tax, and compares it with the
conservative, moderate and aggressive return bands.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			settings, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				settings.Logging.Level = lvl
			}
			a.settings = settings
			a.debug, _ = cmd.Flags().GetBool("debug")
			if a.debug {
				settings.Logging.Level = "debug"
			}
			a.log = logger.New(logger.Config{
				Level:  settings.Logging.Level,
				Pretty: settings.Logging.Pretty,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "settings file path (default: ./sipcalc.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("debug", false, "log detailed calculation steps")

	rootCmd.AddCommand(
		newProjectCmd(a),
		newCompareCmd(a),
		newSimulateCmd(a),
		newSweepCmd(a),
		newRunCmd(a),
		newFundsCmd(a),
		newServeCmd(a),
		newExampleConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "sipcalc %s\n", version)
	fmt.Fprintf(w, "  commit:  %s\n", commit)
	fmt.Fprintf(w, "  built:   %s\n", date)
}
