package main

import (
	"errors"
	"fmt"
	"os"

	"option-pricer/internal/config"
	"option-pricer/internal/logger"
	"option-pricer/internal/model"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		os.Exit(1)
	}
	_ = logger.Sync()
}

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		logDev   bool
	)
	root := &cobra.Command{
		Use:   "cli",
		Short: "Price European options by Monte Carlo and Black-Scholes",
		Example: `  cli price --strike 1 --kind call -n 1000000 --seed 42
  cli price --config examples/config.yaml --out results/quotes.csv
  cli simulate --steps 12 -n 1000 --out results/paths.csv
  cli converge --strike 1 --start 1000 --steps 6`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logLevel, logDev)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "debug, info, warn or error")
	root.PersistentFlags().BoolVar(&logDev, "log-dev", false, "human-readable console logs")

	root.AddCommand(newPriceCmd(), newSimulateCmd(), newConvergeCmd())
	return root
}

// modelFlags are the market parameters shared by every subcommand.
type modelFlags struct {
	cfg config.ModelConfig
}

func (m *modelFlags) bind(fs *pflag.FlagSet) {
	fs.Float64VarP(&m.cfg.RiskFreeRate, "rate", "r", 0.02, "continuously compounded risk-free rate")
	fs.Float64Var(&m.cfg.Volatility, "sigma", 0.2, "annualized volatility")
	fs.Float64Var(&m.cfg.InitialPrice, "s0", 1, "spot price at t=0")
	fs.Float64VarP(&m.cfg.Horizon, "horizon", "T", 5, "simulation horizon in years")
	fs.IntVarP(&m.cfg.PathCount, "paths", "n", config.DefaultPathCount, "number of simulated paths")
}

// overrides returns only the fields set on the command line.
func (m *modelFlags) overrides(fs *pflag.FlagSet) config.ModelConfig {
	var out config.ModelConfig
	if fs.Changed("rate") {
		out.RiskFreeRate = m.cfg.RiskFreeRate
	}
	if fs.Changed("sigma") {
		out.Volatility = m.cfg.Volatility
	}
	if fs.Changed("s0") {
		out.InitialPrice = m.cfg.InitialPrice
	}
	if fs.Changed("horizon") {
		out.Horizon = m.cfg.Horizon
	}
	if fs.Changed("paths") {
		out.PathCount = m.cfg.PathCount
	}
	return out
}

// seedFlag returns nil unless --seed was given.
func seedFlag(fs *pflag.FlagSet, v uint64) *uint64 {
	if !fs.Changed("seed") {
		return nil
	}
	return &v
}

func describe(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidMaturity):
		return fmt.Sprintf("%v (maturity must be a positive number of years)", err)
	case errors.Is(err, model.ErrMaturityMismatch):
		return fmt.Sprintf("%v (simulate over the option's maturity)", err)
	default:
		return err.Error()
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
