package main

import (
	"fmt"
	"text/tabwriter"

	"option-pricer/internal/analysis"
	"option-pricer/internal/config"
	"option-pricer/internal/market"
	"option-pricer/internal/pricing"

	"github.com/spf13/cobra"
)

func newConvergeCmd() *cobra.Command {
	var (
		mf     modelFlags
		strike float64
		kind   string
		start  int
		factor int
		steps  int
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "converge",
		Short: "Show Monte Carlo error against the closed form as paths grow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := analysis.GeometricSchedule(start, factor, steps)
			if err != nil {
				return err
			}
			contract, err := config.ContractConfig{Kind: kind, Strike: strike, Maturity: config.Years(mf.cfg.Horizon)}.ToContract()
			if err != nil {
				return err
			}
			mc := mf.cfg
			mc.PathCount = counts[0]
			cfg, err := mc.ToSimulationConfig()
			if err != nil {
				return err
			}
			gbm, err := market.NewGBM(cfg)
			if err != nil {
				return err
			}
			opt, err := pricing.New(contract)
			if err != nil {
				return err
			}

			pts, err := analysis.Convergence(opt, gbm, counts, seed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s K=%g T=%g closed form=%.6f\n", contract.Kind, contract.Strike, contract.Maturity, pts[0].ClosedForm)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "paths\tprice\tstd err\t|error|\tz\t")
			for _, p := range pts {
				fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\t%+.2f\t\n", p.PathCount, p.Price, p.StdErr, p.AbsError, p.ZScore)
			}
			return tw.Flush()
		},
	}

	fs := cmd.Flags()
	mf.bind(fs)
	fs.Float64VarP(&strike, "strike", "K", 1, "strike price")
	fs.StringVar(&kind, "kind", "call", "call or put")
	fs.IntVar(&start, "start", 1000, "path count of the first run")
	fs.IntVar(&factor, "factor", 4, "path count multiplier between runs")
	fs.IntVar(&steps, "steps", 6, "number of runs")
	fs.Uint64Var(&seed, "seed", 1, "seed of the first run; run i uses seed+i")
	return cmd
}
