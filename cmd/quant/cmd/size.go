package cmd

import (
	"fmt"

	"github.com/rustyeddy/quant/journal"
	"github.com/rustyeddy/quant/metrics"
	"github.com/rustyeddy/quant/risk"
	"github.com/spf13/cobra"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a position from a stop distance",
	Long: `Compute how many units to trade so that hitting the stop loses a fixed
share of equity. The share is --risk, or the half-Kelly fraction of a trade
journal when --kelly-from is given.

Examples:
  quant size --equity 5000 --entry 150 --stop 152 --target 146 --risk 0.02
  quant size --entry 1.0850 --stop 1.0800 --kelly-from trades.csv`,
	Args: cobra.NoArgs,
	RunE: runSize,
}

var (
	sizeEquity    float64
	sizeEntry     float64
	sizeStop      float64
	sizeTarget    float64
	sizeRisk      float64
	sizeKellyFrom string
)

func init() {
	rootCmd.AddCommand(sizeCmd)

	f := sizeCmd.Flags()
	f.Float64Var(&sizeEquity, "equity", 0, "account equity (default: metrics.initial_capital)")
	f.Float64Var(&sizeEntry, "entry", 0, "entry price (required)")
	f.Float64Var(&sizeStop, "stop", 0, "stop price (required)")
	f.Float64Var(&sizeTarget, "target", 0, "take-profit price for the reward/risk multiple")
	f.Float64Var(&sizeRisk, "risk", 0.01, "share of equity lost at the stop")
	f.StringVar(&sizeKellyFrom, "kelly-from", "", "trades CSV whose half-Kelly fraction replaces --risk")
	sizeCmd.MarkFlagRequired("entry")
	sizeCmd.MarkFlagRequired("stop")
}

func runSize(cmd *cobra.Command, args []string) error {
	equity := sizeEquity
	if !cmd.Flags().Changed("equity") {
		equity = cfg.Metrics.InitialCapital
	}

	fraction := sizeRisk
	if sizeKellyFrom != "" {
		trades, err := journal.LoadTradesCSV(sizeKellyFrom)
		if err != nil {
			return err
		}
		journal.SortByExit(trades)
		m := metrics.ComputeWithOptions(trades, equity, cfg.Metrics.Options())
		if m.HalfKelly <= 0 {
			return fmt.Errorf("%s: no positive Kelly edge (kelly %.4f)", sizeKellyFrom, m.Kelly)
		}
		fraction = m.HalfKelly
	}

	res := risk.Calculate(risk.Inputs{
		Equity:     equity,
		Fraction:   fraction,
		EntryPrice: sizeEntry,
		StopPrice:  sizeStop,
	})
	if res.Units == 0 {
		return fmt.Errorf("cannot size: stop distance %g, risk amount %.2f", res.StopDist, res.RiskAmount)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Equity:         %.2f\n", equity)
	fmt.Fprintf(out, "Risk Fraction:  %.2f%%\n", fraction*100)
	fmt.Fprintf(out, "Units:          %g\n", res.Units)
	fmt.Fprintf(out, "Stop Distance:  %g\n", res.StopDist)
	fmt.Fprintf(out, "Risk Amount:    %.2f\n", res.RiskAmount)
	fmt.Fprintf(out, "Risk at Stop:   %.2f%%\n", risk.RiskPct(res.Units*res.StopDist, equity)*100)
	if sizeTarget != 0 {
		fmt.Fprintf(out, "Reward/Risk:    %.2f\n", risk.RR(sizeEntry, sizeStop, sizeTarget))
	}
	return nil
}
