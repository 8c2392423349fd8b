package cmd

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Risk calculators",
}

var riskSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a position to risk a fixed percentage of the account",
	Long: `Compute the position size that loses --risk-pct of the balance if the
stop is hit. Size is rounded down to --step.

The stop is a price (--stop) or, for a known symbol, a distance in pips
(--symbol with --stop-pips).

Examples:
  tradejournal risk size --entry 1.0850 --stop 1.0830 --risk-pct 1 --step 1000
  tradejournal risk size --symbol EURUSD --entry 1.0850 --stop-pips 20 --step 1000`,
	Args: cobra.NoArgs,
	RunE: runRiskSize,
}

var (
	sizeBalance float64
	sizeRiskPct float64
	sizeEntry   float64
	sizeStop    float64
	sizeTarget  float64
	sizeStep    float64
	sizeSymbol  string
	sizePips    float64
)

func init() {
	rootCmd.AddCommand(riskCmd)
	riskCmd.AddCommand(riskSizeCmd)

	riskSizeCmd.Flags().Float64VarP(&sizeBalance, "balance", "b", 0, "account balance (default: account.start_balance)")
	riskSizeCmd.Flags().Float64Var(&sizeRiskPct, "risk-pct", 0, "percent of balance to risk (default: risk.max_risk_per_trade)")
	riskSizeCmd.Flags().Float64Var(&sizeEntry, "entry", 0, "entry price (required)")
	riskSizeCmd.Flags().Float64Var(&sizeStop, "stop", 0, "stop loss price (required)")
	riskSizeCmd.Flags().Float64Var(&sizeTarget, "target", 0, "take profit price, to report R:R")
	riskSizeCmd.Flags().Float64Var(&sizeStep, "step", 1, "smallest size increment")
	riskSizeCmd.Flags().StringVar(&sizeSymbol, "symbol", "", "symbol, to size from --stop-pips and report pips")
	riskSizeCmd.Flags().Float64Var(&sizePips, "stop-pips", 0, "stop distance in pips (needs --symbol)")
	riskSizeCmd.MarkFlagRequired("entry")
	riskSizeCmd.MarkFlagsOneRequired("stop", "stop-pips")
}

func runRiskSize(cmd *cobra.Command, args []string) error {
	in := risk.SizeInputs{
		Balance:    sizeBalance,
		RiskPct:    sizeRiskPct,
		EntryPrice: sizeEntry,
		StopPrice:  sizeStop,
		Step:       sizeStep,
	}
	if in.Balance == 0 {
		in.Balance = cfg.Account.StartBalance
	}
	if in.RiskPct == 0 {
		in.RiskPct = cfg.Risk.MaxRiskPerTrade
	}
	sym, known := market.Lookup(sizeSymbol)
	if sizePips != 0 {
		if !known {
			return fmt.Errorf("--stop-pips needs a known --symbol, got %q", sizeSymbol)
		}
		in.StopPrice = in.EntryPrice - sizePips*sym.PipSize()
	}
	if in.EntryPrice == in.StopPrice {
		return errors.New("entry and stop must differ")
	}

	res := risk.PositionSize(in)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Balance:       %.2f\n", in.Balance)
	fmt.Fprintf(out, "Risk:          %.2f%% (%.2f)\n", in.RiskPct, res.RiskAmount)
	if known {
		fmt.Fprintf(out, "Stop distance: %g (%.1f pips)\n", res.StopDistance, sym.Pips(res.StopDistance))
	} else {
		fmt.Fprintf(out, "Stop distance: %g\n", res.StopDistance)
	}
	fmt.Fprintf(out, "Size:          %g\n", res.Size)
	if sizeTarget != 0 {
		fmt.Fprintf(out, "R:R:           %.2f\n", risk.RR(in.EntryPrice, in.StopPrice, sizeTarget))
	}
	return nil
}
