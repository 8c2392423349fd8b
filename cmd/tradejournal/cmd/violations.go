package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/report"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/spf13/cobra"
)

var violationsCmd = &cobra.Command{
	Use:   "violations [trade-id]",
	Short: "Check trades against the risk rules",
	Long: `Evaluate trades against the configured risk rules:

  OVER_RISK        risk amount above the per-trade limit
  EXCESS_LOSS      loss larger than the planned risk plus slippage allowance
  OUTSIDE_SESSION  entry outside the tagged session's hours (UTC)
  REVENGE_TRADE    entry shortly after a losing trade closed

With a trade id only that trade is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runViolations,
}

func init() {
	rootCmd.AddCommand(violationsCmd)
}

func runViolations(cmd *cobra.Command, args []string) error {
	all, err := loadAll(cmd.Context())
	if err != nil {
		return err
	}
	rules, profile := cfg.Rules(), cfg.Profile()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		var found *journal.Trade
		for i := range all {
			if all[i].ID == args[0] {
				found = &all[i]
				break
			}
		}
		if found == nil {
			return fmt.Errorf("trade %s: %w", args[0], journal.ErrNotFound)
		}
		msgs := risk.Messages(rules.Check(*found, all, profile))
		if len(msgs) == 0 {
			fmt.Fprintf(out, "✓ No violations for %s\n", found.ID)
			return nil
		}
		for _, m := range msgs {
			fmt.Fprintf(out, "- %s\n", m)
		}
		return nil
	}

	vs := rules.CheckAll(all, profile)
	if len(vs) == 0 {
		fmt.Fprintf(out, "✓ No violations in %d trades\n", len(all))
		return nil
	}
	return report.PrintViolations(out, all, vs)
}
