package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance metrics",
	Long: `Compute performance metrics over every closed trade, starting from the
account's start balance. With --by, metrics are computed per group.

Groupings: strategy, setup, session, symbol, asset-class, direction, timeframe

Examples:
  tradejournal stats
  tradejournal stats --by strategy`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Show the equity curve and drawdown",
	Args:  cobra.NoArgs,
	RunE:  runEquity,
}

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Show net P/L per month",
	Args:  cobra.NoArgs,
	RunE:  runMonthly,
}

var (
	statsBy      string
	statsBalance float64
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(equityCmd)
	rootCmd.AddCommand(monthlyCmd)

	statsCmd.Flags().StringVar(&statsBy, "by", "", "group by strategy, setup, session, symbol, asset-class, direction or timeframe")
	for _, c := range []*cobra.Command{statsCmd, equityCmd} {
		c.Flags().Float64VarP(&statsBalance, "balance", "b", 0, "starting balance (default: account.start_balance)")
	}
}

func startBalance(cmd *cobra.Command) float64 {
	if cmd.Flags().Changed("balance") {
		return statsBalance
	}
	return cfg.Account.StartBalance
}

func runStats(cmd *cobra.Command, args []string) error {
	trades, err := loadAll(cmd.Context())
	if err != nil {
		return err
	}

	if statsBy == "" {
		return report.PrintMetrics(cmd.OutOrStdout(), analytics.ComputeMetrics(trades, startBalance(cmd)))
	}

	key, err := analytics.ParseKey(statsBy)
	if err != nil {
		return fmt.Errorf("--by: %w", err)
	}
	return report.PrintBreakdown(cmd.OutOrStdout(), key, analytics.Breakdown(trades, startBalance(cmd), key))
}

func runEquity(cmd *cobra.Command, args []string) error {
	trades, err := loadAll(cmd.Context())
	if err != nil {
		return err
	}
	return report.PrintEquity(cmd.OutOrStdout(), analytics.GenerateEquityCurve(trades, startBalance(cmd)))
}

func runMonthly(cmd *cobra.Command, args []string) error {
	trades, err := loadAll(cmd.Context())
	if err != nil {
		return err
	}
	return report.PrintMonthly(cmd.OutOrStdout(), analytics.MonthlyPnL(trades))
}
