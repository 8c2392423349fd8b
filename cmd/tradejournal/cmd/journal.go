package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/report"
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades closed today",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

var dayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades closed on a specific day",
	Long: `Print the trades closed on a day (local time) as Org-mode blocks,
each with its rule violations.

Example:
  tradejournal day 2024-01-15`,
	Args: cobra.ExactArgs(1),
	RunE: runDay,
}

func init() {
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(dayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	loc := time.Local
	return printDay(cmd, loc, time.Now().In(loc).Format("2006-01-02"))
}

func runDay(cmd *cobra.Command, args []string) error {
	return printDay(cmd, time.Local, args[0])
}

func printDay(cmd *cobra.Command, loc *time.Location, day string) error {
	start, end, err := journal.DayBounds(loc, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	recs, err := closedBetween(ctx, st, start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	all, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	vs := cfg.Rules().CheckAll(all, cfg.Profile())
	fmt.Fprintln(cmd.OutOrStdout(), report.FormatTradesOrg(recs, vs))
	return nil
}

// closedBetween lets SQLite do the filtering when it can.
func closedBetween(ctx context.Context, st journal.Store, start, end time.Time) ([]journal.Trade, error) {
	if db, ok := st.(*journal.SQLite); ok {
		return db.ListClosedBetween(ctx, start, end)
	}
	all, err := st.List(ctx)
	if err != nil {
		return nil, err
	}
	return journal.ClosedBetween(all, start, end), nil
}
