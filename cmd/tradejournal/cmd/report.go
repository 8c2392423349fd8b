package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rustyeddy/tradejournal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write an Org-mode performance report",
	Long: `Render a performance summary (metrics, monthly P/L, strategies and rule
violations) as an Org-mode document. Without --out it is printed.

Example:
  tradejournal report --title "Q2 2024" --trades --out q2.org`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var (
	reportOut    string
	reportTitle  string
	reportTrades bool
	reportNotes  []string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output .org file (default: stdout)")
	reportCmd.Flags().StringVarP(&reportTitle, "title", "t", "", "report title")
	reportCmd.Flags().BoolVar(&reportTrades, "trades", false, "append every trade as an Org block")
	reportCmd.Flags().StringArrayVar(&reportNotes, "note", nil, "observation to include (repeatable)")
}

func runReport(cmd *cobra.Command, args []string) error {
	trades, err := loadAll(cmd.Context())
	if err != nil {
		return err
	}

	s := report.NewSummary(reportTitle, trades, cfg.Account.StartBalance, cfg.Rules(), cfg.Profile())
	s.Account = cfg.Account.ID
	s.Currency = cfg.Account.Currency
	s.Created = time.Now()
	s.Notes = reportNotes

	buf := new(bytes.Buffer)
	if err := report.WriteSummaryOrg(buf, s); err != nil {
		return err
	}
	if reportTrades && len(trades) > 0 {
		buf.WriteString("\n* TRADES\n")
		buf.WriteString(report.FormatTradesOrg(trades, cfg.Rules().CheckAll(trades, cfg.Profile())))
		buf.WriteString("\n")
	}

	if reportOut == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(reportOut, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	slog.Info("report written", "file", reportOut, "trades", len(trades))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", reportOut)
	return nil
}
