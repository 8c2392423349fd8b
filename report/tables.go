// Package report renders journal data for people: console tables and
// Org-mode documents.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/shopspring/decimal"
)

func money(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

func profitFactor(pf float64) string {
	if pf == analytics.ProfitFactorInfinite {
		return "inf"
	}
	return fmt.Sprintf("%.2f", pf)
}

// PrintTrades writes one row per trade with its violation codes.
func PrintTrades(w io.Writer, trades []journal.Trade, violations map[string][]risk.Violation) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Entry", "Exit", "Symbol", "Dir", "Size", "Net P/L", "R", "Status", "Flags")

	for _, t := range trades {
		exit := "-"
		if t.HasExit() {
			exit = t.ExitDate.UTC().Format("2006-01-02 15:04")
		}
		codes := make([]string, 0, len(violations[t.ID]))
		for _, v := range violations[t.ID] {
			codes = append(codes, v.Code)
		}
		table.Append(
			shortID(t.ID),
			t.EntryDate.UTC().Format("2006-01-02 15:04"),
			exit,
			t.Symbol,
			string(t.Direction),
			fmt.Sprintf("%g", t.Size),
			money(t.NetPnL),
			fmt.Sprintf("%.2f", t.RiskMultiple),
			string(t.Status),
			strings.Join(codes, ","),
		)
	}
	return table.Render()
}

// PrintMetrics writes the performance metrics as a two column table.
func PrintMetrics(w io.Writer, m analytics.Metrics) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")

	rows := [][2]string{
		{"Trades", fmt.Sprintf("%d", m.TotalTrades)},
		{"Wins / Losses", fmt.Sprintf("%d / %d", m.Wins, m.Losses)},
		{"Win rate", fmt.Sprintf("%.2f%%", m.WinRate)},
		{"Profit factor", profitFactor(m.ProfitFactor)},
		{"Expectancy", money(m.Expectancy)},
		{"Gross profit", money(m.GrossProfit)},
		{"Gross loss", money(m.GrossLoss)},
		{"Average win", money(m.AverageWin)},
		{"Average loss", money(m.AverageLoss)},
		{"Largest win", money(m.LargestWin)},
		{"Largest loss", money(m.LargestLoss)},
		{"Average R", fmt.Sprintf("%.2f", m.AverageR)},
		{"Max drawdown", fmt.Sprintf("%s (%.2f%%)", money(m.MaxDrawdown), m.MaxDrawdownPercent)},
		{"Current streak", fmt.Sprintf("%+d", m.CurrentStreak)},
		{"Starting balance", money(m.StartingBalance)},
		{"Final equity", money(m.FinalEquity)},
		{"Net profit", money(m.NetProfit)},
	}
	for _, r := range rows {
		table.Append(r[0], r[1])
	}
	return table.Render()
}

// PrintEquity writes the equity curve.
func PrintEquity(w io.Writer, points []analytics.EquityPoint) error {
	table := tablewriter.NewWriter(w)
	table.Header("Date", "Equity", "Drawdown %")

	for _, p := range points {
		table.Append(p.Date, money(p.Equity), fmt.Sprintf("%.2f", p.Drawdown))
	}
	return table.Render()
}

// PrintBreakdown writes per-group metrics.
func PrintBreakdown(w io.Writer, key analytics.Key, groups []analytics.Group) error {
	table := tablewriter.NewWriter(w)
	table.Header(strings.ToUpper(string(key)), "Trades", "Win %", "PF", "Expectancy", "Net P/L", "Max DD %")

	for _, g := range groups {
		m := g.Metrics
		table.Append(
			g.Name,
			fmt.Sprintf("%d", m.TotalTrades),
			fmt.Sprintf("%.2f", m.WinRate),
			profitFactor(m.ProfitFactor),
			money(m.Expectancy),
			money(m.NetProfit),
			fmt.Sprintf("%.2f", m.MaxDrawdownPercent),
		)
	}
	return table.Render()
}

// PrintMonthly writes net P/L per month.
func PrintMonthly(w io.Writer, months []analytics.MonthlyReturn) error {
	table := tablewriter.NewWriter(w)
	table.Header("Month", "Trades", "Net P/L")

	for _, m := range months {
		table.Append(m.Month.Format("2006-01"), fmt.Sprintf("%d", m.Trades), money(m.NetPnL))
	}
	return table.Render()
}

// PrintViolations writes the violations of each flagged trade, in the
// order of trades.
func PrintViolations(w io.Writer, trades []journal.Trade, violations map[string][]risk.Violation) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Symbol", "Rule", "Detail")

	for _, t := range trades {
		for _, v := range violations[t.ID] {
			table.Append(shortID(t.ID), t.Symbol, v.Code, v.Msg)
		}
	}
	return table.Render()
}
