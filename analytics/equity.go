package analytics

import (
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
)

// StartLabel marks the synthetic first point of an equity curve.
const StartLabel = "Start"

// EquityPoint is the running balance after one closed trade.
type EquityPoint struct {
	Date     string
	Time     time.Time
	Equity   float64
	Drawdown float64 // percent below the peak so far
}

// GenerateEquityCurve returns the running balance after each closed
// trade in exit order, preceded by a Start point at startingBalance.
// Equity and drawdown are rounded to cents.
func GenerateEquityCurve(trades []journal.Trade, startingBalance float64) []EquityPoint {
	return equityCurve(trades, startingBalance, time.Now)
}

func equityCurve(trades []journal.Trade, startingBalance float64, now func() time.Time) []EquityPoint {
	closed := closedByExit(trades)

	startAt := now()
	if len(closed) > 0 {
		startAt = closed[0].EntryDate.AddDate(0, 0, -1)
	}

	points := make([]EquityPoint, 0, len(closed)+1)
	points = append(points, EquityPoint{
		Date:   StartLabel,
		Time:   startAt,
		Equity: startingBalance,
	})

	balance := startingBalance
	peak := startingBalance
	for _, t := range closed {
		balance += t.NetPnL
		if balance > peak {
			peak = balance
		}
		_, ddPct := drawdown(peak, balance)

		points = append(points, EquityPoint{
			Date:     t.ExitDate.UTC().Format("2006-01-02"),
			Time:     t.ExitDate,
			Equity:   round2(balance),
			Drawdown: round2(ddPct),
		})
	}
	return points
}

func round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}
