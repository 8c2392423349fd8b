package analytics

import (
	"github.com/rustyeddy/tradejournal/journal"
)

// ProfitFactorInfinite stands in for the profit factor when there are
// wins and no losses.
const ProfitFactorInfinite = 999.0

// Metrics summarizes closed trades. LargestLoss is signed (the most
// negative result); AverageLoss is a positive magnitude.
type Metrics struct {
	TotalTrades int
	Wins        int
	Losses      int

	WinRate      float64 // percent
	ProfitFactor float64
	Expectancy   float64

	GrossProfit float64
	GrossLoss   float64
	AverageWin  float64
	AverageLoss float64
	LargestWin  float64
	LargestLoss float64

	MaxDrawdown        float64
	MaxDrawdownPercent float64

	StartingBalance float64
	FinalEquity     float64
	NetProfit       float64

	// CurrentStreak counts consecutive wins (positive) or losses
	// (negative) ending at the latest trade.
	CurrentStreak int

	// AverageR is the mean R-multiple over trades with a planned risk.
	AverageR float64
}

// ComputeMetrics walks closed trades in exit order from startingBalance.
// Degenerate inputs give zeros rather than errors.
func ComputeMetrics(trades []journal.Trade, startingBalance float64) Metrics {
	closed := closedByExit(trades)

	m := Metrics{
		TotalTrades:     len(closed),
		StartingBalance: startingBalance,
	}

	equity := startingBalance
	peak := startingBalance
	var (
		sumR   float64
		countR int
	)

	for _, t := range closed {
		equity += t.NetPnL
		if equity > peak {
			peak = equity
		}
		dd, ddPct := drawdown(peak, equity)
		if dd > m.MaxDrawdown {
			m.MaxDrawdown = dd
		}
		if ddPct > m.MaxDrawdownPercent {
			m.MaxDrawdownPercent = ddPct
		}

		if t.IsWin() {
			m.Wins++
			m.GrossProfit += t.NetPnL
			if t.NetPnL > m.LargestWin {
				m.LargestWin = t.NetPnL
			}
			if m.CurrentStreak >= 0 {
				m.CurrentStreak++
			} else {
				m.CurrentStreak = 1
			}
		} else {
			m.Losses++
			m.GrossLoss += -t.NetPnL
			if t.NetPnL < m.LargestLoss {
				m.LargestLoss = t.NetPnL
			}
			if m.CurrentStreak <= 0 {
				m.CurrentStreak--
			} else {
				m.CurrentStreak = -1
			}
		}

		if t.RiskAmount > 0 {
			sumR += t.NetPnL / t.RiskAmount
			countR++
		}
	}

	m.FinalEquity = equity
	m.NetProfit = equity - startingBalance

	if m.TotalTrades == 0 {
		return m
	}

	total := float64(m.TotalTrades)
	m.WinRate = float64(m.Wins) / total * 100

	switch {
	case m.GrossLoss > 0:
		m.ProfitFactor = m.GrossProfit / m.GrossLoss
	case m.GrossProfit > 0:
		m.ProfitFactor = ProfitFactorInfinite
	}

	if m.Wins > 0 {
		m.AverageWin = m.GrossProfit / float64(m.Wins)
	}
	if m.Losses > 0 {
		m.AverageLoss = m.GrossLoss / float64(m.Losses)
	}
	m.Expectancy = float64(m.Wins)/total*m.AverageWin - float64(m.Losses)/total*m.AverageLoss

	if countR > 0 {
		m.AverageR = sumR / float64(countR)
	}
	return m
}
