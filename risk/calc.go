package risk

import (
	"math"

	"github.com/rustyeddy/tradejournal/journal"
)

// PlannedRisk is the loss taken if price travels from entry to stop.
// size is in units whose P/L per unit of price move is 1.
func PlannedRisk(size, entry, stop float64) float64 {
	return size * math.Abs(entry-stop)
}

// RR is the reward to risk ratio of a planned trade.
func RR(entry, stop, target float64) float64 {
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0
	}
	return math.Abs(target-entry) / risk
}

// RMultiple expresses a result in units of the planned risk.
func RMultiple(netPnL, riskAmount float64) float64 {
	if riskAmount <= 0 {
		return 0
	}
	return netPnL / riskAmount
}

// RiskPct is the planned risk as a percentage of balance.
func RiskPct(riskAmount, balance float64) float64 {
	if balance <= 0 {
		return math.Inf(1)
	}
	return riskAmount / balance * 100
}

// Complete fills the derived fields a trade was logged without: net P/L
// from gross less costs, risk amount from the initial stop, and the
// R-multiple. Fields already set are left alone.
func Complete(t journal.Trade) journal.Trade {
	if t.NetPnL == 0 && t.GrossPnL != 0 {
		t.NetPnL = t.GrossPnL - t.Commission - t.Swap
	}
	if t.RiskAmount == 0 && t.InitialStopLoss != 0 && t.EntryPrice != 0 {
		t.RiskAmount = PlannedRisk(t.Size, t.EntryPrice, t.InitialStopLoss)
	}
	if t.RiskMultiple == 0 && t.IsClosed() {
		t.RiskMultiple = RMultiple(t.NetPnL, t.RiskAmount)
	}
	return t
}
