// Package analytics computes performance statistics from journal trades.
// Every function is pure: it reads a snapshot of trades and never
// mutates it.
package analytics

import (
	"github.com/rustyeddy/tradejournal/journal"
)

// closedByExit copies the CLOSED trades that have an exit date, oldest
// exit first. Ties break on entry date then id so the result does not
// depend on input order.
func closedByExit(trades []journal.Trade) []journal.Trade {
	out := make([]journal.Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsClosed() {
			out = append(out, t)
		}
	}
	journal.SortByExit(out)
	return out
}

// drawdown returns the decline from peak and that decline as a
// percentage of peak. A non-positive peak has no meaningful percentage.
func drawdown(peak, equity float64) (float64, float64) {
	dd := peak - equity
	if peak <= 0 {
		return dd, 0
	}
	return dd, dd / peak * 100
}
