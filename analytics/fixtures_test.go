package analytics

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

var t0 = time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

func closed(id string, n int, pnl float64) journal.Trade {
	entry := t0.Add(time.Duration(n) * 24 * time.Hour)
	return journal.Trade{
		ID:         id,
		Symbol:     "EURUSD",
		EntryDate:  entry,
		ExitDate:   entry.Add(3 * time.Hour),
		NetPnL:     pnl,
		RiskAmount: 100,
		Status:     journal.StatusClosed,
	}
}

func sample() []journal.Trade {
	return []journal.Trade{
		closed("T1", 0, 1000),
		closed("T2", 1, -2000),
		closed("T3", 2, 500),
	}
}

// mixedJournal includes open, pending and exit-less closed trades that
// the engine must skip.
func mixedJournal(r *rand.Rand, n int) []journal.Trade {
	out := make([]journal.Trade, 0, n)
	for i := 0; i < n; i++ {
		tr := closed(fmt.Sprintf("M%03d", i), r.Intn(30), float64(r.Intn(2000)-900)+r.Float64())
		switch r.Intn(8) {
		case 0:
			tr.Status = journal.StatusOpen
			tr.ExitDate = time.Time{}
		case 1:
			tr.Status = journal.StatusPending
		case 2:
			tr.ExitDate = time.Time{}
		}
		out = append(out, tr)
	}
	return out
}

func shuffled(r *rand.Rand, trades []journal.Trade) []journal.Trade {
	out := append([]journal.Trade(nil), trades...)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
