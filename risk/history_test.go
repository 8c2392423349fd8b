package risk

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomTrades(r *rand.Rand, n int) []journal.Trade {
	sessions := []journal.Session{journal.SessionAsia, journal.SessionLondon, journal.SessionNY, journal.SessionOverlap}

	out := make([]journal.Trade, 0, n)
	for i := 0; i < n; i++ {
		// coarse minutes so exit/entry ties actually happen
		entry := day.Add(time.Duration(r.Intn(48*4)) * 15 * time.Minute)
		var exit time.Time
		if r.Intn(5) > 0 {
			exit = entry.Add(time.Duration(r.Intn(12)) * 15 * time.Minute)
		}
		tr := trade(string(rune('a'+i%26))+string(rune('A'+i/26)), entry, exit,
			float64(r.Intn(400)-200), float64(r.Intn(3000)))
		tr.Session = sessions[r.Intn(len(sessions))]
		out = append(out, tr)
	}
	return out
}

func TestHistoryMatchesLinearScan(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		trades := randomTrades(r, 60)
		h := NewHistory(trades)

		for _, tr := range trades {
			want := previousExit(tr, trades)
			got := h.Previous(tr)
			if want == nil {
				assert.Nil(t, got, "trade %s", tr.ID)
				continue
			}
			require.NotNil(t, got, "trade %s", tr.ID)
			assert.Equal(t, want.ID, got.ID, "trade %s", tr.ID)
		}
	}
}

func TestCheckAllMatchesCheck(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(11))
	trades := randomTrades(r, 80)
	profile := &Profile{StartBalance: 50000, MaxRiskPerTrade: 2}
	rules := DefaultRules()

	all := rules.CheckAll(trades, profile)
	for _, tr := range trades {
		one := rules.Check(tr, trades, profile)
		if len(one) == 0 {
			assert.NotContains(t, all, tr.ID)
			continue
		}
		assert.Equal(t, one, all[tr.ID], "trade %s", tr.ID)
	}
}

func TestHistoryEmpty(t *testing.T) {
	t.Parallel()

	h := NewHistory(nil)
	assert.Nil(t, h.Previous(trade("x", day, day.Add(time.Hour), 0, 0)))
}
