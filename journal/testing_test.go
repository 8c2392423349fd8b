package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func closedTrade(id string, entry, exit time.Time, pnl float64) Trade {
	return Trade{
		ID:         id,
		Account:    "acct-1",
		Symbol:     "EURUSD",
		AssetClass: Forex,
		Direction:  Long,
		EntryDate:  entry,
		ExitDate:   exit,
		EntryPrice: 1.0850,
		ExitPrice:  1.0875,
		Size:       1,
		GrossPnL:   pnl,
		NetPnL:     pnl,
		RiskAmount: 100,
		Strategy:   "breakout",
		Setup:      "flag",
		Timeframe:  "H1",
		Session:    SessionLondon,
		Confidence: 3,
		Status:     StatusClosed,
	}
}
