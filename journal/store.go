package journal

import (
	"context"
	"fmt"
	"sort"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

// Store keeps one user's trades.
type Store interface {
	Add(ctx context.Context, t Trade) error
	Update(ctx context.Context, t Trade) error
	Get(ctx context.Context, id string) (Trade, error)
	List(ctx context.Context) ([]Trade, error)
	Delete(ctx context.Context, id string) error
	// DeleteAll removes every trade and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
	Close() error
}

// SortByEntry orders trades by entry date, then id.
func SortByEntry(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		a, b := trades[i], trades[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		return a.ID < b.ID
	})
}

// assignIDs mints ids for imported trades that arrived without one. The
// id is stamped with the entry date, so that date has to be present.
func assignIDs(trades []Trade) error {
	for i := range trades {
		if trades[i].ID != "" {
			continue
		}
		if trades[i].EntryDate.IsZero() {
			return fmt.Errorf("trade %d: entry date is required", i+1)
		}
		s, err := id.NewAt(trades[i].EntryDate)
		if err != nil {
			return fmt.Errorf("trade %d: %w", i+1, err)
		}
		trades[i].ID = s
	}
	return nil
}

// SortByExit orders trades by exit date, then entry date, then id. Trades
// without an exit date sort first.
func SortByExit(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		a, b := trades[i], trades[j]
		if !a.ExitDate.Equal(b.ExitDate) {
			return a.ExitDate.Before(b.ExitDate)
		}
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		return a.ID < b.ID
	})
}
