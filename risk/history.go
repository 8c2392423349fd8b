package risk

import (
	"reflect"
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
)

// History indexes trades with an exit date by exit time so the trade
// preceding any entry can be found with a binary search.
type History struct {
	exited []journal.Trade
}

func NewHistory(trades []journal.Trade) *History {
	h := &History{}
	for _, t := range trades {
		if t.HasExit() {
			h.exited = append(h.exited, t)
		}
	}
	journal.SortByExit(h.exited)
	return h
}

// Previous returns the other trade with the latest exit at or before
// t's entry, or nil.
func (h *History) Previous(t journal.Trade) *journal.Trade {
	// first index whose exit is after the entry
	i := sort.Search(len(h.exited), func(i int) bool {
		return h.exited[i].ExitDate.After(t.EntryDate)
	})
	for i--; i >= 0; i-- {
		if !sameTrade(h.exited[i], t) {
			p := h.exited[i]
			return &p
		}
	}
	return nil
}

// previousExit is the linear form of History.Previous for a single
// lookup. Ties on exit time resolve the same way SortByExit orders them.
func previousExit(t journal.Trade, all []journal.Trade) *journal.Trade {
	var best *journal.Trade
	for i := range all {
		c := all[i]
		if sameTrade(c, t) || !c.HasExit() || c.ExitDate.After(t.EntryDate) {
			continue
		}
		if best == nil || sortsAfter(c, *best) {
			p := c
			best = &p
		}
	}
	return best
}

// sameTrade matches trades by id. Trades that were never stored have no
// id and only match a field-for-field copy of themselves.
func sameTrade(a, b journal.Trade) bool {
	if a.ID != "" || b.ID != "" {
		return a.ID == b.ID
	}
	return reflect.DeepEqual(a, b)
}

func sortsAfter(a, b journal.Trade) bool {
	if !a.ExitDate.Equal(b.ExitDate) {
		return a.ExitDate.After(b.ExitDate)
	}
	if !a.EntryDate.Equal(b.EntryDate) {
		return a.EntryDate.After(b.EntryDate)
	}
	return a.ID > b.ID
}
