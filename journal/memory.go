package journal

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	trades map[string]Trade
}

func NewMemory(trades ...Trade) *Memory {
	m := &Memory{trades: make(map[string]Trade, len(trades))}
	for _, t := range trades {
		m.trades[t.ID] = clone(t)
	}
	return m
}

func (m *Memory) Add(_ context.Context, t Trade) error {
	if err := t.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trades[t.ID]; ok {
		return fmt.Errorf("trade %q already exists", t.ID)
	}
	m.trades[t.ID] = clone(t)
	return nil
}

func (m *Memory) Update(_ context.Context, t Trade) error {
	if err := t.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trades[t.ID]; !ok {
		return fmt.Errorf("trade %q: %w", t.ID, ErrNotFound)
	}
	m.trades[t.ID] = clone(t)
	return nil
}

func (m *Memory) Get(_ context.Context, tradeID string) (Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trades[tradeID]
	if !ok {
		return Trade{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
	}
	return clone(t), nil
}

func (m *Memory) List(_ context.Context) ([]Trade, error) {
	m.mu.RLock()
	out := make([]Trade, 0, len(m.trades))
	for _, t := range m.trades {
		out = append(out, clone(t))
	}
	m.mu.RUnlock()

	SortByEntry(out)
	return out, nil
}

func (m *Memory) Delete(_ context.Context, tradeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trades[tradeID]; !ok {
		return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
	}
	delete(m.trades, tradeID)
	return nil
}

func (m *Memory) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.trades))
	m.trades = make(map[string]Trade)
	return n, nil
}

func (m *Memory) Close() error { return nil }

func clone(t Trade) Trade {
	t.Images = slices.Clone(t.Images)
	return t
}
