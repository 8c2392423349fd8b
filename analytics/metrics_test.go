package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/stretchr/testify/assert"
)

func TestComputeMetricsEmpty(t *testing.T) {
	t.Parallel()

	for _, bal := range []float64{0, 10000, -50} {
		m := ComputeMetrics(nil, bal)
		assert.Zero(t, m.TotalTrades)
		assert.Zero(t, m.NetProfit)
		assert.Zero(t, m.WinRate)
		assert.Zero(t, m.ProfitFactor)
		assert.Zero(t, m.Expectancy)
		assert.Zero(t, m.MaxDrawdown)
		assert.Zero(t, m.CurrentStreak)
		assert.Equal(t, bal, m.FinalEquity)
	}
}

func TestComputeMetricsExample(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics(sample(), 10000)

	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 2, m.Wins)
	assert.Equal(t, 1, m.Losses)
	assert.InDelta(t, 66.6667, m.WinRate, 1e-3)
	assert.InDelta(t, 2000, m.MaxDrawdown, 1e-9)
	assert.InDelta(t, 18.1818, m.MaxDrawdownPercent, 1e-3)
	assert.InDelta(t, -500, m.NetProfit, 1e-9)
	assert.InDelta(t, 9500, m.FinalEquity, 1e-9)
	assert.InDelta(t, 0.75, m.ProfitFactor, 1e-9)
	assert.InDelta(t, 750, m.AverageWin, 1e-9)
	assert.InDelta(t, 2000, m.AverageLoss, 1e-9)
	assert.InDelta(t, -166.6667, m.Expectancy, 1e-3)
	assert.InDelta(t, 1000, m.LargestWin, 1e-9)
	assert.InDelta(t, -2000, m.LargestLoss, 1e-9)
	assert.Equal(t, 1, m.CurrentStreak)
	assert.InDelta(t, -5.0/3, m.AverageR, 1e-9)
}

func TestComputeMetricsProfitFactorSentinel(t *testing.T) {
	t.Parallel()

	wins := []journal.Trade{closed("A", 0, 100), closed("B", 1, 50)}
	assert.Equal(t, ProfitFactorInfinite, ComputeMetrics(wins, 1000).ProfitFactor)

	flat := []journal.Trade{closed("A", 0, 0), closed("B", 1, 0)}
	m := ComputeMetrics(flat, 1000)
	assert.Zero(t, m.ProfitFactor)
	assert.Equal(t, 2, m.Losses, "break-even counts as a loss")
	assert.Zero(t, m.AverageLoss)
	assert.Equal(t, -2, m.CurrentStreak)
}

func TestComputeMetricsStreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pnls []float64
		want int
	}{
		{"three wins", []float64{1, 2, 3}, 3},
		{"loss after wins", []float64{1, 2, -1}, -1},
		{"two losses", []float64{5, -1, -2}, -2},
		{"win after losses", []float64{-1, -2, 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trades []journal.Trade
			for i, p := range tt.pnls {
				trades = append(trades, closed(string(rune('A'+i)), i, p))
			}
			assert.Equal(t, tt.want, ComputeMetrics(trades, 1000).CurrentStreak)
		})
	}
}

func TestComputeMetricsKeepsMaxDrawdownNotFinal(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{
		closed("A", 0, -3000),
		closed("B", 1, 5000),
	}
	m := ComputeMetrics(trades, 10000)
	assert.InDelta(t, 3000, m.MaxDrawdown, 1e-9)
	assert.InDelta(t, 30, m.MaxDrawdownPercent, 1e-9)
}

func TestComputeMetricsZeroPeak(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{closed("A", 0, -100)}
	m := ComputeMetrics(trades, 0)
	assert.InDelta(t, 100, m.MaxDrawdown, 1e-9)
	assert.Zero(t, m.MaxDrawdownPercent)
}

func TestComputeMetricsSkipsUnclosed(t *testing.T) {
	t.Parallel()

	open := closed("O", 3, 9999)
	open.Status = journal.StatusOpen
	noExit := closed("N", 4, 9999)
	noExit.ExitDate = time.Time{}

	m := ComputeMetrics(append(sample(), open, noExit), 10000)
	assert.Equal(t, 3, m.TotalTrades)
	assert.InDelta(t, -500, m.NetProfit, 1e-9)
}

func TestComputeMetricsOrderIndependent(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(42))
	trades := mixedJournal(r, 120)
	want := ComputeMetrics(trades, 25000)

	assert.Equal(t, want, ComputeMetrics(trades, 25000), "idempotent")
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, ComputeMetrics(shuffled(r, trades), 25000))
	}
}

func TestComputeMetricsDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{closed("B", 1, -2000), closed("A", 0, 1000)}
	_ = ComputeMetrics(trades, 10000)
	assert.Equal(t, "B", trades[0].ID)
}
