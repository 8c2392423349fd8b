package risk

import (
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/stretchr/testify/assert"
)

func TestPlannedRisk(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 100.0, PlannedRisk(10000, 1.2000, 1.1900), 1e-9)
	assert.InDelta(t, 100.0, PlannedRisk(10000, 1.1900, 1.2000), 1e-9, "short stop above entry")
	assert.InDelta(t, 0.0, PlannedRisk(0, 1.2, 1.1), 1e-12)
}

func TestRR(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, RR(100, 95, 110), 1e-12)
	assert.InDelta(t, 0.0, RR(100, 100, 110), 1e-12)
}

func TestRMultiple(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, -1.5, RMultiple(-150, 100), 1e-12)
	assert.InDelta(t, 3.0, RMultiple(300, 100), 1e-12)
	assert.InDelta(t, 0.0, RMultiple(300, 0), 1e-12)
}

func TestRiskPct(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, RiskPct(200, 10000), 1e-12)
	assert.True(t, math.IsInf(RiskPct(200, 0), 1))
}

func TestComplete(t *testing.T) {
	t.Parallel()

	tr := journal.Trade{
		ID:              "T",
		EntryDate:       day,
		ExitDate:        day.Add(time.Hour),
		Status:          journal.StatusClosed,
		EntryPrice:      100,
		InitialStopLoss: 98,
		Size:            50,
		GrossPnL:        310,
		Commission:      7,
		Swap:            3,
	}

	got := Complete(tr)
	assert.InDelta(t, 300, got.NetPnL, 1e-9)
	assert.InDelta(t, 100, got.RiskAmount, 1e-9)
	assert.InDelta(t, 3, got.RiskMultiple, 1e-9)

	// explicit values win
	tr.NetPnL = 250
	tr.RiskAmount = 125
	got = Complete(tr)
	assert.InDelta(t, 250, got.NetPnL, 1e-9)
	assert.InDelta(t, 125, got.RiskAmount, 1e-9)
	assert.InDelta(t, 2, got.RiskMultiple, 1e-9)

	// open trades have no R yet
	tr.Status = journal.StatusOpen
	tr.RiskMultiple = 0
	assert.Zero(t, Complete(tr).RiskMultiple)
}
