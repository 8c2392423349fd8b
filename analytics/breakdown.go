package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// Key selects the trade attribute Breakdown groups by.
type Key string

const (
	ByStrategy   Key = "strategy"
	BySetup      Key = "setup"
	BySession    Key = "session"
	BySymbol     Key = "symbol"
	ByAssetClass Key = "asset-class"
	ByDirection  Key = "direction"
	ByTimeframe  Key = "timeframe"
)

// Keys lists every grouping Breakdown understands.
var Keys = []Key{ByStrategy, BySetup, BySession, BySymbol, ByAssetClass, ByDirection, ByTimeframe}

// NoValue names the group of trades with an empty attribute.
const NoValue = "(none)"

func ParseKey(s string) (Key, error) {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Keys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown grouping %q", s)
}

func (k Key) value(t journal.Trade) string {
	var v string
	switch k {
	case ByStrategy:
		v = t.Strategy
	case BySetup:
		v = t.Setup
	case BySession:
		v = string(t.Session)
	case BySymbol:
		v = t.Symbol
	case ByAssetClass:
		v = string(t.AssetClass)
	case ByDirection:
		v = string(t.Direction)
	case ByTimeframe:
		v = t.Timeframe
	}
	if v == "" {
		return NoValue
	}
	return v
}

type Group struct {
	Name    string
	Metrics Metrics
}

// Breakdown computes Metrics per value of key over closed trades. Each
// group starts from startingBalance. Groups are sorted by name.
func Breakdown(trades []journal.Trade, startingBalance float64, key Key) []Group {
	buckets := map[string][]journal.Trade{}
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		name := key.value(t)
		buckets[name] = append(buckets[name], t)
	}

	out := make([]Group, 0, len(buckets))
	for name, ts := range buckets {
		out = append(out, Group{Name: name, Metrics: ComputeMetrics(ts, startingBalance)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type MonthlyReturn struct {
	Month  time.Time // first day of the month, UTC
	NetPnL float64
	Trades int
}

// MonthlyPnL sums net P/L of closed trades by UTC exit month.
func MonthlyPnL(trades []journal.Trade) []MonthlyReturn {
	byMonth := map[time.Time]*MonthlyReturn{}
	for _, t := range closedByExit(trades) {
		exit := t.ExitDate.UTC()
		month := time.Date(exit.Year(), exit.Month(), 1, 0, 0, 0, 0, time.UTC)
		mr, ok := byMonth[month]
		if !ok {
			mr = &MonthlyReturn{Month: month}
			byMonth[month] = mr
		}
		mr.NetPnL += t.NetPnL
		mr.Trades++
	}

	out := make([]MonthlyReturn, 0, len(byMonth))
	for _, mr := range byMonth {
		out = append(out, *mr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}
