package risk

import (
	"fmt"
	"math"

	"github.com/rustyeddy/tradejournal/journal"
)

const (
	CodeOverRisk       = "OVER_RISK"
	CodeExcessLoss     = "EXCESS_LOSS"
	CodeOutsideSession = "OUTSIDE_SESSION"
	CodeRevengeTrade   = "REVENGE_TRADE"
)

type Violation struct {
	Code string
	Msg  string
}

func (v Violation) String() string {
	return v.Msg
}

// Messages returns the display text of each violation, in order.
func Messages(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Msg)
	}
	return out
}

// DetectViolations evaluates one trade against the full history with the
// default rules. A nil profile uses the fallback risk limit.
func DetectViolations(trade journal.Trade, all []journal.Trade, profile *Profile) []string {
	return Messages(DefaultRules().Check(trade, all, profile))
}

// Check evaluates one trade. all may contain the trade itself.
func (r Rules) Check(trade journal.Trade, all []journal.Trade, profile *Profile) []Violation {
	return r.withDefaults().check(trade, previousExit(trade, all), profile)
}

// CheckAll evaluates every trade in the list, keyed by trade id. It sorts
// the history once instead of rescanning it per trade. Ids must be unique
// and non-empty, as they are for stored trades; use Check for unsaved ones.
func (r Rules) CheckAll(trades []journal.Trade, profile *Profile) map[string][]Violation {
	r = r.withDefaults()
	h := NewHistory(trades)

	out := make(map[string][]Violation)
	for _, t := range trades {
		if vs := r.check(t, h.Previous(t), profile); len(vs) > 0 {
			out[t.ID] = vs
		}
	}
	return out
}

func (r Rules) check(trade journal.Trade, prev *journal.Trade, profile *Profile) []Violation {
	var out []Violation
	add := func(code, msg string) {
		out = append(out, Violation{Code: code, Msg: msg})
	}

	limit := profile.MaxRisk(r.FallbackMaxRisk)
	if trade.RiskAmount > limit {
		add(CodeOverRisk, fmt.Sprintf("Over-risking: risked %.2f, limit is %.2f per trade",
			trade.RiskAmount, limit))
	}

	if trade.NetPnL < 0 && trade.RiskAmount > 0 {
		loss := math.Abs(trade.NetPnL)
		if loss > trade.RiskAmount*r.SlippageFactor {
			add(CodeExcessLoss, fmt.Sprintf("Loss of %.2f exceeded planned risk of %.2f by more than %.0f%%",
				loss, trade.RiskAmount, (r.SlippageFactor-1)*100))
		}
	}

	if w, ok := r.Sessions[trade.Session]; ok && !trade.EntryDate.IsZero() {
		hour := trade.EntryDate.UTC().Hour()
		if !w.Contains(hour) {
			add(CodeOutsideSession, fmt.Sprintf("Entry at %02d:00 UTC is outside %s session (%s)",
				hour, sessionName(trade.Session), w))
		}
	}

	if prev != nil && prev.NetPnL < 0 {
		gap := trade.EntryDate.Sub(prev.ExitDate)
		if gap < r.RevengeWindow {
			add(CodeRevengeTrade, fmt.Sprintf("Potential revenge trade: entered %d min after a %.2f loss",
				int(gap.Minutes()), prev.NetPnL))
		}
	}

	return out
}

func sessionName(s journal.Session) string {
	switch s {
	case journal.SessionLondon:
		return "London"
	case journal.SessionNY:
		return "New York"
	case journal.SessionAsia:
		return "Asia"
	case journal.SessionOverlap:
		return "Overlap"
	}
	return string(s)
}
