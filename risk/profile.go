package risk

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// Profile is the per-user risk configuration the detector reads.
type Profile struct {
	StartBalance float64
	Currency     string // ISO code, e.g. "USD"

	// Percentages: 2 means 2%.
	MaxRiskPerTrade float64
	// MaxDailyLoss is carried for display; no rule evaluates it yet.
	MaxDailyLoss float64
}

// MaxRisk is the largest risk amount allowed on a single trade. A nil
// profile gets the fallback limit.
func (p *Profile) MaxRisk(fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return p.StartBalance * p.MaxRiskPerTrade / 100
}

// Window is a range of UTC hours, [Start, End). A window whose Start is
// after its End wraps past midnight.
type Window struct {
	Start int
	End   int
}

func (w Window) Contains(hour int) bool {
	if w.Start <= w.End {
		return hour >= w.Start && hour < w.End
	}
	return hour >= w.Start || hour < w.End
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:00-%02d:00 UTC", w.Start, w.End)
}

const (
	DefaultFallbackMaxRisk = 2000.0
	DefaultSlippageFactor  = 1.5
	DefaultRevengeWindow   = 30 * time.Minute
)

// DefaultSessions is the approximate session calendar. OVERLAP has no
// window and is never flagged.
func DefaultSessions() map[journal.Session]Window {
	return map[journal.Session]Window{
		journal.SessionLondon: {Start: 7, End: 17},
		journal.SessionNY:     {Start: 12, End: 22},
		journal.SessionAsia:   {Start: 22, End: 9},
	}
}

// Rules configures the violation detector. Zero fields take the
// package defaults.
type Rules struct {
	// FallbackMaxRisk is the per-trade risk limit used when no profile
	// is supplied.
	FallbackMaxRisk float64
	// SlippageFactor flags losses larger than RiskAmount * SlippageFactor.
	SlippageFactor float64
	// RevengeWindow flags entries this soon after a losing exit.
	RevengeWindow time.Duration
	Sessions      map[journal.Session]Window
}

func DefaultRules() Rules {
	return Rules{
		FallbackMaxRisk: DefaultFallbackMaxRisk,
		SlippageFactor:  DefaultSlippageFactor,
		RevengeWindow:   DefaultRevengeWindow,
		Sessions:        DefaultSessions(),
	}
}

func (r Rules) withDefaults() Rules {
	if r.FallbackMaxRisk == 0 {
		r.FallbackMaxRisk = DefaultFallbackMaxRisk
	}
	if r.SlippageFactor == 0 {
		r.SlippageFactor = DefaultSlippageFactor
	}
	if r.RevengeWindow == 0 {
		r.RevengeWindow = DefaultRevengeWindow
	}
	if r.Sessions == nil {
		r.Sessions = DefaultSessions()
	}
	return r
}
