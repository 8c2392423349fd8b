// Package journal holds the trade record and the stores that keep them.
package journal

import (
	"errors"
	"fmt"
	"time"
)

type AssetClass string

const (
	Forex       AssetClass = "FOREX"
	Crypto      AssetClass = "CRYPTO"
	Indices     AssetClass = "INDICES"
	Commodities AssetClass = "COMMODITIES"
	Stocks      AssetClass = "STOCKS"
)

type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Session is the market session a trade was tagged with.
type Session string

const (
	SessionAsia    Session = "ASIA"
	SessionLondon  Session = "LONDON"
	SessionNY      Session = "NY"
	SessionOverlap Session = "OVERLAP"
)

type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusClosed  Status = "CLOSED"
	StatusPending Status = "PENDING"
)

// ErrNotFound is returned by stores when a trade id is unknown.
var ErrNotFound = errors.New("trade not found")

// Trade is a single journal entry. A zero ExitDate means the trade has
// not been closed yet.
type Trade struct {
	ID      string
	Account string

	Symbol     string
	AssetClass AssetClass
	Direction  Direction

	EntryDate time.Time
	ExitDate  time.Time

	EntryPrice float64
	ExitPrice  float64
	Size       float64

	// NetPnL is conventionally GrossPnL - Commission - Swap; nothing here
	// enforces it.
	GrossPnL   float64
	Commission float64
	Swap       float64
	NetPnL     float64

	InitialStopLoss float64
	RiskAmount      float64
	RiskMultiple    float64

	Strategy  string
	Setup     string
	Timeframe string
	Session   Session

	Confidence int
	Notes      string
	Images     []string

	Status Status
}

// HasExit reports whether the trade carries an exit date.
func (t Trade) HasExit() bool {
	return !t.ExitDate.IsZero()
}

// IsClosed reports whether the trade counts toward realized performance:
// status CLOSED with an exit date.
func (t Trade) IsClosed() bool {
	return t.Status == StatusClosed && t.HasExit()
}

// IsWin reports a strictly positive net result.
func (t Trade) IsWin() bool {
	return t.NetPnL > 0
}

// Validate checks the fields a store refuses to persist.
func (t Trade) Validate() error {
	var errs []error

	if t.Symbol == "" {
		errs = append(errs, errors.New("symbol is required"))
	}
	if t.EntryDate.IsZero() {
		errs = append(errs, errors.New("entry date is required"))
	}
	if t.HasExit() && t.ExitDate.Before(t.EntryDate) {
		errs = append(errs, errors.New("exit date is before entry date"))
	}
	if t.Size < 0 {
		errs = append(errs, fmt.Errorf("size must be >= 0, got %g", t.Size))
	}
	if t.Confidence != 0 && (t.Confidence < 1 || t.Confidence > 5) {
		errs = append(errs, fmt.Errorf("confidence must be 1-5, got %d", t.Confidence))
	}
	if t.AssetClass != "" && !t.AssetClass.Valid() {
		errs = append(errs, fmt.Errorf("unknown asset class %q", t.AssetClass))
	}
	if t.Direction != "" && !t.Direction.Valid() {
		errs = append(errs, fmt.Errorf("unknown direction %q", t.Direction))
	}
	if t.Session != "" && !t.Session.Valid() {
		errs = append(errs, fmt.Errorf("unknown session %q", t.Session))
	}
	if !t.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", t.Status))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid trade %s: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

func (a AssetClass) Valid() bool {
	switch a {
	case Forex, Crypto, Indices, Commodities, Stocks:
		return true
	}
	return false
}

func (d Direction) Valid() bool {
	return d == Long || d == Short
}

func (s Session) Valid() bool {
	switch s {
	case SessionAsia, SessionLondon, SessionNY, SessionOverlap:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusPending:
		return true
	}
	return false
}
