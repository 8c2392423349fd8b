package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// wireTrade is the API shape of a trade: epoch milliseconds and
// uppercase enum strings.
type wireTrade struct {
	ID         string `json:"id,omitempty"`
	MongoID    string `json:"_id,omitempty"`
	Account    string `json:"user,omitempty"`
	Symbol     string `json:"symbol"`
	AssetClass string `json:"assetClass,omitempty"`
	Direction  string `json:"direction,omitempty"`

	EntryDate int64  `json:"entryDate"`
	ExitDate  *int64 `json:"exitDate,omitempty"`

	EntryPrice float64 `json:"entryPrice"`
	ExitPrice  float64 `json:"exitPrice"`
	Size       float64 `json:"size"`

	GrossPnL   float64 `json:"grossPnL"`
	Commission float64 `json:"commission"`
	Swap       float64 `json:"swap"`
	NetPnL     float64 `json:"netPnL"`

	InitialStopLoss float64 `json:"initialStopLoss"`
	RiskAmount      float64 `json:"riskAmount"`
	RiskMultiple    float64 `json:"riskMultiple"`

	Strategy   string   `json:"strategy,omitempty"`
	Setup      string   `json:"setup,omitempty"`
	Timeframe  string   `json:"timeframe,omitempty"`
	Session    string   `json:"session,omitempty"`
	Confidence int      `json:"confidence,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Images     []string `json:"images,omitempty"`
	Status     string   `json:"status"`
}

func (t Trade) MarshalJSON() ([]byte, error) {
	w := wireTrade{
		ID:              t.ID,
		Account:         t.Account,
		Symbol:          t.Symbol,
		AssetClass:      string(t.AssetClass),
		Direction:       string(t.Direction),
		EntryDate:       Millis(t.EntryDate),
		EntryPrice:      t.EntryPrice,
		ExitPrice:       t.ExitPrice,
		Size:            t.Size,
		GrossPnL:        t.GrossPnL,
		Commission:      t.Commission,
		Swap:            t.Swap,
		NetPnL:          t.NetPnL,
		InitialStopLoss: t.InitialStopLoss,
		RiskAmount:      t.RiskAmount,
		RiskMultiple:    t.RiskMultiple,
		Strategy:        t.Strategy,
		Setup:           t.Setup,
		Timeframe:       t.Timeframe,
		Session:         string(t.Session),
		Confidence:      t.Confidence,
		Notes:           t.Notes,
		Images:          t.Images,
		Status:          string(t.Status),
	}
	if t.HasExit() {
		ms := Millis(t.ExitDate)
		w.ExitDate = &ms
	}
	return json.Marshal(w)
}

func (t *Trade) UnmarshalJSON(data []byte) error {
	var w wireTrade
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*t = Trade{
		ID:              w.ID,
		Account:         w.Account,
		Symbol:          w.Symbol,
		AssetClass:      AssetClass(strings.ToUpper(w.AssetClass)),
		Direction:       Direction(strings.ToUpper(w.Direction)),
		EntryDate:       FromMillis(w.EntryDate),
		EntryPrice:      w.EntryPrice,
		ExitPrice:       w.ExitPrice,
		Size:            w.Size,
		GrossPnL:        w.GrossPnL,
		Commission:      w.Commission,
		Swap:            w.Swap,
		NetPnL:          w.NetPnL,
		InitialStopLoss: w.InitialStopLoss,
		RiskAmount:      w.RiskAmount,
		RiskMultiple:    w.RiskMultiple,
		Strategy:        w.Strategy,
		Setup:           w.Setup,
		Timeframe:       w.Timeframe,
		Session:         Session(strings.ToUpper(w.Session)),
		Confidence:      w.Confidence,
		Notes:           w.Notes,
		Images:          w.Images,
		Status:          Status(strings.ToUpper(w.Status)),
	}
	if t.ID == "" {
		t.ID = w.MongoID
	}
	if w.ExitDate != nil {
		t.ExitDate = FromMillis(*w.ExitDate)
	}
	return nil
}

// ReadJSON decodes a JSON array of trades as served by the trades API.
func ReadJSON(r io.Reader) ([]Trade, error) {
	var trades []Trade
	if err := json.NewDecoder(r).Decode(&trades); err != nil {
		return nil, fmt.Errorf("decode trades: %w", err)
	}
	if err := assignIDs(trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// Millis converts t to epoch milliseconds. The zero time maps to 0.
func Millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromMillis is the inverse of Millis.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
