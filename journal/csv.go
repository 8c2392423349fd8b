package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ReadCSV imports trades from a CSV file with a header row. Column names
// follow the API field names (symbol, entryDate, netPnL, ...) and are
// matched case-insensitively; unknown columns are ignored. Dates may be
// RFC3339 or epoch milliseconds. Images are separated by ";".
func ReadCSV(r io.Reader) ([]Trade, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, req := range []string{"symbol", "entrydate"} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("missing required column %q", req)
		}
	}

	var trades []Trade
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := csvRow{cols: cols, rec: rec}
		t := row.trade()
		if row.err != nil {
			return nil, fmt.Errorf("line %d: %w", line, row.err)
		}
		trades = append(trades, t)
	}

	if err := assignIDs(trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// csvRow reads named fields from one record and keeps the first error.
type csvRow struct {
	cols map[string]int
	rec  []string
	err  error
}

func (r *csvRow) str(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r *csvRow) num(name string) float64 {
	s := r.str(name)
	if s == "" || r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}
	return v
}

func (r *csvRow) date(name string) time.Time {
	s := r.str(name)
	if s == "" || r.err != nil {
		return time.Time{}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromMillis(ms)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}
	return t.UTC()
}

func (r *csvRow) trade() Trade {
	t := Trade{
		ID:              r.str("id"),
		Account:         r.str("account"),
		Symbol:          r.str("symbol"),
		AssetClass:      AssetClass(strings.ToUpper(r.str("assetclass"))),
		Direction:       Direction(strings.ToUpper(r.str("direction"))),
		EntryDate:       r.date("entrydate"),
		ExitDate:        r.date("exitdate"),
		EntryPrice:      r.num("entryprice"),
		ExitPrice:       r.num("exitprice"),
		Size:            r.num("size"),
		GrossPnL:        r.num("grosspnl"),
		Commission:      r.num("commission"),
		Swap:            r.num("swap"),
		NetPnL:          r.num("netpnl"),
		InitialStopLoss: r.num("initialstoploss"),
		RiskAmount:      r.num("riskamount"),
		RiskMultiple:    r.num("riskmultiple"),
		Strategy:        r.str("strategy"),
		Setup:           r.str("setup"),
		Timeframe:       r.str("timeframe"),
		Session:         Session(strings.ToUpper(r.str("session"))),
		Confidence:      int(r.num("confidence")),
		Notes:           r.str("notes"),
		Status:          Status(strings.ToUpper(r.str("status"))),
	}
	if imgs := r.str("images"); imgs != "" {
		for _, s := range strings.Split(imgs, ";") {
			if s = strings.TrimSpace(s); s != "" {
				t.Images = append(t.Images, s)
			}
		}
	}
	if t.Status == "" {
		if t.HasExit() {
			t.Status = StatusClosed
		} else {
			t.Status = StatusOpen
		}
	}
	return t
}
