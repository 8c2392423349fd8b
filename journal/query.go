package journal

import (
	"context"
	"time"
)

// ListClosedBetween returns closed trades whose exit date is within
// [start, end), oldest exit first.
func (j *SQLite) ListClosedBetween(ctx context.Context, start, end time.Time) ([]Trade, error) {
	return j.query(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE status = ? AND exit_date >= ? AND exit_date < ?
		ORDER BY exit_date ASC, entry_date ASC, id ASC`,
		string(StatusClosed), start.UnixMilli(), end.UnixMilli(),
	)
}

// ClosedBetween filters an in-memory trade list the same way
// ListClosedBetween filters the database.
func ClosedBetween(trades []Trade, start, end time.Time) []Trade {
	var out []Trade
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		if t.ExitDate.Before(start) || !t.ExitDate.Before(end) {
			continue
		}
		out = append(out, t)
	}
	SortByExit(out)
	return out
}

// DayBounds returns the [start, end) range of a YYYY-MM-DD day in loc.
func DayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1), nil
}
