package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Store backed by a single SQLite file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	// one writer; also keeps ":memory:" databases on a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	slog.Debug("journal opened", "path", path)
	return &SQLite{db: db}, nil
}

func (j *SQLite) Add(ctx context.Context, t Trade) error {
	if err := t.Validate(); err != nil {
		return err
	}
	args, err := tradeArgs(t)
	if err != nil {
		return err
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("insert trade %q: %w", t.ID, err)
	}
	slog.Debug("trade added", "id", t.ID, "symbol", t.Symbol, "status", t.Status)
	return nil
}

func (j *SQLite) Update(ctx context.Context, t Trade) error {
	if err := t.Validate(); err != nil {
		return err
	}
	args, err := tradeArgs(t)
	if err != nil {
		return err
	}

	// id moves from the front of the argument list to the WHERE clause
	args = append(args[1:], args[0])
	res, err := j.db.ExecContext(ctx, `
		UPDATE trades SET
			account = ?, symbol = ?, asset_class = ?, direction = ?, entry_date = ?, exit_date = ?,
			entry_price = ?, exit_price = ?, size = ?, gross_pnl = ?, commission = ?, swap = ?, net_pnl = ?,
			initial_stop_loss = ?, risk_amount = ?, risk_multiple = ?, strategy = ?, setup = ?, timeframe = ?,
			session = ?, confidence = ?, notes = ?, images = ?, status = ?
		WHERE id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("update trade %q: %w", t.ID, err)
	}
	return expectOne(res, t.ID)
}

// Get returns a single trade by id.
func (j *SQLite) Get(ctx context.Context, tradeID string) (Trade, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = ?`, tradeID)

	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trade{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return Trade{}, err
	}
	return t, nil
}

// List returns every trade ordered by entry date.
func (j *SQLite) List(ctx context.Context) ([]Trade, error) {
	return j.query(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY entry_date ASC, id ASC`)
}

func (j *SQLite) Delete(ctx context.Context, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade %q: %w", tradeID, err)
	}
	return expectOne(res, tradeID)
}

func (j *SQLite) DeleteAll(ctx context.Context) (int64, error) {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades`)
	if err != nil {
		return 0, fmt.Errorf("delete trades: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	slog.Debug("trades cleared", "count", n)
	return n, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func (j *SQLite) query(ctx context.Context, q string, args ...any) ([]Trade, error) {
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (Trade, error) {
	var (
		t               Trade
		entry           int64
		exit            sql.NullInt64
		assetClass, dir string
		session, status string
		images          string
	)

	err := s.Scan(
		&t.ID, &t.Account, &t.Symbol, &assetClass, &dir, &entry, &exit,
		&t.EntryPrice, &t.ExitPrice, &t.Size, &t.GrossPnL, &t.Commission, &t.Swap, &t.NetPnL,
		&t.InitialStopLoss, &t.RiskAmount, &t.RiskMultiple, &t.Strategy, &t.Setup, &t.Timeframe,
		&session, &t.Confidence, &t.Notes, &images, &status,
	)
	if err != nil {
		return Trade{}, err
	}

	t.AssetClass = AssetClass(assetClass)
	t.Direction = Direction(dir)
	t.Session = Session(session)
	t.Status = Status(status)
	t.EntryDate = FromMillis(entry)
	if exit.Valid {
		t.ExitDate = FromMillis(exit.Int64)
	}
	if err := json.Unmarshal([]byte(images), &t.Images); err != nil {
		return Trade{}, fmt.Errorf("trade %q images: %w", t.ID, err)
	}
	if len(t.Images) == 0 {
		t.Images = nil
	}
	return t, nil
}

func tradeArgs(t Trade) ([]any, error) {
	images := t.Images
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("trade %q images: %w", t.ID, err)
	}

	var exit sql.NullInt64
	if t.HasExit() {
		exit = sql.NullInt64{Int64: Millis(t.ExitDate), Valid: true}
	}

	return []any{
		t.ID, t.Account, t.Symbol, string(t.AssetClass), string(t.Direction), Millis(t.EntryDate), exit,
		t.EntryPrice, t.ExitPrice, t.Size, t.GrossPnL, t.Commission, t.Swap, t.NetPnL,
		t.InitialStopLoss, t.RiskAmount, t.RiskMultiple, t.Strategy, t.Setup, t.Timeframe,
		string(t.Session), t.Confidence, t.Notes, string(raw), string(t.Status),
	}, nil
}

func expectOne(res sql.Result, tradeID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
	}
	return nil
}
