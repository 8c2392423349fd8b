package journal

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = 'trades'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteAddAndGet(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := context.Background()

	want := closedTrade("T1", base.Add(9*time.Hour), base.Add(15*time.Hour+30*time.Minute), 375)
	want.Commission = 4.5
	want.Swap = 0.5
	want.InitialStopLoss = 1.0820
	want.RiskMultiple = 3.75
	want.Notes = "clean retest"
	want.Images = []string{"https://img.example/1.png", "https://img.example/2.png"}

	require.NoError(t, j.Add(ctx, want))

	got, err := j.Get(ctx, "T1")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.Equal(t, want.AssetClass, got.AssetClass)
	assert.Equal(t, want.Session, got.Session)
	assert.Equal(t, want.Status, got.Status)
	assert.True(t, got.EntryDate.Equal(want.EntryDate))
	assert.True(t, got.ExitDate.Equal(want.ExitDate))
	assert.InDelta(t, want.EntryPrice, got.EntryPrice, 1e-9)
	assert.InDelta(t, want.NetPnL, got.NetPnL, 1e-6)
	assert.InDelta(t, want.Commission, got.Commission, 1e-6)
	assert.InDelta(t, want.RiskMultiple, got.RiskMultiple, 1e-6)
	assert.Equal(t, want.Images, got.Images)
	assert.Equal(t, want.Notes, got.Notes)
	assert.Equal(t, 3, got.Confidence)
}

func TestSQLiteOpenTradeHasNoExit(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := context.Background()

	open := closedTrade("OPEN1", base, time.Time{}, 0)
	open.Status = StatusOpen
	open.Images = nil
	require.NoError(t, j.Add(ctx, open))

	got, err := j.Get(ctx, "OPEN1")
	require.NoError(t, err)
	assert.False(t, got.HasExit())
	assert.Nil(t, got.Images)
}

func TestSQLiteGetNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	_, err := j.Get(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteAddDuplicate(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := context.Background()

	tr := closedTrade("DUP", base, base.Add(time.Hour), 10)
	require.NoError(t, j.Add(ctx, tr))
	assert.Error(t, j.Add(ctx, tr))
}

func TestSQLiteAddRejectsInvalid(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	bad := closedTrade("BAD", base, base.Add(time.Hour), 10)
	bad.Confidence = 9
	assert.Error(t, j.Add(context.Background(), bad))
}

func TestSQLiteUpdate(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := context.Background()

	tr := closedTrade("U1", base, time.Time{}, 0)
	tr.Status = StatusOpen
	require.NoError(t, j.Add(ctx, tr))

	tr.ExitDate = base.Add(2 * time.Hour)
	tr.NetPnL = -50
	tr.Status = StatusClosed
	require.NoError(t, j.Update(ctx, tr))

	got, err := j.Get(ctx, "U1")
	require.NoError(t, err)
	assert.True(t, got.IsClosed())
	assert.InDelta(t, -50, got.NetPnL, 1e-9)

	missing := closedTrade("NOPE", base, base.Add(time.Hour), 1)
	assert.ErrorIs(t, j.Update(ctx, missing), ErrNotFound)
}

func TestSQLiteDeleteAndDeleteAll(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := context.Background()

	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, j.Add(ctx, closedTrade(id, base, base.Add(time.Hour), 1)))
	}

	require.NoError(t, j.Delete(ctx, "B"))
	assert.ErrorIs(t, j.Delete(ctx, "B"), ErrNotFound)

	list, err := j.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	n, err := j.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	list, err = j.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteListOrdering(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, j.Add(ctx, closedTrade("T3", base.Add(10*time.Hour), base.Add(11*time.Hour), 1)))
	require.NoError(t, j.Add(ctx, closedTrade("T1", base.Add(2*time.Hour), base.Add(3*time.Hour), 1)))
	require.NoError(t, j.Add(ctx, closedTrade("T2", base.Add(5*time.Hour), base.Add(6*time.Hour), 1)))

	list, err := j.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "T1", list[0].ID)
	assert.Equal(t, "T2", list[1].ID)
	assert.Equal(t, "T3", list[2].ID)
}
