package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closeFixture() []Trade {
	open := closedTrade("OPEN", base, time.Time{}, 0)
	open.Status = StatusOpen

	return []Trade{
		closedTrade("T1", base, base.Add(1*time.Hour), 100),
		closedTrade("T2", base, base.Add(5*time.Hour), 100),
		closedTrade("T3", base, base.Add(10*time.Hour), 500),
		closedTrade("T4", base, base.Add(24*time.Hour), 75),
		open,
	}
}

func TestListClosedBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := context.Background()

	for _, tr := range closeFixture() {
		require.NoError(t, j.Add(ctx, tr))
	}

	results, err := j.ListClosedBetween(ctx, base.Add(3*time.Hour), base.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "T2", results[0].ID)
	assert.Equal(t, "T3", results[1].ID)
}

func TestListClosedBetweenEndExclusive(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := context.Background()

	for _, tr := range closeFixture() {
		require.NoError(t, j.Add(ctx, tr))
	}

	start, end, err := DayBounds(time.UTC, "2024-05-01")
	require.NoError(t, err)

	results, err := j.ListClosedBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.NotEqual(t, "T4", r.ID)
		assert.NotEqual(t, "OPEN", r.ID)
	}
}

func TestClosedBetweenMatchesSQLite(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := context.Background()

	trades := closeFixture()
	for _, tr := range trades {
		require.NoError(t, j.Add(ctx, tr))
	}

	start, end := base.Add(30*time.Minute), base.Add(24*time.Hour)
	fromDB, err := j.ListClosedBetween(ctx, start, end)
	require.NoError(t, err)

	inMem := ClosedBetween(trades, start, end)
	require.Len(t, inMem, len(fromDB))
	for i := range inMem {
		assert.Equal(t, fromDB[i].ID, inMem[i].ID)
	}
}

func TestDayBounds(t *testing.T) {
	t.Parallel()

	start, end, err := DayBounds(time.UTC, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	_, _, err = DayBounds(time.UTC, "15/01/2024")
	assert.Error(t, err)
}

func TestListClosedBetweenTiesOnExit(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	ctx := context.Background()

	exit := base.Add(2 * time.Hour)
	trades := []Trade{
		closedTrade("A", base.Add(90*time.Minute), exit, 10),
		closedTrade("B", base, exit, 20),
		closedTrade("C", base.Add(30*time.Minute), exit, 30),
	}
	for _, tr := range trades {
		require.NoError(t, j.Add(ctx, tr))
	}

	fromDB, err := j.ListClosedBetween(ctx, base, base.Add(3*time.Hour))
	require.NoError(t, err)
	inMem := ClosedBetween(trades, base, base.Add(3*time.Hour))
	require.Len(t, fromDB, 3)
	require.Len(t, inMem, 3)

	var dbIDs, memIDs []string
	for i := range fromDB {
		dbIDs = append(dbIDs, fromDB[i].ID)
		memIDs = append(memIDs, inMem[i].ID)
	}
	assert.Equal(t, []string{"B", "C", "A"}, dbIDs)
	assert.Equal(t, dbIDs, memIDs)
}
