package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsUniqueAndSorted(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0, 500)
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		s := New()
		assert.Len(t, s, 26)
		assert.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
		ids = append(ids, s)
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestNewAtRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 4, 9, 30, 15, 123*int(time.Millisecond), time.UTC)
	s, err := NewAt(at)
	require.NoError(t, err)

	got, err := Time(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(at), "got %s want %s", got, at)
}

func TestTimeInvalid(t *testing.T) {
	t.Parallel()

	_, err := Time("not-an-id")
	assert.Error(t, err)
}

func TestNewAtOutOfRange(t *testing.T) {
	t.Parallel()

	for name, at := range map[string]time.Time{
		"zero":     {},
		"pre-1970": time.UnixMilli(-1000),
	} {
		s, err := NewAt(at)
		assert.ErrorIs(t, err, ErrTimeRange, name)
		assert.Empty(t, s, name)
	}
}
