package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	in := `id,symbol,assetClass,direction,entryDate,exitDate,netPnL,riskAmount,session,status,confidence,images
T1,EURUSD,forex,long,2024-03-15T10:30:45Z,2024-03-15T14:20:30Z,250.5,100,london,closed,4,a.png; b.png
,BTCUSD,CRYPTO,SHORT,1710498645000,,0,50,ASIA,,,
`
	trades, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, trades, 2)

	first := trades[0]
	assert.Equal(t, "T1", first.ID)
	assert.Equal(t, Forex, first.AssetClass)
	assert.Equal(t, Long, first.Direction)
	assert.Equal(t, SessionLondon, first.Session)
	assert.Equal(t, StatusClosed, first.Status)
	assert.Equal(t, 4, first.Confidence)
	assert.InDelta(t, 250.5, first.NetPnL, 1e-9)
	assert.Equal(t, time.Date(2024, 3, 15, 14, 20, 30, 0, time.UTC), first.ExitDate)
	assert.Equal(t, []string{"a.png", "b.png"}, first.Images)
	require.NoError(t, first.Validate())

	second := trades[1]
	assert.NotEmpty(t, second.ID, "missing ids are minted")
	assert.Equal(t, StatusOpen, second.Status, "no exit date means open")
	assert.Equal(t, int64(1710498645000), second.EntryDate.UnixMilli())
	assert.False(t, second.HasExit())
	require.NoError(t, second.Validate())
}

func TestReadCSVMissingColumn(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("id,netPnL\nT1,10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol")
}

func TestReadCSVBadNumber(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("symbol,entryDate,netPnL\nEURUSD,2024-03-15T10:30:45Z,abc\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "netpnl")
}

func TestReadCSVEmpty(t *testing.T) {
	t.Parallel()

	trades, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestReadCSVRejectsUnusableEntryDate(t *testing.T) {
	t.Parallel()

	for name, in := range map[string]string{
		"empty":    "symbol,entryDate\nEURUSD,\n",
		"pre-1970": "symbol,entryDate\nEURUSD,-1000\n",
	} {
		trades, err := ReadCSV(strings.NewReader(in))
		require.Error(t, err, name)
		assert.Nil(t, trades, name)
	}

	_, err := ReadCSV(strings.NewReader("symbol,entryDate\nEURUSD,\n"))
	assert.Contains(t, err.Error(), "entry date is required")
}
