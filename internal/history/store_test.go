package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadBarsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), CacheFile)

	in := []Series{
		monthlySeries("AAPL", []float64{100, 110, 120}),
		monthlySeries("MSFT", []float64{300, 310}),
	}
	require.NoError(t, SaveBars(path, in))

	out, err := LoadBars(path)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "AAPL", out[0].Symbol)
	assert.Equal(t, "AAPL Inc.", out[0].Name)
	require.Len(t, out[0].Bars, 3)
	assert.Equal(t, 110.0, out[0].Bars[1].Close)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), out[0].Bars[1].Date)

	assert.Equal(t, "MSFT", out[1].Symbol)
	assert.Len(t, out[1].Bars, 2)
}

func TestLoadBarsRejectsBadCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), CacheFile)
	require.NoError(t, os.WriteFile(path, []byte("ticker,date\nAAPL,2025-01-01\n"), 0o644))

	_, err := LoadBars(path)
	assert.Error(t, err)
}

func TestFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), CacheFile)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	now := time.Now()
	assert.True(t, Fresh(path, now))
	assert.False(t, Fresh(path, now.AddDate(0, 0, 1)), "a cache from yesterday is stale")
	assert.False(t, Fresh(filepath.Join(t.TempDir(), "absent.csv"), now))
}
