package ranking

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/topmonde/internal/contracts"
	"github.com/wonny/topmonde/internal/dataset"
	"github.com/wonny/topmonde/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWriter(os.Stderr)
}

func writeSnapshot(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, sampleFrame().WriteFile(path))
	return path
}

func TestEnhancedName(t *testing.T) {
	assert.Equal(t, "TOP MONDE_2026-01-05_enhanced.csv", EnhancedName("TOP MONDE_2026-01-05.csv"))
	assert.Equal(t, "TOP MONDE_enhanced.csv", EnhancedName("TOP MONDE.csv"))
}

func TestProcessorRun(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	writeSnapshot(t, in, "TOP MONDE_2026-01-05.csv")
	writeSnapshot(t, in, "TOP MONDE_2026-01-06.csv")

	p := NewProcessor(in, out, 2, testLogger())
	processed, found, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, found)
	assert.Equal(t, 2, processed)

	// The artifacts carry the derived columns and the score sort.
	frame, err := dataset.ReadFile(filepath.Join(out, "TOP MONDE_2026-01-05_enhanced.csv"))
	require.NoError(t, err)
	assert.True(t, frame.HasColumn(contracts.ColScore))
	assert.True(t, frame.HasColumn(contracts.ColScore2))

	top, err := frame.Value(0, contracts.ColSymbol)
	require.NoError(t, err)
	assert.Equal(t, "MSFT", top)
}

func TestProcessorSkipsBadFileAndContinues(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	writeSnapshot(t, in, "TOP MONDE_2026-01-05.csv")

	// A snapshot without the required columns fails alone.
	broken := dataset.New([]string{contracts.ColSymbol, contracts.ColExchange})
	broken.AddRow("AAPL", "NASDAQ")
	require.NoError(t, broken.WriteFile(filepath.Join(in, "TOP MONDE_2026-01-06.csv")))

	p := NewProcessor(in, out, 1, testLogger())
	processed, found, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, found)
	assert.Equal(t, 1, processed)

	_, statErr := os.Stat(filepath.Join(out, "TOP MONDE_2026-01-06_enhanced.csv"))
	assert.True(t, os.IsNotExist(statErr), "no artifact for the failed file")
}

func TestProcessorIdempotence(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	writeSnapshot(t, in, "TOP MONDE_2026-01-05.csv")

	p := NewProcessor(in, out, 1, testLogger())
	_, _, err := p.Run(context.Background())
	require.NoError(t, err)

	artifact := filepath.Join(out, "TOP MONDE_2026-01-05_enhanced.csv")
	before, err := os.Stat(artifact)
	require.NoError(t, err)

	// Second run skips recomputation but still counts the file.
	processed, found, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, found)
	assert.Equal(t, 1, processed)

	after, err := os.Stat(artifact)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "artifact must not be rewritten")
}

func TestProcessorNoSnapshots(t *testing.T) {
	p := NewProcessor(t.TempDir(), t.TempDir(), 1, testLogger())

	_, _, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrNoSnapshots))
}
