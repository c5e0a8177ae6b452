package curation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/topmonde/internal/contracts"
	"github.com/wonny/topmonde/internal/dataset"
	"github.com/wonny/topmonde/internal/staging"
)

func newTestRunner(t *testing.T) (*Runner, *staging.Stage) {
	t.Helper()
	stage := staging.New(t.TempDir(), testLogger())
	require.NoError(t, stage.EnsureLayout())

	r := NewRunner(stage, stage.Dir(staging.Lists), testConfig(), testLogger())
	r.now = func() time.Time { return time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC) }
	return r, stage
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}

func TestRunnerWritesDatedLists(t *testing.T) {
	r, stage := newTestRunner(t)

	src := filepath.Join(stage.Dir(staging.ReadyToUse), "TOP MONDE_2026-01-05_enhanced.csv")
	require.NoError(t, enhancedFrame().WriteFile(src))

	result, err := r.Run()
	require.NoError(t, err)

	assert.Equal(t, "top_monde_2026-01-05.txt", filepath.Base(result.UnifiedPath))
	assert.Equal(t, "top_monde_2_7_2026-01-05.txt", filepath.Base(result.ThresholdPath))
	assert.Equal(t, "top_monde_worst_2026-01-05.txt", filepath.Base(result.WorstPath))

	unified := readLines(t, result.UnifiedPath)
	assert.Equal(t, HeaderTopBig, unified[0])
	assert.Contains(t, unified, HeaderTopGlobal)
	assert.Equal(t, result.Lists.Unified, unified)

	assert.Equal(t, result.Lists.Threshold, readLines(t, result.ThresholdPath))
	assert.Equal(t, result.Lists.Worst, readLines(t, result.WorstPath))
}

func TestRunnerPicksLatestEnhancedArtifact(t *testing.T) {
	r, stage := newTestRunner(t)

	old := dataset.New(enhancedColumns())
	old.AddRow("OLD", "NYSE", "20000000000", "2.8", "2.8")
	require.NoError(t, old.WriteFile(filepath.Join(stage.Dir(staging.ReadyToUse), "TOP MONDE_2026-01-03_enhanced.csv")))

	latest := dataset.New(enhancedColumns())
	latest.AddRow("NEW", "NYSE", "20000000000", "2.8", "2.8")
	require.NoError(t, latest.WriteFile(filepath.Join(stage.Dir(staging.ReadyToUse), "TOP MONDE_2026-01-04_enhanced.csv")))

	result, err := r.Run()
	require.NoError(t, err)

	assert.Equal(t, "TOP MONDE_2026-01-04_enhanced.csv", filepath.Base(result.Source))
	assert.Contains(t, result.Lists.Unified, "NYSE:NEW")
	assert.NotContains(t, result.Lists.Unified, "NYSE:OLD")
}

func TestRunnerNoSourceFound(t *testing.T) {
	r, _ := newTestRunner(t)

	_, err := r.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrNoSnapshots))
}

func TestRunnerFailsBeforeWritingAnything(t *testing.T) {
	r, stage := newTestRunner(t)

	// Enhanced artifact with a required column missing: the run aborts and
	// no list file may appear.
	broken := dataset.New([]string{contracts.ColSymbol, contracts.ColExchange})
	broken.AddRow("AAPL", "NASDAQ")
	require.NoError(t, broken.WriteFile(filepath.Join(stage.Dir(staging.ReadyToUse), "TOP MONDE_2026-01-05_enhanced.csv")))

	_, err := r.Run()
	require.Error(t, err)

	entries, readErr := os.ReadDir(stage.Dir(staging.Lists))
	require.NoError(t, readErr)
	assert.Empty(t, entries, "a failed curation run must not write partial lists")
}

func TestWriteListOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.txt")

	require.NoError(t, WriteList(path, []string{"NYSE:A", "NYSE:B"}))
	require.NoError(t, WriteList(path, []string{"NASDAQ:C"}))

	assert.Equal(t, []string{"NASDAQ:C"}, readLines(t, path))
}
