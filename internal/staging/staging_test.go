package staging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/topmonde/internal/contracts"
	"github.com/wonny/topmonde/pkg/logger"
)

func newTestStage(t *testing.T) *Stage {
	t.Helper()
	s := New(t.TempDir(), logger.NewWriter(os.Stderr))
	require.NoError(t, s.EnsureLayout())
	return s
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("Symbol\nAAPL\n"), 0o644))
}

func TestCleanupMoves(t *testing.T) {
	s := newTestStage(t)

	touch(t, filepath.Join(s.Dir(WaitingRoom), "TOP MONDE_2026-01-05.csv"))
	touch(t, filepath.Join(s.Dir(TickerRoom), "TOP MONDE_2026-01-05_enhanced.csv"))
	touch(t, filepath.Join(s.Dir(ReadyToUse), "TOP MONDE_2026-01-04.csv"))
	touch(t, filepath.Join(s.Dir(ReadyToUse), "TOP MONDE_2026-01-04_enhanced.csv"))

	moved, err := s.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, 3, moved)

	// waiting_room archived
	_, err = os.Stat(filepath.Join(s.Dir(UsedInputFiles), "TOP MONDE_2026-01-05.csv"))
	assert.NoError(t, err)

	// ticker_room promoted
	_, err = os.Stat(filepath.Join(s.Dir(ReadyToUse), "TOP MONDE_2026-01-05_enhanced.csv"))
	assert.NoError(t, err)

	// raw file in ready_to_use archived, enhanced one kept
	_, err = os.Stat(filepath.Join(s.Dir(UsedInputFiles), "TOP MONDE_2026-01-04.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.Dir(ReadyToUse), "TOP MONDE_2026-01-04_enhanced.csv"))
	assert.NoError(t, err)
}

func TestCleanupEmptyStage(t *testing.T) {
	s := newTestStage(t)

	moved, err := s.Cleanup()
	require.NoError(t, err)
	assert.Zero(t, moved)
}

func TestLatestSnapshot(t *testing.T) {
	s := newTestStage(t)

	touch(t, filepath.Join(s.Dir(ReadyToUse), "TOP MONDE_2026-01-03_enhanced.csv"))
	touch(t, filepath.Join(s.Dir(ReadyToUse), "TOP MONDE_2026-01-05_enhanced.csv"))
	touch(t, filepath.Join(s.Dir(ReadyToUse), "TOP MONDE_2026-01-04_enhanced.csv"))
	// Undated files are ignored
	touch(t, filepath.Join(s.Dir(ReadyToUse), "TOP MONDE_latest_enhanced.csv"))

	path, err := s.LatestSnapshot(ReadyToUse, "TOP MONDE*_enhanced.csv")
	require.NoError(t, err)
	assert.Equal(t, "TOP MONDE_2026-01-05_enhanced.csv", filepath.Base(path))
}

func TestLatestSnapshotNoneFound(t *testing.T) {
	s := newTestStage(t)

	_, err := s.LatestSnapshot(ReadyToUse, "TOP MONDE*_enhanced.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrNoSnapshots))
}

func TestSnapshotDate(t *testing.T) {
	tests := []struct {
		name   string
		want   time.Time
		wantOK bool
	}{
		{"TOP MONDE_2026-01-05.csv", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"TOP MONDE_2026-01-05_enhanced.csv", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"TOP MONDE_2026-01-05 (1).csv", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"TOP MONDE_.csv", time.Time{}, false},
		{"TOP MONDE_not-a-date.csv", time.Time{}, false},
		{"other.csv", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := snapshotDate(tt.name)
		if ok != tt.wantOK {
			t.Errorf("snapshotDate(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("snapshotDate(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
