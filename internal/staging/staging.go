package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wonny/topmonde/internal/contracts"
	"github.com/wonny/topmonde/pkg/logger"
)

// Stage directory names under the data root. A snapshot moves through them
// in order: dropped in the waiting room, enhanced into ready_to_use, and
// archived in used_input_files once consumed.
const (
	WaitingRoom    = "waiting_room"
	ReadyToUse     = "ready_to_use"
	TickerRoom     = "ticker_room"
	UsedInputFiles = "used_input_files"
	History        = "history"
	Lists          = "lists"
)

const snapshotPrefix = "TOP MONDE_"

// Stage organizes the flat-file staging areas of the pipeline.
type Stage struct {
	root   string
	logger *logger.Logger
}

// New creates a stage rooted at the data directory.
func New(root string, log *logger.Logger) *Stage {
	return &Stage{root: root, logger: log}
}

// Dir returns the absolute path of a stage directory.
func (s *Stage) Dir(name string) string {
	return filepath.Join(s.root, name)
}

// EnsureLayout creates every stage directory.
func (s *Stage) EnsureLayout() error {
	for _, name := range []string{WaitingRoom, ReadyToUse, TickerRoom, UsedInputFiles, History, Lists} {
		if err := os.MkdirAll(s.Dir(name), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
	}
	return nil
}

// Cleanup relocates files between stage directories and returns how many
// were moved:
//   - waiting_room CSVs are archived to used_input_files,
//   - ticker_room CSVs are promoted to ready_to_use,
//   - non-enhanced CSVs left in ready_to_use are archived too.
func (s *Stage) Cleanup() (int, error) {
	moved := 0

	n, err := s.moveAll(WaitingRoom, UsedInputFiles, func(string) bool { return true })
	if err != nil {
		return moved, err
	}
	moved += n

	n, err = s.moveAll(TickerRoom, ReadyToUse, func(string) bool { return true })
	if err != nil {
		return moved, err
	}
	moved += n

	n, err = s.moveAll(ReadyToUse, UsedInputFiles, func(name string) bool {
		return !strings.Contains(name, "_enhanced")
	})
	if err != nil {
		return moved, err
	}
	moved += n

	s.logger.WithField("moved", moved).Info("Stage cleanup finished")
	return moved, nil
}

// moveAll moves the CSV files of one stage directory into another, keeping
// only those the keep predicate accepts.
func (s *Stage) moveAll(from, to string, keep func(name string) bool) (int, error) {
	files, err := filepath.Glob(filepath.Join(s.Dir(from), "*.csv"))
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", from, err)
	}

	moved := 0
	for _, file := range files {
		name := filepath.Base(file)
		if !keep(name) {
			continue
		}
		if err := os.MkdirAll(s.Dir(to), 0o755); err != nil {
			return moved, fmt.Errorf("create %s: %w", to, err)
		}
		if err := os.Rename(file, filepath.Join(s.Dir(to), name)); err != nil {
			return moved, fmt.Errorf("move %s: %w", name, err)
		}
		s.logger.WithFields(map[string]interface{}{
			"file": name,
			"from": from,
			"to":   to,
		}).Info("Moved file")
		moved++
	}
	return moved, nil
}

// LatestSnapshot returns the snapshot in a stage directory with the most
// recent date embedded in its filename (TOP MONDE_YYYY-MM-DD…). Files
// whose date does not parse are skipped. The pattern narrows the
// candidates, e.g. "TOP MONDE*_enhanced.csv".
func (s *Stage) LatestSnapshot(dir, pattern string) (string, error) {
	files, err := filepath.Glob(filepath.Join(s.Dir(dir), pattern))
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", dir, err)
	}

	var latest string
	var latestDate time.Time

	for _, file := range files {
		date, ok := snapshotDate(filepath.Base(file))
		if !ok {
			continue
		}
		if latest == "" || date.After(latestDate) {
			latest, latestDate = file, date
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w: no dated %q in %s", contracts.ErrNoSnapshots, pattern, dir)
	}

	s.logger.WithField("file", filepath.Base(latest)).Info("Using most recent snapshot")
	return latest, nil
}

// snapshotDate extracts the date embedded in a snapshot filename.
func snapshotDate(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, snapshotPrefix) {
		return time.Time{}, false
	}
	raw := strings.TrimPrefix(name, snapshotPrefix)
	raw = strings.TrimSuffix(raw, filepath.Ext(raw))
	raw = strings.TrimSuffix(raw, "_enhanced")
	// Exports sometimes carry extra text after the date.
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return time.Time{}, false
	}

	date, err := time.Parse("2006-01-02", fields[0])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
