package ranking

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/wonny/topmonde/internal/contracts"
	"github.com/wonny/topmonde/internal/dataset"
	"github.com/wonny/topmonde/pkg/logger"
)

// SnapshotPattern matches the raw exports the pipeline consumes.
const SnapshotPattern = "TOP MONDE*.csv"

// EnhancedSuffix marks a persisted scoring artifact.
const EnhancedSuffix = "_enhanced"

// Processor runs the scoring transform over every raw snapshot in the
// input directory and persists the enhanced artifacts. Each file is
// independent: a bad file is logged and skipped, the batch continues.
type Processor struct {
	inputDir  string
	outputDir string
	workers   int
	logger    *logger.Logger
}

// NewProcessor creates a batch processor.
func NewProcessor(inputDir, outputDir string, workers int, log *logger.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		inputDir:  inputDir,
		outputDir: outputDir,
		workers:   workers,
		logger:    log,
	}
}

// EnhancedName derives the artifact name from a source filename, keeping
// the extension: "TOP MONDE_2026-01-05.csv" -> "TOP MONDE_2026-01-05_enhanced.csv".
func EnhancedName(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + EnhancedSuffix + ext
}

// Run scores every snapshot found in the input directory and reports how
// many were processed out of how many were found. Finding no snapshot at
// all is an error; individual file failures are not.
func (p *Processor) Run(ctx context.Context) (processed, found int, err error) {
	files, err := filepath.Glob(filepath.Join(p.inputDir, SnapshotPattern))
	if err != nil {
		return 0, 0, fmt.Errorf("scan %s: %w", p.inputDir, err)
	}
	sort.Strings(files)

	if len(files) == 0 {
		return 0, 0, fmt.Errorf("%w: no %q in %s", contracts.ErrNoSnapshots, SnapshotPattern, p.inputDir)
	}

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("create output dir: %w", err)
	}

	p.logger.WithFields(map[string]interface{}{
		"found":   len(files),
		"workers": p.workers,
	}).Info("Starting snapshot scoring batch")

	// Each worker owns its frame exclusively and no two files share an
	// output path, so the pool needs no shared state beyond the counter.
	jobs := make(chan string)
	var ok int64
	var wg sync.WaitGroup

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := p.processFile(path); err != nil {
					p.logger.WithError(err).WithField("file", filepath.Base(path)).Error("Snapshot skipped")
					continue
				}
				atomic.AddInt64(&ok, 1)
			}
		}()
	}

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		jobs <- file
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return int(ok), len(files), err
	}

	p.logger.WithFields(map[string]interface{}{
		"processed": ok,
		"found":     len(files),
	}).Info("Scoring batch finished")

	return int(ok), len(files), nil
}

// processFile enhances a single snapshot. A pre-existing artifact means
// the file was already processed; it is skipped, never recomputed, and
// still counts as processed.
func (p *Processor) processFile(path string) error {
	outPath := filepath.Join(p.outputDir, EnhancedName(filepath.Base(path)))

	if _, err := os.Stat(outPath); err == nil {
		p.logger.WithField("file", filepath.Base(outPath)).Info("Enhanced artifact already exists, skipping")
		return nil
	}

	frame, err := dataset.ReadFile(path)
	if err != nil {
		return err
	}

	p.logger.WithFields(map[string]interface{}{
		"file": filepath.Base(path),
		"rows": frame.NumRows(),
		"cols": len(frame.Columns()),
	}).Info("Scoring snapshot")

	if err := Enhance(frame); err != nil {
		return fmt.Errorf("enhance %s: %w", filepath.Base(path), err)
	}

	if err := frame.WriteFile(outPath); err != nil {
		return err
	}

	p.logger.WithField("file", filepath.Base(outPath)).Info("Enhanced artifact written")
	return nil
}
