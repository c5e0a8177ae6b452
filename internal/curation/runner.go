package curation

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wonny/topmonde/internal/dataset"
	"github.com/wonny/topmonde/internal/ranking"
	"github.com/wonny/topmonde/internal/staging"
	"github.com/wonny/topmonde/pkg/logger"
)

// Result reports one curation run. Each run's files fully replace the
// prior ones for that calendar day; nothing is merged across runs.
type Result struct {
	Source        string
	UnifiedPath   string
	ThresholdPath string
	WorstPath     string
	Lists         *Lists
}

// Runner loads the most recent enhanced artifact, curates the lists and
// writes them out. Any failure aborts the whole run before a single list
// file is touched.
type Runner struct {
	stage     *staging.Stage
	outputDir string
	curator   *Curator
	cfg       Config
	logger    *logger.Logger

	// now is the clock used for output filenames; tests pin it.
	now func() time.Time
}

// NewRunner creates a curation runner writing into outputDir.
func NewRunner(stage *staging.Stage, outputDir string, cfg Config, log *logger.Logger) *Runner {
	return &Runner{
		stage:     stage,
		outputDir: outputDir,
		curator:   NewCurator(cfg, log),
		cfg:       cfg,
		logger:    log,
		now:       time.Now,
	}
}

// Run executes a full curation pass against the ranking sink.
func (r *Runner) Run() (*Result, error) {
	source, err := r.stage.LatestSnapshot(staging.ReadyToUse, "TOP MONDE*"+ranking.EnhancedSuffix+".csv")
	if err != nil {
		return nil, err
	}

	frame, err := dataset.ReadFile(source)
	if err != nil {
		return nil, err
	}

	r.logger.WithFields(map[string]interface{}{
		"file": filepath.Base(source),
		"rows": frame.NumRows(),
	}).Info("Curating ticker lists")

	lists, err := r.curator.Curate(frame)
	if err != nil {
		return nil, fmt.Errorf("curate %s: %w", filepath.Base(source), err)
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	date := r.now().Format("2006-01-02")
	result := &Result{
		Source:        source,
		UnifiedPath:   filepath.Join(r.outputDir, fmt.Sprintf("top_monde_%s.txt", date)),
		ThresholdPath: filepath.Join(r.outputDir, fmt.Sprintf("top_monde_%s_%s.txt", thresholdTag(r.cfg.ScoreThreshold), date)),
		WorstPath:     filepath.Join(r.outputDir, fmt.Sprintf("top_monde_worst_%s.txt", date)),
		Lists:         lists,
	}

	if err := WriteList(result.UnifiedPath, lists.Unified); err != nil {
		return nil, err
	}
	if err := WriteList(result.ThresholdPath, lists.Threshold); err != nil {
		return nil, err
	}
	if err := WriteList(result.WorstPath, lists.Worst); err != nil {
		return nil, err
	}

	r.logger.WithFields(map[string]interface{}{
		"unified":   filepath.Base(result.UnifiedPath),
		"threshold": filepath.Base(result.ThresholdPath),
		"worst":     filepath.Base(result.WorstPath),
	}).Info("Ticker lists written")

	return result, nil
}
