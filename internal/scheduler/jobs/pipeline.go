package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/topmonde/internal/contracts"
	"github.com/wonny/topmonde/internal/curation"
	"github.com/wonny/topmonde/internal/ranking"
	"github.com/wonny/topmonde/internal/staging"
	"github.com/wonny/topmonde/pkg/logger"
)

// PipelineJob runs the daily pass: snapshot scoring, list curation, then
// stage cleanup. Cleanup comes last so it archives only inputs the scoring
// pass already consumed. A day without fresh snapshots is normal; curation
// still regenerates the lists from the latest enhanced artifact.
type PipelineJob struct {
	stage     *staging.Stage
	processor *ranking.Processor
	runner    *curation.Runner
	schedule  string
	logger    *logger.Logger
}

// NewPipelineJob creates the daily pipeline job.
func NewPipelineJob(stage *staging.Stage, processor *ranking.Processor, runner *curation.Runner, schedule string, log *logger.Logger) *PipelineJob {
	return &PipelineJob{
		stage:     stage,
		processor: processor,
		runner:    runner,
		schedule:  schedule,
		logger:    log,
	}
}

func (j *PipelineJob) Name() string     { return "daily_pipeline" }
func (j *PipelineJob) Schedule() string { return j.schedule }

// Run executes the pipeline stages in order.
func (j *PipelineJob) Run(ctx context.Context) error {
	processed, found, err := j.processor.Run(ctx)
	if err != nil {
		if !errors.Is(err, contracts.ErrNoSnapshots) {
			return fmt.Errorf("rank: %w", err)
		}
		j.logger.Info("No snapshots waiting, skipping scoring")
	} else {
		j.logger.WithFields(map[string]interface{}{
			"processed": processed,
			"found":     found,
		}).Info("Scoring pass done")
	}

	result, err := j.runner.Run()
	if err != nil {
		return fmt.Errorf("curate: %w", err)
	}

	moved, err := j.stage.Cleanup()
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	j.logger.WithField("moved", moved).Info("Stage cleanup done")

	j.logger.WithFields(map[string]interface{}{
		"unified":   len(result.Lists.Unified),
		"threshold": len(result.Lists.Threshold),
		"worst":     len(result.Lists.Worst),
	}).Info("Daily pipeline finished")

	return nil
}
