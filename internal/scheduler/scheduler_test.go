package scheduler

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/topmonde/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	done     chan struct{}
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }

func (j *stubJob) Run(ctx context.Context) error {
	close(j.done)
	return nil
}

func newStubJob(name string) *stubJob {
	return &stubJob{name: name, schedule: "0 30 7 * * *", done: make(chan struct{})}
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(logger.NewWriter(os.Stderr))

	require.NoError(t, s.AddJob(newStubJob("pipeline")))
	err := s.AddJob(newStubJob("pipeline"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(logger.NewWriter(os.Stderr))

	job := newStubJob("broken")
	job.schedule = "not a cron expression"
	assert.Error(t, s.AddJob(job))
}

func TestJobNamesSorted(t *testing.T) {
	s := New(logger.NewWriter(os.Stderr))

	require.NoError(t, s.AddJob(newStubJob("history")))
	require.NoError(t, s.AddJob(newStubJob("daily")))

	assert.Equal(t, []string{"daily", "history"}, s.JobNames())
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := New(logger.NewWriter(os.Stderr))

	job := newStubJob("pipeline")
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("pipeline"))
	select {
	case <-job.done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}

	// The result lands in history after Run returns; poll briefly.
	deadline := time.Now().Add(5 * time.Second)
	for {
		history, err := s.History("pipeline")
		require.NoError(t, err)
		if latest, ok := history.Latest(); ok {
			assert.True(t, latest.Success)
			assert.Equal(t, "pipeline", latest.JobName)
			assert.Equal(t, 1.0, history.SuccessRate())
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("job result never recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRunJobUnknown(t *testing.T) {
	s := New(logger.NewWriter(os.Stderr))
	assert.Error(t, s.RunJob("missing"))
}
