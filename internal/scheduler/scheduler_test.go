package scheduler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwkang/goalplanner/pkg/config"
	"github.com/dwkang/goalplanner/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	err      error
	runs     int
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(context.Context) error {
	j.runs++
	return j.err
}

func testScheduler() *Scheduler {
	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	s := New(log)
	s.retryDelay = 0 // no sleeping in tests
	return s
}

func TestScheduler_AddJob(t *testing.T) {
	s := testScheduler()
	job := &fakeJob{name: "refresh", schedule: "@daily"}

	require.NoError(t, s.AddJob(job))
	assert.Equal(t, []string{"refresh"}, s.JobNames())

	// Duplicate names are rejected
	err := s.AddJob(&fakeJob{name: "refresh", schedule: "@daily"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestScheduler_AddJob_BadSchedule(t *testing.T) {
	s := testScheduler()

	err := s.AddJob(&fakeJob{name: "broken", schedule: "not a cron expr"})
	require.Error(t, err)
}

func TestScheduler_RunJob_RecordsHistory(t *testing.T) {
	s := testScheduler()
	job := &fakeJob{name: "refresh", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	// Run synchronously through the internal path to avoid timing races
	s.runJob(job)

	history, err := s.History("refresh")
	require.NoError(t, err)

	result, ok := history.Latest()
	require.True(t, ok)
	assert.True(t, result.Success)
	assert.Equal(t, "refresh", result.JobName)
	assert.Equal(t, 1, job.runs)
}

func TestScheduler_RunJob_RetriesOnFailure(t *testing.T) {
	s := testScheduler()
	job := &fakeJob{name: "flaky", schedule: "@daily", err: fmt.Errorf("boom")}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	// Initial attempt plus maxRetries
	assert.Equal(t, s.maxRetries+1, job.runs)

	history, err := s.History("flaky")
	require.NoError(t, err)
	result, ok := history.Latest()
	require.True(t, ok)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "boom")
}

func TestScheduler_RunJob_Unknown(t *testing.T) {
	s := testScheduler()

	err := s.RunJob("missing")
	require.Error(t, err)

	_, err = s.History("missing")
	require.Error(t, err)
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}

	_, ok := h.Latest()
	assert.False(t, ok)
	assert.Equal(t, 0.0, h.SuccessRate())

	h.AddResult(JobResult{JobName: "a", Success: true})
	h.AddResult(JobResult{JobName: "a", Success: false})
	h.AddResult(JobResult{JobName: "a", Success: true})

	assert.InDelta(t, 2.0/3.0, h.SuccessRate(), 1e-9)

	// History is bounded
	for i := 0; i < historyLimit*2; i++ {
		h.AddResult(JobResult{JobName: "a", Success: true})
	}
	assert.Len(t, h.Results, historyLimit)
}
