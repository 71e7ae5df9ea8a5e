package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/cleanfile/internal/cleaner"
	"github.com/dgallion1/cleanfile/internal/config"
	"github.com/dgallion1/cleanfile/internal/document"
	"github.com/dgallion1/cleanfile/internal/testpdf"
)

func testConfig() config.Config {
	return config.Config{
		WorkerCount:  2,
		MaxQueueSize: 4,
		JobTTL:       time.Hour,
		LayoutMode:   true,
	}
}

func startOrchestrator(t *testing.T, cfg config.Config) *Orchestrator {
	t.Helper()
	c := cleaner.New(cleaner.Options{LayoutMode: cfg.LayoutMode}, zerolog.Nop())
	o := NewOrchestrator(cfg, c, zerolog.Nop())
	o.Start(context.Background())
	t.Cleanup(o.Stop)
	return o
}

func waitTerminal(t *testing.T, job *Job) JobSnapshot {
	t.Helper()
	var snap JobSnapshot
	require.Eventually(t, func() bool {
		snap = job.Snapshot()
		return snap.Status.Terminal()
	}, 10*time.Second, 10*time.Millisecond)
	return snap
}

func TestOrchestrator_CompletesPDF(t *testing.T) {
	o := startOrchestrator(t, testConfig())

	in := testpdf.New(t, testpdf.Options{JavaScript: "app.alert(1);"},
		[]string{"Report", "SUMMARY"},
		[]string{"Body text."},
	)
	job := NewJob("report.pdf", in)
	require.NoError(t, o.Submit(job))
	assert.Same(t, job, o.GetJob(job.ID))

	snap := waitTerminal(t, job)
	assert.Equal(t, StatusCompleted, snap.Status)
	assert.Equal(t, 2, snap.Progress.Pages)
	assert.Positive(t, snap.Progress.Elements)
	assert.Contains(t, snap.Progress.Discarded, "javascript")
	assert.True(t, bytes.HasPrefix(job.Output(), []byte("%PDF-")))
	assert.Nil(t, job.FileData())

	stats := o.Stats().Snapshot()
	assert.Equal(t, 1, stats.Outcomes[StatusCompleted])
}

func TestOrchestrator_NoText(t *testing.T) {
	o := startOrchestrator(t, testConfig())

	job := NewJob("scan.pdf", testpdf.New(t, testpdf.Options{}, nil))
	require.NoError(t, o.Submit(job))

	snap := waitTerminal(t, job)
	assert.Equal(t, StatusNoText, snap.Status)
	assert.Equal(t, "No readable text found in this PDF.", snap.Message)
	assert.Nil(t, job.Output())
}

func TestOrchestrator_ExtractionFailure(t *testing.T) {
	o := startOrchestrator(t, testConfig())

	job := NewJob("broken.pdf", []byte("garbage"))
	require.NoError(t, o.Submit(job))

	snap := waitTerminal(t, job)
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "extracting", snap.Phase)
	assert.Contains(t, snap.Message, "Processing error: ")
	assert.NotEmpty(t, snap.Progress.Errors)
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1
	c := cleaner.New(cleaner.Options{}, zerolog.Nop())
	// Not started: nothing drains the queue.
	o := NewOrchestrator(cfg, c, zerolog.Nop())

	require.NoError(t, o.Submit(NewJob("a.txt", []byte("a"))))
	assert.Equal(t, 1, o.QueueDepth())

	job := NewJob("b.txt", []byte("b"))
	err := o.Submit(job)
	assert.True(t, errors.Is(err, ErrQueueFull))
	assert.Equal(t, StatusFailed, job.Snapshot().Status)
}

func TestWorker_CancelledContext(t *testing.T) {
	c := cleaner.New(cleaner.Options{}, zerolog.Nop())
	stats := NewStats(time.Hour)
	w := NewWorker(c, stats, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := NewJob("a.txt", []byte("Title"))
	w.Process(ctx, job)

	assert.Equal(t, StatusFailed, job.Snapshot().Status)
	assert.Equal(t, 1, stats.Snapshot().Outcomes[StatusFailed])
}

func TestCleanupInterval(t *testing.T) {
	assert.Equal(t, 5*time.Minute, cleanupInterval(time.Hour))
	assert.Equal(t, time.Minute, cleanupInterval(2*time.Minute))
	assert.Equal(t, time.Second, cleanupInterval(time.Millisecond))
}

type panickingCleaner struct {
	onRebuild bool
}

func (p panickingCleaner) Extract(data []byte, filename string) (document.Pages, error) {
	if !p.onRebuild {
		panic("extract exploded")
	}
	return document.Pages{"Title"}, nil
}

func (p panickingCleaner) Rebuild(pages document.Pages) ([]byte, []document.Element, error) {
	panic("rebuild exploded")
}

func TestWorker_RecoversFromPanic(t *testing.T) {
	tests := []struct {
		name      string
		cleaner   panickingCleaner
		wantPhase string
		wantCause string
	}{
		{"extract", panickingCleaner{}, "extracting", "extract exploded"},
		{"rebuild", panickingCleaner{onRebuild: true}, "rebuilding", "rebuild exploded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewStats(time.Hour)
			w := NewWorker(tt.cleaner, stats, zerolog.Nop())

			job := NewJob("a.txt", []byte("Title"))
			require.NotPanics(t, func() { w.Process(context.Background(), job) })

			snap := job.Snapshot()
			assert.Equal(t, StatusFailed, snap.Status)
			assert.Equal(t, tt.wantPhase, snap.Phase)
			assert.Contains(t, snap.Message, "Processing error: ")
			assert.Contains(t, snap.Message, tt.wantCause)
			assert.Nil(t, job.FileData())
			assert.Equal(t, 1, stats.Snapshot().Outcomes[StatusFailed])
		})
	}
}
