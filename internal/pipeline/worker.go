package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dgallion1/cleanfile/internal/cleaner"
	"github.com/dgallion1/cleanfile/internal/document"
	"github.com/dgallion1/cleanfile/internal/inspect"
	"github.com/dgallion1/cleanfile/internal/parser"
)

// Cleaner is the part of *cleaner.Cleaner a worker runs.
type Cleaner interface {
	Extract(data []byte, filename string) (document.Pages, error)
	Rebuild(pages document.Pages) ([]byte, []document.Element, error)
}

// Worker processes a single cleaning job.
type Worker struct {
	cleaner Cleaner
	stats   *Stats
	log     zerolog.Logger
}

func NewWorker(c Cleaner, stats *Stats, log zerolog.Logger) *Worker {
	return &Worker{
		cleaner: c,
		stats:   stats,
		log:     log,
	}
}

// Process runs extraction and rebuilding for a job. The uploaded bytes are
// released when it returns, whatever the outcome. A panic in any phase
// fails the job instead of taking down the worker.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With().Str("job_id", job.ID).Str("file", job.Filename).Logger()
	start := time.Now()
	defer job.releaseInput()
	defer func() {
		status := job.Snapshot().Status
		w.stats.Record(time.Since(start), status)
		log.Info().Str("status", string(status)).Dur("took", time.Since(start)).Msg("job finished")
	}()
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("internal error: %v", rec)
			phase := job.Snapshot().Phase
			log.Error().Err(err).Str("phase", phase).Msg("job panicked")
			job.AddError(err.Error())
			job.Fail(StatusFailed, phase, cleaner.UserMessage(err))
		}
	}()

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.Fail(StatusFailed, "queued", cleaner.UserMessage(err))
		return
	}

	// Phase 1: Extract
	job.SetStatus(StatusExtracting, "extracting")
	data := job.FileData()
	pages, err := w.cleaner.Extract(data, job.Filename)
	if err != nil {
		if errors.Is(err, cleaner.ErrNoReadableText) {
			log.Info().Int("pages", len(pages)).Msg("no readable text")
			job.SetPages(len(pages))
			job.Fail(StatusNoText, "extracting", cleaner.UserMessage(err))
			return
		}
		log.Error().Err(err).Msg("extraction failed")
		job.AddError(err.Error())
		job.Fail(StatusFailed, "extracting", cleaner.UserMessage(err))
		return
	}
	job.SetPages(len(pages))
	log.Debug().Int("pages", len(pages)).Msg("extracted")

	if parser.IsPDF(job.Filename) {
		if report, err := inspect.Scan(data); err == nil {
			job.SetReport(report)
		}
	}

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.Fail(StatusFailed, "extracting", cleaner.UserMessage(err))
		return
	}

	// Phase 2: Rebuild
	job.SetStatus(StatusRebuilding, "rebuilding")
	out, elements, err := w.cleaner.Rebuild(pages)
	if err != nil {
		log.Error().Err(err).Msg("rebuild failed")
		job.AddError(err.Error())
		job.Fail(StatusFailed, "rebuilding", cleaner.UserMessage(err))
		return
	}

	job.Complete(out, len(elements))
}
