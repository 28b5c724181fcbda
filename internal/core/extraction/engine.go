package extraction

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jurisdocs/caseflow/internal/core/store"
	"github.com/jurisdocs/caseflow/internal/models"
)

// Stage names the two extraction passes the engine simulates.
type Stage string

const (
	StageBasic   Stage = "basic"
	StageSummary Stage = "summary"
)

// Job is one unit of extraction work.
type Job struct {
	BatchID string
	Stage   Stage
}

// Config tunes the simulated extraction backend.
type Config struct {
	// BasicDelay and SummaryDelay stand in for real extraction latency.
	BasicDelay   time.Duration
	SummaryDelay time.Duration
	// FailureRate in [0,1) injects ingestion failures for the error queue.
	FailureRate float64
	// QueueSize bounds the job channel; Enqueue blocks when full.
	QueueSize int
}

func (c *Config) defaults() {
	if c.QueueSize <= 0 {
		c.QueueSize = 64
	}
}

// Engine drives batches through the extraction stages on a bounded job
// queue. It produces synthetic metadata where a real system would call
// an extraction backend; swapping that backend in changes processOne
// only, not the call sites.
type Engine struct {
	store store.Store
	cfg   Config
	locks *store.BatchLocks
	jobs  chan Job
	group *errgroup.Group
	log   *logrus.Entry
}

// NewEngine constructs the engine with a bounded job queue. The locks
// are shared with the review service so a worker and a reviewer never
// interleave their writes to the same batch.
func NewEngine(st store.Store, locks *store.BatchLocks, cfg Config) *Engine {
	cfg.defaults()
	return &Engine{
		store: st,
		cfg:   cfg,
		locks: locks,
		jobs:  make(chan Job, cfg.QueueSize),
		log:   logrus.WithField("component", "extraction"),
	}
}

// Start runs numWorkers goroutines reading from the job queue. Workers
// stop when ctx is cancelled.
func (e *Engine) Start(ctx context.Context, numWorkers int) {
	g, gctx := errgroup.WithContext(ctx)
	e.group = g
	for w := 1; w <= numWorkers; w++ {
		worker := w
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					e.log.WithField("worker", worker).Info("extraction worker shutting down")
					return nil
				case job := <-e.jobs:
					if err := e.processOne(gctx, job); err != nil {
						e.log.WithFields(logrus.Fields{
							"worker":   worker,
							"batch_id": job.BatchID,
							"stage":    job.Stage,
						}).WithError(err).Error("extraction failed")
					}
				}
			}
		})
	}
}

// Wait blocks until every worker has exited.
func (e *Engine) Wait() error {
	if e.group == nil {
		return nil
	}
	return e.group.Wait()
}

// EnqueueBasic schedules the basic metadata pass for a batch.
// If the queue is full, this call will block until space frees up.
func (e *Engine) EnqueueBasic(batchID string) {
	e.jobs <- Job{BatchID: batchID, Stage: StageBasic}
}

// EnqueueSummary schedules the facts and summary pass for a batch.
func (e *Engine) EnqueueSummary(batchID string) {
	e.jobs <- Job{BatchID: batchID, Stage: StageSummary}
}

// processOne runs one extraction pass over a batch. Jobs whose batch is
// no longer in the matching pending state are skipped; duplicate
// enqueues (operator action plus the requeue sweeper) are harmless.
// The batch lock is held for the claim and the completion but released
// during the simulated latency, so review traffic on other stages of
// the same batch is not stalled for seconds.
func (e *Engine) processOne(ctx context.Context, job Job) error {
	var pending, running models.BatchStatus
	switch job.Stage {
	case StageBasic:
		pending, running = models.BatchPendingBasicExtraction, models.BatchBasicExtractionInProgress
	case StageSummary:
		pending, running = models.BatchPendingSummaryExtraction, models.BatchSummaryExtractionRunning
	default:
		return fmt.Errorf("unknown extraction stage %q", job.Stage)
	}

	claimed, err := e.claim(ctx, job, pending, running)
	if err != nil || !claimed {
		return err
	}

	delay := e.cfg.BasicDelay
	if job.Stage == StageSummary {
		delay = e.cfg.SummaryDelay
	}
	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return e.finish(ctx, job, running)
}

// claim moves a pending batch to its in-progress status. A false return
// means another worker or operator got there first.
func (e *Engine) claim(ctx context.Context, job Job, pending, running models.BatchStatus) (bool, error) {
	e.locks.Lock(job.BatchID)
	defer e.locks.Unlock(job.BatchID)

	batch, err := e.store.GetBatch(ctx, job.BatchID)
	if err != nil {
		return false, err
	}
	if batch.Status != pending {
		e.log.WithFields(logrus.Fields{"batch_id": batch.ID, "status": batch.Status, "stage": job.Stage}).Debug("skipping stale job")
		return false, nil
	}

	batch.Status = running
	if err := e.store.UpdateBatch(ctx, batch); err != nil {
		return false, err
	}
	return true, nil
}

// finish writes the extraction results. The batch must still be in the
// running status it was claimed with; anything else means an operator
// moved it while the pass was in flight, and the results are dropped.
func (e *Engine) finish(ctx context.Context, job Job, running models.BatchStatus) error {
	e.locks.Lock(job.BatchID)
	defer e.locks.Unlock(job.BatchID)

	batch, err := e.store.GetBatch(ctx, job.BatchID)
	if err != nil {
		return err
	}
	if batch.Status != running {
		e.log.WithFields(logrus.Fields{"batch_id": batch.ID, "status": batch.Status, "stage": job.Stage}).Debug("batch moved mid-pass, dropping results")
		return nil
	}

	if e.cfg.FailureRate > 0 && rand.Float64() < e.cfg.FailureRate {
		batch.Status = models.BatchError
		batch.ErrorMessage = fmt.Sprintf("%s extraction backend unavailable", job.Stage)
		return e.store.UpdateBatch(ctx, batch)
	}

	docs, err := e.store.ListDocuments(ctx, batch.ID)
	if err != nil {
		return err
	}

	for i, doc := range docs {
		switch job.Stage {
		case StageBasic:
			doc.BasicMetadata = synthesizeBasic(batch.Name, doc.FileName, i)
			doc.Status = models.DocumentExtracted
			doc.ReviewStatus = models.ReviewPendingBasic
		case StageSummary:
			doc.SummaryMetadata = synthesizeSummary(doc.BasicMetadata, doc.FileName)
			doc.Status = models.DocumentExtracted
			doc.ReviewStatus = models.ReviewPendingSample
		}
		if err := e.store.UpdateDocument(ctx, doc); err != nil {
			return err
		}
	}

	switch job.Stage {
	case StageBasic:
		batch.Status = models.BatchBasicExtracted
	case StageSummary:
		batch.Status = models.BatchPendingSummaryReview
	}
	if err := e.store.UpdateBatch(ctx, batch); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"batch_id":  batch.ID,
		"stage":     job.Stage,
		"documents": len(docs),
	}).Info("extraction pass complete")
	return nil
}
