package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jurisdocs/caseflow/internal/core/extraction"
	"github.com/jurisdocs/caseflow/internal/core/store"
	"github.com/jurisdocs/caseflow/internal/models"
)

// RequeueJob sweeps batches sitting in a pending extraction state and
// hands them back to the engine. It recovers work whose enqueue was
// lost and gives freshly uploaded batches automatic forward progress.
type RequeueJob struct {
	store    store.Store
	engine   *extraction.Engine
	schedule string
	log      *logrus.Entry
}

func NewRequeueJob(st store.Store, engine *extraction.Engine, schedule string) *RequeueJob {
	return &RequeueJob{
		store:    st,
		engine:   engine,
		schedule: schedule,
		log:      logrus.WithField("component", "requeue"),
	}
}

func (j *RequeueJob) Schedule() string {
	return j.schedule
}

func (j *RequeueJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := j.store.ListBatchesByStatus(ctx,
		models.BatchPendingBasicExtraction,
		models.BatchPendingSummaryExtraction,
	)
	if err != nil {
		j.log.WithError(err).Error("sweep failed")
		return
	}

	for _, batch := range pending {
		switch batch.Status {
		case models.BatchPendingBasicExtraction:
			j.engine.EnqueueBasic(batch.ID)
		case models.BatchPendingSummaryExtraction:
			j.engine.EnqueueSummary(batch.ID)
		}
	}

	if len(pending) > 0 {
		j.log.WithField("batches", len(pending)).Info("requeued pending batches")
	}
}
