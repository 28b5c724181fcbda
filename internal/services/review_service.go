package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jurisdocs/caseflow/internal/core/store"
	"github.com/jurisdocs/caseflow/internal/models"
)

// Scheduler hands batches to the background extraction engine. The
// in-process engine satisfies this; a real extraction backend would too.
type Scheduler interface {
	EnqueueBasic(batchID string)
	EnqueueSummary(batchID string)
}

// ReviewService is the authoritative lifecycle state machine. Every
// status transition for batches and documents goes through one of its
// methods; handlers are pure consumers. Each mutating method holds the
// batch's lock for its whole get-mutate-update sequence, so two
// reviewers working the same batch never lose each other's counters.
type ReviewService struct {
	store     store.Store
	scheduler Scheduler
	locks     *store.BatchLocks
	log       *logrus.Entry
}

func NewReviewService(st store.Store, scheduler Scheduler, locks *store.BatchLocks) *ReviewService {
	return &ReviewService{
		store:     st,
		scheduler: scheduler,
		locks:     locks,
		log:       logrus.WithField("component", "review"),
	}
}

// ListBatches returns every batch, newest first.
func (s *ReviewService) ListBatches(ctx context.Context) ([]*models.Batch, error) {
	batches, err := s.store.ListBatches(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range batches {
		b.StatusLabel = b.Status.Label()
	}
	return batches, nil
}

// GetBatch returns one batch.
func (s *ReviewService) GetBatch(ctx context.Context, batchID string) (*models.Batch, error) {
	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	batch.StatusLabel = batch.Status.Label()
	return batch, nil
}

// ListStage returns the batches visible in one console stage's queue.
func (s *ReviewService) ListStage(ctx context.Context, stage models.Stage) ([]*models.Batch, error) {
	statuses := models.StatusesForStage(stage)
	if len(statuses) == 0 {
		return []*models.Batch{}, nil
	}
	batches, err := s.store.ListBatchesByStatus(ctx, statuses...)
	if err != nil {
		return nil, err
	}
	for _, b := range batches {
		b.StatusLabel = b.Status.Label()
	}
	return batches, nil
}

// StartBasicExtraction queues a freshly uploaded batch for the basic
// metadata extraction stage.
func (s *ReviewService) StartBasicExtraction(ctx context.Context, batchID string) (*models.Batch, error) {
	s.locks.Lock(batchID)
	defer s.locks.Unlock(batchID)

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Status != models.BatchPendingBasicExtraction {
		return nil, fmt.Errorf("start basic extraction of %s in status %q: %w", batchID, batch.Status, ErrWrongStage)
	}

	s.scheduler.EnqueueBasic(batchID)
	s.log.WithField("batch_id", batchID).Info("queued for basic extraction")
	batch.StatusLabel = batch.Status.Label()
	return batch, nil
}

// LoadBasicReview returns a batch and its documents for the details
// review screen. The first time a document is seen here its extractor
// output is snapshotted as the diff baseline; the snapshot is never
// overwritten afterwards.
func (s *ReviewService) LoadBasicReview(ctx context.Context, batchID string) (*models.Batch, []*models.Document, error) {
	s.locks.Lock(batchID)
	defer s.locks.Unlock(batchID)

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}

	docs, err := s.store.ListDocuments(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}

	for _, doc := range docs {
		if doc.BasicMetadata == nil || doc.OriginalBasicMetadata != nil {
			continue
		}
		doc.OriginalBasicMetadata = doc.BasicMetadata.Clone()
		if err := s.store.UpdateDocument(ctx, doc); err != nil {
			return nil, nil, fmt.Errorf("capture review baseline for %s: %w", doc.ID, err)
		}
	}

	batch.StatusLabel = batch.Status.Label()
	return batch, docs, nil
}

// SaveDocumentMetadata applies a reviewer's save of one document's basic
// metadata. The document must belong to the addressed batch. The
// reviewed count is recomputed from the full document set, so re-saving
// the same document never double-counts it.
func (s *ReviewService) SaveDocumentMetadata(ctx context.Context, batchID, documentID string, newData *models.BasicMetadata) (*models.Document, *models.Batch, error) {
	s.locks.Lock(batchID)
	defer s.locks.Unlock(batchID)

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}

	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	if doc.BatchID != batchID {
		return nil, nil, fmt.Errorf("document %s does not belong to batch %s: %w", documentID, batchID, store.ErrDocumentNotFound)
	}

	switch batch.Status {
	case models.BatchBasicExtracted, models.BatchPendingBasicReview,
		models.BatchBasicReviewInProgress, models.BatchBasicReviewCompleted:
	default:
		return nil, nil, fmt.Errorf("save metadata for batch %s in status %q: %w", batch.ID, batch.Status, ErrWrongStage)
	}

	// Baseline must exist before the edit lands. Normally LoadBasicReview
	// captured it; a direct save on a never-loaded document captures it here.
	if doc.OriginalBasicMetadata == nil {
		doc.OriginalBasicMetadata = doc.BasicMetadata.Clone()
	}

	wasModified := !newData.Equal(doc.OriginalBasicMetadata)
	doc.BasicMetadata = newData.Clone()
	doc.IsModifiedInThisReview = wasModified
	doc.Status = models.DocumentReviewed
	if wasModified {
		doc.ReviewStatus = models.ReviewManualEditApproved
	} else {
		doc.ReviewStatus = models.ReviewAIOutputApproved
	}

	if err := s.store.UpdateDocument(ctx, doc); err != nil {
		return nil, nil, err
	}

	docs, err := s.store.ListDocuments(ctx, batch.ID)
	if err != nil {
		return nil, nil, err
	}
	reviewed := 0
	for _, d := range docs {
		if !d.ReviewStatus.Pending() {
			reviewed++
		}
	}

	batch.DocumentsReviewed = reviewed
	if reviewed == batch.TotalDocuments && reviewed > 0 {
		batch.Status = models.BatchBasicReviewCompleted
	} else {
		batch.Status = models.BatchBasicReviewInProgress
	}
	if err := s.store.UpdateBatch(ctx, batch); err != nil {
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{
		"batch_id":    batch.ID,
		"document_id": doc.ID,
		"modified":    wasModified,
		"reviewed":    reviewed,
	}).Info("document metadata saved")

	batch.StatusLabel = batch.Status.Label()
	return doc, batch, nil
}

// StartSummaryExtraction hands a details-reviewed batch to the facts and
// summary extraction stage.
func (s *ReviewService) StartSummaryExtraction(ctx context.Context, batchID string) (*models.Batch, error) {
	s.locks.Lock(batchID)
	defer s.locks.Unlock(batchID)

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	switch batch.Status {
	case models.BatchBasicReviewCompleted, models.BatchPendingSummaryExtraction:
	default:
		return nil, fmt.Errorf("start summary extraction of %s in status %q: %w", batchID, batch.Status, ErrWrongStage)
	}

	batch.Status = models.BatchPendingSummaryExtraction
	if err := s.store.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.scheduler.EnqueueSummary(batchID)
	s.log.WithField("batch_id", batchID).Info("queued for summary extraction")
	batch.StatusLabel = batch.Status.Label()
	return batch, nil
}

// LoadSummaryReview returns the batch and its quality-review sample. The
// sample is drawn once and persisted on the batch, so repeated sessions
// see the same documents.
func (s *ReviewService) LoadSummaryReview(ctx context.Context, batchID string) (*models.Batch, []*models.Document, error) {
	s.locks.Lock(batchID)
	defer s.locks.Unlock(batchID)

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	switch batch.Status {
	case models.BatchPendingSummaryReview, models.BatchSummaryReviewInProgress:
	default:
		return nil, nil, fmt.Errorf("load sample review of %s in status %q: %w", batchID, batch.Status, ErrWrongStage)
	}

	docs, err := s.store.ListDocuments(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}

	if len(batch.SampleDocumentIDs) == 0 {
		batch.SampleDocumentIDs = selectSampleIDs(docs)
		if err := s.store.UpdateBatch(ctx, batch); err != nil {
			return nil, nil, err
		}
		s.log.WithFields(logrus.Fields{
			"batch_id":    batchID,
			"sample_size": len(batch.SampleDocumentIDs),
		}).Info("review sample selected")
	}

	batch.StatusLabel = batch.Status.Label()
	return batch, filterSample(docs, batch.SampleDocumentIDs), nil
}

// MarkSample records a reviewer's good/needs-correction verdict on one
// sample document. A second verdict on the same document in the same
// pass is rejected; that is what keeps samplesGood <= samplesReviewed <=
// the sample size under any call sequence. Once the whole sample is
// reviewed the quality gate decides the batch's disposition.
func (s *ReviewService) MarkSample(ctx context.Context, batchID, documentID string, isGood bool) (*models.Batch, error) {
	s.locks.Lock(batchID)
	defer s.locks.Unlock(batchID)

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	switch batch.Status {
	case models.BatchPendingSummaryReview, models.BatchSummaryReviewInProgress:
	default:
		return nil, fmt.Errorf("mark sample on batch %s in status %q: %w", batchID, batch.Status, ErrWrongStage)
	}

	inSample := false
	for _, id := range batch.SampleDocumentIDs {
		if id == documentID {
			inSample = true
			break
		}
	}
	if !inSample {
		return nil, fmt.Errorf("document %s on batch %s: %w", documentID, batchID, ErrNotInSample)
	}

	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.ReviewStatus != models.ReviewPendingSample {
		return nil, fmt.Errorf("document %s: %w", documentID, ErrSampleAlreadyReviewed)
	}

	doc.Status = models.DocumentReviewed
	if isGood {
		doc.ReviewStatus = models.ReviewSampleGood
	} else {
		doc.ReviewStatus = models.ReviewSampleNeedsFix
	}
	if err := s.store.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}

	batch.SamplesReviewed++
	if isGood {
		batch.SamplesGood++
	}
	batch.Status = models.BatchSummaryReviewInProgress

	if batch.SamplesReviewed >= len(batch.SampleDocumentIDs) {
		if err := s.applyQualityGate(ctx, batch); err != nil {
			return nil, err
		}
	} else if err := s.store.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"batch_id":         batchID,
		"document_id":      documentID,
		"good":             isGood,
		"samples_reviewed": batch.SamplesReviewed,
		"samples_good":     batch.SamplesGood,
	}).Info("sample verdict recorded")

	batch.StatusLabel = batch.Status.Label()
	return batch, nil
}

// applyQualityGate routes a fully sampled batch to indexed or to the
// manual intervention queue. The bar is a strict majority of the actual
// sample size; for the canonical 10-document sample that is
// MinGoodSamples.
func (s *ReviewService) applyQualityGate(ctx context.Context, batch *models.Batch) error {
	passed := batch.SamplesGood >= passBar(len(batch.SampleDocumentIDs))
	if passed {
		batch.Status = models.BatchIndexed
	} else {
		batch.Status = models.BatchErrorSummaryReview
	}
	if err := s.store.UpdateBatch(ctx, batch); err != nil {
		return err
	}

	if passed {
		docs, err := s.store.ListDocuments(ctx, batch.ID)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			doc.Status = models.DocumentIndexed
			if err := s.store.UpdateDocument(ctx, doc); err != nil {
				return err
			}
		}
	}

	s.log.WithFields(logrus.Fields{
		"batch_id":     batch.ID,
		"samples_good": batch.SamplesGood,
		"passed":       passed,
	}).Info("quality gate evaluated")
	return nil
}

// IndexBatch is the explicit finalize hand-off. It succeeds only for a
// batch the quality gate has already routed to indexed; calling it again
// is a no-op.
func (s *ReviewService) IndexBatch(ctx context.Context, batchID string) (*models.Batch, error) {
	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Status != models.BatchIndexed {
		return nil, fmt.Errorf("index batch %s in status %q: %w", batchID, batch.Status, ErrQualityGateNotPassed)
	}
	batch.StatusLabel = batch.Status.Label()
	return batch, nil
}

// AdvanceStage sets a batch's status for explicit hand-offs between
// queue screens. The target must be part of the canonical vocabulary.
func (s *ReviewService) AdvanceStage(ctx context.Context, batchID string, target models.BatchStatus) (*models.Batch, error) {
	if !target.Known() {
		return nil, fmt.Errorf("advance batch %s: unknown status %q: %w", batchID, target, ErrWrongStage)
	}
	s.locks.Lock(batchID)
	defer s.locks.Unlock(batchID)

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	batch.Status = target
	if err := s.store.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"batch_id": batchID, "status": target}).Info("batch advanced")
	batch.StatusLabel = batch.Status.Label()
	return batch, nil
}

// RetrySampleReview resets a batch that failed the quality gate for a
// fresh sample pass: counters to zero, sample documents back to pending,
// and the persisted sample cleared so the next session draws a new one.
func (s *ReviewService) RetrySampleReview(ctx context.Context, batchID string) (*models.Batch, error) {
	s.locks.Lock(batchID)
	defer s.locks.Unlock(batchID)

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Status != models.BatchErrorSummaryReview {
		return nil, fmt.Errorf("retry sample review of %s in status %q: %w", batchID, batch.Status, ErrNotRetryable)
	}

	docs, err := s.store.ListDocuments(ctx, batchID)
	if err != nil {
		return nil, err
	}
	for _, doc := range filterSample(docs, batch.SampleDocumentIDs) {
		doc.ReviewStatus = models.ReviewPendingSample
		doc.Status = models.DocumentExtracted
		if err := s.store.UpdateDocument(ctx, doc); err != nil {
			return nil, err
		}
	}

	batch.SamplesReviewed = 0
	batch.SamplesGood = 0
	batch.SampleDocumentIDs = nil
	batch.Status = models.BatchPendingSummaryReview
	if err := s.store.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.log.WithField("batch_id", batchID).Info("sample review reset")
	batch.StatusLabel = batch.Status.Label()
	return batch, nil
}

// RetryIngestion clears an ingestion error and queues the batch for
// basic extraction again. The original upload bytes are gone, so the
// retry re-runs extraction over the batch's recorded documents.
func (s *ReviewService) RetryIngestion(ctx context.Context, batchID string) (*models.Batch, error) {
	s.locks.Lock(batchID)
	defer s.locks.Unlock(batchID)

	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Status != models.BatchError {
		return nil, fmt.Errorf("retry ingestion of %s in status %q: %w", batchID, batch.Status, ErrNotRetryable)
	}

	batch.ErrorMessage = ""
	batch.Status = models.BatchPendingBasicExtraction
	if err := s.store.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.scheduler.EnqueueBasic(batchID)
	s.log.WithField("batch_id", batchID).Info("ingestion retry queued")
	batch.StatusLabel = batch.Status.Label()
	return batch, nil
}
