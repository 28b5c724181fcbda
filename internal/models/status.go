package models

// BatchStatus is the single canonical lifecycle vocabulary for a batch.
// A batch only ever moves forward through these, except for the explicit
// retry operations on ReviewService.
type BatchStatus string

const (
	BatchPendingBasicExtraction    BatchStatus = "pending_basic_extraction"
	BatchBasicExtractionInProgress BatchStatus = "basic_extraction_in_progress"
	BatchBasicExtracted            BatchStatus = "basic_extracted"
	BatchPendingBasicReview        BatchStatus = "pending_basic_review"
	BatchBasicReviewInProgress     BatchStatus = "basic_review_in_progress"
	BatchBasicReviewCompleted      BatchStatus = "basic_review_completed_ready_for_fs"
	BatchPendingSummaryExtraction  BatchStatus = "pending_summary_extraction"
	BatchSummaryExtractionRunning  BatchStatus = "summary_extraction_in_progress"
	BatchPendingSummaryReview      BatchStatus = "pending_summary_review"
	BatchSummaryReviewInProgress   BatchStatus = "summary_review_in_progress"
	BatchIndexed                   BatchStatus = "indexed"
	BatchErrorSummaryReview        BatchStatus = "error_summary_review"
	BatchError                     BatchStatus = "error"
)

// DocumentStatus mirrors the coarse processing stage of a single document.
type DocumentStatus string

const (
	DocumentPending   DocumentStatus = "pending"
	DocumentExtracted DocumentStatus = "extracted"
	DocumentReviewed  DocumentStatus = "reviewed"
	DocumentIndexed   DocumentStatus = "indexed"
	DocumentError     DocumentStatus = "error"
)

// ReviewStatus tracks what a reviewer has done to a document in the current pass.
type ReviewStatus string

const (
	ReviewPendingBasic       ReviewStatus = "pending_basic_review"
	ReviewPendingSample      ReviewStatus = "pending_sample_review"
	ReviewAIOutputApproved   ReviewStatus = "reviewed_ai_output_approved"
	ReviewManualEditApproved ReviewStatus = "reviewed_manual_edit_approved"
	ReviewSampleGood         ReviewStatus = "sample_good"
	ReviewSampleNeedsFix     ReviewStatus = "sample_needs_correction"
)

var batchStatusLabels = map[BatchStatus]string{
	BatchPendingBasicExtraction:    "Queued for Extraction",
	BatchBasicExtractionInProgress: "Extracting Details",
	BatchBasicExtracted:            "Details Extracted",
	BatchPendingBasicReview:        "Awaiting Details Review",
	BatchBasicReviewInProgress:     "Details Review In Progress",
	BatchBasicReviewCompleted:      "Ready for Facts & Summary",
	BatchPendingSummaryExtraction:  "Queued for Facts & Summary",
	BatchSummaryExtractionRunning:  "Extracting Facts & Summary",
	BatchPendingSummaryReview:      "Awaiting Sample Review",
	BatchSummaryReviewInProgress:   "Sample Review In Progress",
	BatchIndexed:                   "Indexed",
	BatchErrorSummaryReview:        "Needs Manual Intervention",
	BatchError:                     "Ingestion Error",
}

// Label returns the human-readable form of a batch status.
func (s BatchStatus) Label() string {
	if l, ok := batchStatusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// Known reports whether s is part of the canonical vocabulary.
func (s BatchStatus) Known() bool {
	_, ok := batchStatusLabels[s]
	return ok
}

// Terminal reports whether a batch in this status has left the pipeline.
func (s BatchStatus) Terminal() bool {
	return s == BatchIndexed || s == BatchError || s == BatchErrorSummaryReview
}

// Pending reports whether the reviewer has not yet acted on the document
// in the current pass. Reviewed counts are derived from this.
func (r ReviewStatus) Pending() bool {
	return r == ReviewPendingBasic || r == ReviewPendingSample
}

// Stage identifies one screen of the review console.
type Stage string

const (
	StageUpload             Stage = "upload"
	StageBasicExtraction    Stage = "basic-extraction"
	StageBasicDetailsReview Stage = "basic-details-review"
	StageFSExtraction       Stage = "fs-extraction"
	StageFactsSummaryReview Stage = "facts-summary-review"
	StageIndexed            Stage = "indexed"
	StageIntervention       Stage = "intervention"
)

// stageStatuses maps each console stage to the batch statuses listed in
// that stage's queue. Pure dispatch table, no business logic.
var stageStatuses = map[Stage][]BatchStatus{
	StageUpload:             {},
	StageBasicExtraction:    {BatchPendingBasicExtraction, BatchBasicExtractionInProgress, BatchBasicExtracted},
	StageBasicDetailsReview: {BatchBasicExtracted, BatchPendingBasicReview, BatchBasicReviewInProgress, BatchBasicReviewCompleted},
	StageFSExtraction:       {BatchBasicReviewCompleted, BatchPendingSummaryExtraction, BatchSummaryExtractionRunning},
	StageFactsSummaryReview: {BatchPendingSummaryReview, BatchSummaryReviewInProgress},
	StageIndexed:            {BatchIndexed},
	StageIntervention:       {BatchErrorSummaryReview, BatchError},
}

// StageFor resolves a navigation path segment to a console stage.
func StageFor(segment string) (Stage, bool) {
	s := Stage(segment)
	_, ok := stageStatuses[s]
	return s, ok
}

// StatusesForStage returns the batch statuses visible in a stage's queue.
// The result is a copy; callers may mutate it freely.
func StatusesForStage(s Stage) []BatchStatus {
	out := make([]BatchStatus, len(stageStatuses[s]))
	copy(out, stageStatuses[s])
	return out
}
