package services

import (
	"errors"

	"github.com/jurisdocs/caseflow/internal/core/store"
)

var (
	// ErrUnsupportedFileType is returned when an upload is neither a PDF nor a ZIP.
	ErrUnsupportedFileType = errors.New("unsupported file type, expected .pdf or .zip")
	// ErrWrongStage is returned when an operation is invoked on a batch outside the stage it belongs to.
	ErrWrongStage = errors.New("batch is not in a stage that allows this operation")
	// ErrSampleAlreadyReviewed is returned when a sample document is marked a second time in the same pass.
	ErrSampleAlreadyReviewed = errors.New("sample document already reviewed in this pass")
	// ErrNotInSample is returned when a sample verdict targets a document outside the selected sample.
	ErrNotInSample = errors.New("document is not part of the review sample")
	// ErrQualityGateNotPassed is returned when indexing is requested before the sample review passed.
	ErrQualityGateNotPassed = errors.New("batch has not passed the sample quality gate")
	// ErrNotRetryable is returned when a retry is requested for a batch that is not in an error state.
	ErrNotRetryable = errors.New("batch is not in a retryable error state")
)

// ErrorKind is the coarse taxonomy the HTTP layer maps to status codes.
// Ingestion failures never surface as request errors; they land on the
// batch itself as an errorMessage and show up in the error queue.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindInvalidInput ErrorKind = "invalid_input"
	KindWrongStage   ErrorKind = "wrong_stage"
	KindConflict     ErrorKind = "conflict"
	KindQualityGate  ErrorKind = "quality_gate_failure"
	KindInternal     ErrorKind = "internal"
)

// KindOf classifies an error from the service layer.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, store.ErrBatchNotFound), errors.Is(err, store.ErrDocumentNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnsupportedFileType), errors.Is(err, ErrNotInSample):
		return KindInvalidInput
	case errors.Is(err, ErrWrongStage), errors.Is(err, ErrNotRetryable):
		return KindWrongStage
	case errors.Is(err, ErrSampleAlreadyReviewed):
		return KindConflict
	case errors.Is(err, ErrQualityGateNotPassed):
		return KindQualityGate
	default:
		return KindInternal
	}
}
