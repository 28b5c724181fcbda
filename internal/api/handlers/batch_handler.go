package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jurisdocs/caseflow/internal/models"
	"github.com/jurisdocs/caseflow/internal/services"
)

type BatchHandler struct {
	review *services.ReviewService
}

func NewBatchHandler(review *services.ReviewService) *BatchHandler {
	return &BatchHandler{review: review}
}

// ListBatches returns every batch, newest upload first.
func (h *BatchHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.review.ListBatches(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

// GetBatch returns one batch.
func (h *BatchHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.review.GetBatch(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// StageQueue lists the batches visible in one console stage. Unknown
// stage segments fall through to the catch-all 404.
func (h *BatchHandler) StageQueue(w http.ResponseWriter, r *http.Request) {
	stage, ok := models.StageFor(chi.URLParam(r, "stage"))
	if !ok {
		NotFound(w, r)
		return
	}
	batches, err := h.review.ListStage(r.Context(), stage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

// IndexBatch is the explicit finalize hand-off for a batch that passed
// the sample quality gate.
func (h *BatchHandler) IndexBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.review.IndexBatch(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

type advanceRequest struct {
	Status models.BatchStatus `json:"status"`
}

// AdvanceStage is the explicit hand-off between queue screens.
func (h *BatchHandler) AdvanceStage(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}
	batch, err := h.review.AdvanceStage(r.Context(), chi.URLParam(r, "batchID"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// RetryReview resets a quality-gate failure for a fresh sample pass.
func (h *BatchHandler) RetryReview(w http.ResponseWriter, r *http.Request) {
	batch, err := h.review.RetrySampleReview(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// RetryIngestion clears an ingestion error and queues the batch for
// extraction again.
func (h *BatchHandler) RetryIngestion(w http.ResponseWriter, r *http.Request) {
	batch, err := h.review.RetryIngestion(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}
