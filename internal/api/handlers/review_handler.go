package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jurisdocs/caseflow/internal/models"
	"github.com/jurisdocs/caseflow/internal/services"
)

type ReviewHandler struct {
	review *services.ReviewService
}

func NewReviewHandler(review *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{review: review}
}

type reviewResponse struct {
	Batch     *models.Batch      `json:"batch"`
	Documents []*models.Document `json:"documents"`
}

type saveMetadataRequest struct {
	DocumentID    string                `json:"document_id"`
	BasicMetadata *models.BasicMetadata `json:"basic_metadata"`
}

type sampleVerdictRequest struct {
	DocumentID string `json:"document_id"`
	IsGood     bool   `json:"is_good"`
}

// StartBasicExtraction queues a batch for the basic metadata pass.
func (h *ReviewHandler) StartBasicExtraction(w http.ResponseWriter, r *http.Request) {
	batch, err := h.review.StartBasicExtraction(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, batch)
}

// GetBasicReview returns the batch and its documents for the details
// review screen.
func (h *ReviewHandler) GetBasicReview(w http.ResponseWriter, r *http.Request) {
	batch, docs, err := h.review.LoadBasicReview(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewResponse{Batch: batch, Documents: docs})
}

// SaveBasicReview applies a reviewer's save of one document's details.
func (h *ReviewHandler) SaveBasicReview(w http.ResponseWriter, r *http.Request) {
	var req saveMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.DocumentID == "" || req.BasicMetadata == nil {
		http.Error(w, "document_id and basic_metadata are required", http.StatusBadRequest)
		return
	}

	doc, batch, err := h.review.SaveDocumentMetadata(r.Context(), chi.URLParam(r, "batchID"), req.DocumentID, req.BasicMetadata)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewResponse{Batch: batch, Documents: []*models.Document{doc}})
}

// StartSummaryExtraction queues a batch for the facts and summary pass.
func (h *ReviewHandler) StartSummaryExtraction(w http.ResponseWriter, r *http.Request) {
	batch, err := h.review.StartSummaryExtraction(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, batch)
}

// GetSummaryReview returns the batch and its quality-review sample.
func (h *ReviewHandler) GetSummaryReview(w http.ResponseWriter, r *http.Request) {
	batch, docs, err := h.review.LoadSummaryReview(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewResponse{Batch: batch, Documents: docs})
}

// MarkSample records one good/needs-correction verdict.
func (h *ReviewHandler) MarkSample(w http.ResponseWriter, r *http.Request) {
	var req sampleVerdictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.DocumentID == "" {
		http.Error(w, "document_id is required", http.StatusBadRequest)
		return
	}

	batch, err := h.review.MarkSample(r.Context(), chi.URLParam(r, "batchID"), req.DocumentID, req.IsGood)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}
