package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jurisdocs/caseflow/internal/services"
)

type errorResponse struct {
	Error string             `json:"error"`
	Kind  services.ErrorKind `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("encoding response failed")
	}
}

// writeError maps the service error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	kind := services.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindInvalidInput:
		status = http.StatusUnprocessableEntity
	case services.KindWrongStage, services.KindConflict, services.KindQualityGate:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("request failed")
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

// NotFound is the catch-all route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "no such route", Kind: services.KindNotFound})
}
