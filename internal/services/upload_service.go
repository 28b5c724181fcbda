package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jurisdocs/caseflow/internal/core/store"
	"github.com/jurisdocs/caseflow/internal/models"
)

// Accepted upload content types. Exactly one file per upload action.
var acceptedContentTypes = map[string]bool{
	"application/pdf":              true,
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

// UploadService validates incoming files and creates batches. The file
// bytes are inspected to size the batch and then discarded; there is no
// blob store behind this service.
type UploadService struct {
	store     store.Store
	scheduler Scheduler
	log       *logrus.Entry
}

func NewUploadService(st store.Store, scheduler Scheduler) *UploadService {
	return &UploadService{
		store:     st,
		scheduler: scheduler,
		log:       logrus.WithField("component", "upload"),
	}
}

// Upload creates a batch from one uploaded PDF or ZIP. A PDF becomes a
// single-document batch. A ZIP becomes one document per archive entry; a
// corrupted or empty archive still creates the batch, parked in the
// error queue with an ingestion error message.
func (s *UploadService) Upload(ctx context.Context, filename, contentType string, data []byte) (*models.Batch, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" && ext != ".zip" {
		return nil, fmt.Errorf("upload %q: %w", filename, ErrUnsupportedFileType)
	}
	if contentType != "" && !acceptedContentTypes[contentType] {
		return nil, fmt.Errorf("upload %q with content type %q: %w", filename, contentType, ErrUnsupportedFileType)
	}

	batchID := uuid.NewString()
	batch := &models.Batch{
		ID:         batchID,
		Name:       strings.TrimSuffix(filepath.Base(filename), ext),
		UploadedAt: time.Now().UTC(),
		Status:     models.BatchPendingBasicExtraction,
	}

	var docs []*models.Document
	switch ext {
	case ".pdf":
		docs = []*models.Document{newDocument(batchID, filepath.Base(filename))}
	case ".zip":
		entries, err := zipEntryNames(data)
		if err != nil {
			batch.Status = models.BatchError
			batch.ErrorMessage = fmt.Sprintf("corrupted archive: %v", err)
		} else if len(entries) == 0 {
			batch.Status = models.BatchError
			batch.ErrorMessage = "empty archive: no documents found"
		}
		for _, name := range entries {
			docs = append(docs, newDocument(batchID, name))
		}
	}

	batch.TotalDocuments = len(docs)
	if err := s.store.CreateBatch(ctx, batch, docs); err != nil {
		return nil, err
	}

	// A healthy batch goes straight to the extraction queue; error
	// batches wait in the intervention queue for an explicit retry.
	if batch.Status == models.BatchPendingBasicExtraction {
		s.scheduler.EnqueueBasic(batchID)
	}

	s.log.WithFields(logrus.Fields{
		"batch_id":  batchID,
		"file":      filename,
		"documents": len(docs),
		"status":    batch.Status,
	}).Info("batch created")

	batch.StatusLabel = batch.Status.Label()
	return batch, nil
}

func newDocument(batchID, filename string) *models.Document {
	return &models.Document{
		ID:           uuid.NewString(),
		BatchID:      batchID,
		FileName:     filename,
		Status:       models.DocumentPending,
		ReviewStatus: models.ReviewPendingBasic,
	}
}

// zipEntryNames lists the document entries of a ZIP archive, in archive
// order. Directories and hidden bookkeeping entries are skipped.
func zipEntryNames(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var names []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := filepath.Base(f.Name)
		if strings.HasPrefix(base, ".") || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		names = append(names, f.Name)
	}
	return names, nil
}
