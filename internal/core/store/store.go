package store

import (
	"context"

	"github.com/jurisdocs/caseflow/internal/models"
)

// Store defines the persistence operations the review services need.
// Higher layers never depend on a concrete backing implementation.
type Store interface {
	// CreateBatch stores a new batch together with its documents.
	CreateBatch(ctx context.Context, batch *models.Batch, docs []*models.Document) error
	// GetBatch retrieves a batch by ID.
	GetBatch(ctx context.Context, id string) (*models.Batch, error)
	// ListBatches retrieves every batch, newest upload first.
	ListBatches(ctx context.Context) ([]*models.Batch, error)
	// ListBatchesByStatus retrieves batches in any of the given statuses.
	ListBatchesByStatus(ctx context.Context, statuses ...models.BatchStatus) ([]*models.Batch, error)
	// UpdateBatch replaces a stored batch.
	UpdateBatch(ctx context.Context, batch *models.Batch) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	// ListDocuments retrieves a batch's documents in upload order.
	ListDocuments(ctx context.Context, batchID string) ([]*models.Document, error)
	// UpdateDocument replaces a stored document.
	UpdateDocument(ctx context.Context, doc *models.Document) error
}
