package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/jurisdocs/caseflow/internal/models"
)

var (
	// ErrBatchNotFound is returned when no batch exists for an ID.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrDocumentNotFound is returned when no document exists for an ID.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrBatchExists is returned when creating a batch with a taken ID.
	ErrBatchExists = errors.New("batch already exists")
)

// MemoryStore keeps the whole object graph in process memory behind one
// RWMutex. Reads and writes exchange deep copies only, so no caller ever
// aliases store-owned state.
type MemoryStore struct {
	mu       sync.RWMutex
	batches  map[string]*models.Batch
	docs     map[string]*models.Document
	docOrder map[string][]string // batch ID -> document IDs in upload order
	order    []string            // batch IDs in creation order
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		batches:  make(map[string]*models.Batch),
		docs:     make(map[string]*models.Document),
		docOrder: make(map[string][]string),
	}
}

func (s *MemoryStore) CreateBatch(ctx context.Context, batch *models.Batch, docs []*models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[batch.ID]; ok {
		return ErrBatchExists
	}

	s.batches[batch.ID] = batch.Clone()
	s.order = append(s.order, batch.ID)

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		s.docs[doc.ID] = doc.Clone()
		ids = append(ids, doc.ID)
	}
	s.docOrder[batch.ID] = ids

	return nil
}

func (s *MemoryStore) GetBatch(ctx context.Context, id string) (*models.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, ok := s.batches[id]
	if !ok {
		return nil, ErrBatchNotFound
	}
	return batch.Clone(), nil
}

func (s *MemoryStore) ListBatches(ctx context.Context) ([]*models.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Batch, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.batches[s.order[i]].Clone())
	}
	return out, nil
}

func (s *MemoryStore) ListBatchesByStatus(ctx context.Context, statuses ...models.BatchStatus) ([]*models.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Batch, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		batch := s.batches[s.order[i]]
		if slices.Contains(statuses, batch.Status) {
			out = append(out, batch.Clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateBatch(ctx context.Context, batch *models.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[batch.ID]; !ok {
		return ErrBatchNotFound
	}
	s.batches[batch.ID] = batch.Clone()
	return nil
}

func (s *MemoryStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return doc.Clone(), nil
}

func (s *MemoryStore) ListDocuments(ctx context.Context, batchID string) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, ok := s.docOrder[batchID]
	if !ok {
		return nil, ErrBatchNotFound
	}
	out := make([]*models.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.docs[id].Clone())
	}
	return out, nil
}

func (s *MemoryStore) UpdateDocument(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[doc.ID]; !ok {
		return ErrDocumentNotFound
	}
	s.docs[doc.ID] = doc.Clone()
	return nil
}
