package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisdocs/caseflow/internal/models"
)

func fixtureBatch(id string, status models.BatchStatus, docIDs ...string) (*models.Batch, []*models.Document) {
	batch := &models.Batch{
		ID:             id,
		Name:           "fixture",
		Status:         status,
		TotalDocuments: len(docIDs),
	}
	docs := make([]*models.Document, 0, len(docIDs))
	for _, docID := range docIDs {
		docs = append(docs, &models.Document{
			ID:      docID,
			BatchID: id,
			Status:  models.DocumentPending,
			BasicMetadata: &models.BasicMetadata{
				CaseNumber: "WP No. 1 of 2020",
				Judges:     []string{"Justice A. Sharma"},
			},
		})
	}
	return batch, docs
}

func TestMemoryStore_NotFound(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_, err := st.GetBatch(ctx, "missing")
	assert.ErrorIs(t, err, ErrBatchNotFound)

	_, err = st.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = st.ListDocuments(ctx, "missing")
	assert.ErrorIs(t, err, ErrBatchNotFound)

	err = st.UpdateBatch(ctx, &models.Batch{ID: "missing"})
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestMemoryStore_DuplicateCreateRejected(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	batch, docs := fixtureBatch("b1", models.BatchPendingBasicExtraction, "d1")

	require.NoError(t, st.CreateBatch(ctx, batch, docs))
	assert.ErrorIs(t, st.CreateBatch(ctx, batch, docs), ErrBatchExists)
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		batch, docs := fixtureBatch(id, models.BatchPendingBasicExtraction, id+"-doc")
		require.NoError(t, st.CreateBatch(ctx, batch, docs))
	}

	batches, err := st.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, "third", batches[0].ID)
	assert.Equal(t, "first", batches[2].ID)
}

func TestMemoryStore_ListByStatus(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	pending, pendingDocs := fixtureBatch("pending", models.BatchPendingBasicExtraction, "d1")
	indexed, indexedDocs := fixtureBatch("indexed", models.BatchIndexed, "d2")
	require.NoError(t, st.CreateBatch(ctx, pending, pendingDocs))
	require.NoError(t, st.CreateBatch(ctx, indexed, indexedDocs))

	got, err := st.ListBatchesByStatus(ctx, models.BatchIndexed)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "indexed", got[0].ID)
}

func TestMemoryStore_ReadsDoNotAliasStoreState(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	batch, docs := fixtureBatch("b1", models.BatchPendingBasicExtraction, "d1")
	require.NoError(t, st.CreateBatch(ctx, batch, docs))

	// Mutating what the store handed out must not leak back in.
	read, err := st.GetBatch(ctx, "b1")
	require.NoError(t, err)
	read.Status = models.BatchError
	read.SampleDocumentIDs = []string{"junk"}

	again, err := st.GetBatch(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BatchPendingBasicExtraction, again.Status)
	assert.Empty(t, again.SampleDocumentIDs)

	doc, err := st.GetDocument(ctx, "d1")
	require.NoError(t, err)
	doc.BasicMetadata.Judges[0] = "overwritten"
	doc.BasicMetadata.CaseNumber = "changed"

	docAgain, err := st.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Justice A. Sharma", docAgain.BasicMetadata.Judges[0])
	assert.Equal(t, "WP No. 1 of 2020", docAgain.BasicMetadata.CaseNumber)
}

func TestMemoryStore_DocumentOrderPreserved(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	batch, docs := fixtureBatch("b1", models.BatchPendingBasicExtraction, "d1", "d2", "d3")
	require.NoError(t, st.CreateBatch(ctx, batch, docs))

	listed, err := st.ListDocuments(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, id := range []string{"d1", "d2", "d3"} {
		assert.Equal(t, id, listed[i].ID)
	}
}
