package extraction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisdocs/caseflow/internal/core/store"
	"github.com/jurisdocs/caseflow/internal/models"
)

func seed(t *testing.T, st store.Store, status models.BatchStatus, n int) *models.Batch {
	t.Helper()
	batch := &models.Batch{
		ID:             fmt.Sprintf("batch-%s", status),
		Name:           "engine-test",
		Status:         status,
		TotalDocuments: n,
	}
	docs := make([]*models.Document, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, &models.Document{
			ID:           fmt.Sprintf("%s-doc-%d", batch.ID, i),
			BatchID:      batch.ID,
			FileName:     fmt.Sprintf("judgment_%d.pdf", i),
			Status:       models.DocumentPending,
			ReviewStatus: models.ReviewPendingBasic,
		})
	}
	require.NoError(t, st.CreateBatch(context.Background(), batch, docs))
	return batch
}

// waitForStatus polls until the batch reaches want or the deadline passes.
func waitForStatus(t *testing.T, st store.Store, batchID string, want models.BatchStatus) *models.Batch {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		batch, err := st.GetBatch(context.Background(), batchID)
		require.NoError(t, err)
		if batch.Status == want {
			return batch
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("batch %s never reached %s", batchID, want)
	return nil
}

func TestEngine_BasicPass(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st, store.NewBatchLocks(), Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.Start(ctx, 1)

	batch := seed(t, st, models.BatchPendingBasicExtraction, 3)
	engine.EnqueueBasic(batch.ID)

	done := waitForStatus(t, st, batch.ID, models.BatchBasicExtracted)
	assert.Empty(t, done.ErrorMessage)

	docs, err := st.ListDocuments(context.Background(), batch.ID)
	require.NoError(t, err)
	for _, doc := range docs {
		require.NotNil(t, doc.BasicMetadata)
		assert.NotEmpty(t, doc.BasicMetadata.CaseNumber)
		assert.NotEmpty(t, doc.BasicMetadata.Judges)
		assert.Equal(t, models.DocumentExtracted, doc.Status)
		assert.Equal(t, models.ReviewPendingBasic, doc.ReviewStatus)
	}
}

func TestEngine_SummaryPass(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st, store.NewBatchLocks(), Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.Start(ctx, 1)

	batch := seed(t, st, models.BatchPendingSummaryExtraction, 2)
	engine.EnqueueSummary(batch.ID)

	waitForStatus(t, st, batch.ID, models.BatchPendingSummaryReview)

	docs, err := st.ListDocuments(context.Background(), batch.ID)
	require.NoError(t, err)
	for _, doc := range docs {
		require.NotNil(t, doc.SummaryMetadata)
		assert.NotEmpty(t, doc.SummaryMetadata.Facts)
		assert.NotEmpty(t, doc.SummaryMetadata.Summary)
		assert.Equal(t, models.ReviewPendingSample, doc.ReviewStatus)
	}
}

func TestEngine_SkipsStaleJobs(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st, store.NewBatchLocks(), Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.Start(ctx, 1)

	// Batch already past the basic stage; a stale basic job must not
	// reset it.
	batch := seed(t, st, models.BatchIndexed, 1)
	engine.EnqueueBasic(batch.ID)

	time.Sleep(50 * time.Millisecond)
	got, err := st.GetBatch(context.Background(), batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BatchIndexed, got.Status)
}

func TestEngine_FailureInjection(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st, store.NewBatchLocks(), Config{FailureRate: 1.0})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.Start(ctx, 1)

	batch := seed(t, st, models.BatchPendingBasicExtraction, 1)
	engine.EnqueueBasic(batch.ID)

	failed := waitForStatus(t, st, batch.ID, models.BatchError)
	assert.Contains(t, failed.ErrorMessage, "extraction backend unavailable")
}

func TestSynthesizeBasic_Deterministic(t *testing.T) {
	a := synthesizeBasic("batch", "judgment_01.pdf", 1)
	b := synthesizeBasic("batch", "judgment_01.pdf", 1)
	assert.True(t, a.Equal(b), "same inputs must produce the same metadata")

	c := synthesizeBasic("batch", "judgment_02.pdf", 2)
	assert.False(t, a.Equal(c), "different files should differ")
}

func TestSynthesizeSummary_UsesBasicDetails(t *testing.T) {
	basic := synthesizeBasic("batch", "judgment_01.pdf", 1)
	summary := synthesizeSummary(basic, "judgment_01.pdf")
	assert.Contains(t, summary.Facts, basic.CaseName)
	assert.Equal(t, basic.Citations, summary.Citations)

	bare := synthesizeSummary(nil, "judgment_01.pdf")
	assert.Contains(t, bare.Facts, "judgment_01.pdf")
	assert.Empty(t, bare.Citations)
}
