package services

import (
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/jurisdocs/caseflow/internal/models"
)

// SampleSize is the number of documents a reviewer sees in the facts and
// summary quality pass. MinGoodSamples is the pass bar for a full-size
// sample, a strict majority.
const (
	SampleSize     = 10
	MinGoodSamples = SampleSize/2 + 1
)

// passBar returns the strict-majority threshold for a sample of n
// documents. For the canonical 10-document sample this is MinGoodSamples.
func passBar(n int) int {
	return n/2 + 1
}

// selectSampleIDs draws the review sample from a batch's documents. With
// SampleSize or fewer documents the whole batch is the sample, in order.
// Otherwise a Fisher-Yates shuffle over a copy picks SampleSize of them.
// Callers persist the result on the batch; the selection is made once.
func selectSampleIDs(docs []*models.Document) []string {
	if len(docs) <= SampleSize {
		ids := make([]string, len(docs))
		for i, doc := range docs {
			ids[i] = doc.ID
		}
		return ids
	}

	shuffled := make([]string, len(docs))
	for i, doc := range docs {
		shuffled[i] = doc.ID
	}
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:SampleSize]
}

// filterSample keeps the documents belonging to the persisted sample,
// preserving the sample's stored order.
func filterSample(docs []*models.Document, sampleIDs []string) []*models.Document {
	members := mapset.NewSet(sampleIDs...)
	byID := make(map[string]*models.Document, len(docs))
	for _, doc := range docs {
		if members.Contains(doc.ID) {
			byID[doc.ID] = doc
		}
	}

	out := make([]*models.Document, 0, len(sampleIDs))
	for _, id := range sampleIDs {
		if doc, ok := byID[id]; ok {
			out = append(out, doc)
		}
	}
	return out
}
