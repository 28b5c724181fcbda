package store

import "sync"

// BatchLocks serializes read-modify-write sequences on a single batch.
// The store's own mutex only makes individual map operations safe; any
// writer doing get-mutate-update (review operations, extraction
// workers) must hold the batch's lock across the whole sequence or
// concurrent writers lose updates.
type BatchLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewBatchLocks() *BatchLocks {
	return &BatchLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for one batch, creating it on first use.
// Batches are never deleted, so entries live for the process lifetime.
func (l *BatchLocks) Lock(batchID string) {
	l.mu.Lock()
	m, ok := l.locks[batchID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[batchID] = m
	}
	l.mu.Unlock()

	m.Lock()
}

// Unlock releases the mutex for one batch.
func (l *BatchLocks) Unlock(batchID string) {
	l.mu.Lock()
	m := l.locks[batchID]
	l.mu.Unlock()

	m.Unlock()
}
