package memory

import (
	"context"
	"sync"

	"tradebot-pipeline/internal/storage"
)

// TrackerStore is an in-memory implementation of storage.TrackerStore.
type TrackerStore struct {
	mu         sync.RWMutex
	watermarks map[string]int64

	// FailReads makes Watermark return an error, for exercising the
	// pipeline's fail-soft resume-from-zero path.
	FailReads bool
}

// NewTrackerStore creates a new in-memory tracker store.
func NewTrackerStore() *TrackerStore {
	return &TrackerStore{watermarks: make(map[string]int64)}
}

// Compile-time interface check.
var _ storage.TrackerStore = (*TrackerStore)(nil)

// Watermark returns the stored id, or storage.ErrNotFound for an
// untracked table.
func (s *TrackerStore) Watermark(_ context.Context, table string) (int64, error) {
	if table == "" {
		return 0, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailReads {
		return 0, storage.ErrInvalidInput
	}

	id, ok := s.watermarks[table]
	if !ok {
		return 0, storage.ErrNotFound
	}
	return id, nil
}

// Advance upserts the watermark unconditionally.
func (s *TrackerStore) Advance(_ context.Context, table string, id int64) error {
	if table == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.watermarks[table] = id
	return nil
}
