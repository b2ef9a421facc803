package memory

import (
	"context"
	"sync"

	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/storage"
)

// destStore implements the shared fingerprint-deduplicated upsert
// behavior for the in-memory destination stores.
type destStore[T any] struct {
	mu   sync.RWMutex
	rows map[string]T // keyed by row_hash

	// WriteErr, when set, is returned by UpsertBatch. Used to test the
	// writer retry path.
	WriteErr error
}

func (s *destStore[T]) upsert(rows []T, hashOf func(T) string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.WriteErr != nil {
		return 0, s.WriteErr
	}
	if s.rows == nil {
		s.rows = make(map[string]T)
	}

	var inserted int64
	for _, r := range rows {
		h := hashOf(r)
		if _, exists := s.rows[h]; exists {
			continue
		}
		s.rows[h] = r
		inserted++
	}
	return inserted, nil
}

// Len returns the number of distinct fingerprints stored.
func (s *destStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// All returns every stored row in unspecified order.
func (s *destStore[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out
}

// SetWriteErr arms or clears the injected write failure.
func (s *destStore[T]) SetWriteErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WriteErr = err
}

// CleanOpportunityStore is the in-memory clean_arb_opportunity sink.
type CleanOpportunityStore struct {
	destStore[*domain.CleanOpportunity]
}

// NewCleanOpportunityStore creates an empty store.
func NewCleanOpportunityStore() *CleanOpportunityStore {
	return &CleanOpportunityStore{}
}

var _ storage.CleanOpportunityStore = (*CleanOpportunityStore)(nil)

// UpsertBatch inserts rows, skipping known fingerprints.
func (s *CleanOpportunityStore) UpsertBatch(_ context.Context, rows []*domain.CleanOpportunity) (int64, error) {
	return s.upsert(rows, func(r *domain.CleanOpportunity) string { return r.RowHash })
}

// CleanCoinInfoStore is the in-memory clean_bts_coin_info sink.
type CleanCoinInfoStore struct {
	destStore[*domain.CleanCoinInfo]
}

// NewCleanCoinInfoStore creates an empty store.
func NewCleanCoinInfoStore() *CleanCoinInfoStore {
	return &CleanCoinInfoStore{}
}

var _ storage.CleanCoinInfoStore = (*CleanCoinInfoStore)(nil)

// UpsertBatch inserts rows, skipping known fingerprints.
func (s *CleanCoinInfoStore) UpsertBatch(_ context.Context, rows []*domain.CleanCoinInfo) (int64, error) {
	return s.upsert(rows, func(r *domain.CleanCoinInfo) string { return r.RowHash })
}

// ProcessedArbStore is the in-memory processed_arb sink.
type ProcessedArbStore struct {
	destStore[*domain.ProcessedArb]
}

// NewProcessedArbStore creates an empty store.
func NewProcessedArbStore() *ProcessedArbStore {
	return &ProcessedArbStore{}
}

var _ storage.ProcessedArbStore = (*ProcessedArbStore)(nil)

// UpsertBatch inserts rows, skipping known fingerprints.
func (s *ProcessedArbStore) UpsertBatch(_ context.Context, rows []*domain.ProcessedArb) (int64, error) {
	return s.upsert(rows, func(r *domain.ProcessedArb) string { return r.RowHash })
}

// ProcessedBTSStore is the in-memory processed_bts sink.
type ProcessedBTSStore struct {
	destStore[*domain.PairedTrade]
}

// NewProcessedBTSStore creates an empty store.
func NewProcessedBTSStore() *ProcessedBTSStore {
	return &ProcessedBTSStore{}
}

var _ storage.ProcessedBTSStore = (*ProcessedBTSStore)(nil)

// UpsertBatch inserts trades, skipping known fingerprints.
func (s *ProcessedBTSStore) UpsertBatch(_ context.Context, rows []*domain.PairedTrade) (int64, error) {
	return s.upsert(rows, func(r *domain.PairedTrade) string { return r.RowHash })
}
