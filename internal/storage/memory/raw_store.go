package memory

import (
	"context"
	"sort"
	"sync"

	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/storage"
)

// RawStore is an in-memory implementation of storage.RawStore seeded
// with fixture rows. Pagination follows the Postgres reader exactly:
// id > afterID, ascending, capped at limit.
type RawStore struct {
	mu sync.RWMutex

	Opportunities   []*domain.Opportunity
	CoinInfo        []*domain.CoinInfo
	ArbTransactions []*domain.ArbTransaction
	BTSTransactions []*domain.BTSTransaction

	// FetchErr, when set, is returned by every fetch. Used to test
	// the reader retry path.
	FetchErr error
}

// NewRawStore creates an empty in-memory raw store.
func NewRawStore() *RawStore {
	return &RawStore{}
}

// Compile-time interface check.
var _ storage.RawStore = (*RawStore)(nil)

func page[T any](rows []T, idOf func(T) int64, afterID int64, limit int) []T {
	var out []T
	for _, r := range rows {
		if idOf(r) > afterID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return idOf(out[i]) < idOf(out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FetchOpportunities returns seeded arbopportunity rows above afterID.
func (s *RawStore) FetchOpportunities(_ context.Context, afterID int64, limit int) ([]*domain.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return page(s.Opportunities, func(r *domain.Opportunity) int64 { return r.ID }, afterID, limit), nil
}

// FetchCoinInfo returns seeded btscoininfo rows above afterID.
func (s *RawStore) FetchCoinInfo(_ context.Context, afterID int64, limit int) ([]*domain.CoinInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return page(s.CoinInfo, func(r *domain.CoinInfo) int64 { return r.ID }, afterID, limit), nil
}

// FetchArbTransactions returns seeded arbtransaction rows above afterID.
func (s *RawStore) FetchArbTransactions(_ context.Context, afterID int64, limit int) ([]*domain.ArbTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return page(s.ArbTransactions, func(r *domain.ArbTransaction) int64 { return r.ID }, afterID, limit), nil
}

// FetchBTSTransactions returns seeded btstransaction rows above afterID.
func (s *RawStore) FetchBTSTransactions(_ context.Context, afterID int64, limit int) ([]*domain.BTSTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return page(s.BTSTransactions, func(r *domain.BTSTransaction) int64 { return r.ID }, afterID, limit), nil
}
