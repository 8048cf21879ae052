package store

import (
	"sort"
	"sync"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// InMemoryAnalysisStore keeps analysis results for the lifetime of the
// process. Results are small aside from the rendered document bytes, and the
// store is bounded by the session: there is no eviction.
type InMemoryAnalysisStore struct {
	mu      sync.RWMutex
	results map[string]*domain.VoucherAnalysisResult
}

// NewInMemoryAnalysisStore creates an empty store.
func NewInMemoryAnalysisStore() *InMemoryAnalysisStore {
	return &InMemoryAnalysisStore{
		results: make(map[string]*domain.VoucherAnalysisResult),
	}
}

// Save stores or replaces the result under the given key.
func (s *InMemoryAnalysisStore) Save(key string, result *domain.VoucherAnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[key] = result
}

// Load returns the result for the key, if present.
func (s *InMemoryAnalysisStore) Load(key string) (*domain.VoucherAnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[key]
	return result, ok
}

// Delete removes the result for the key. Deleting an absent key is a no-op.
func (s *InMemoryAnalysisStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, key)
}

// Keys returns all stored keys in sorted order.
func (s *InMemoryAnalysisStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.results))
	for k := range s.results {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
