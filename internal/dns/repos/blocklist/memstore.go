package blocklist

import (
	"sync"

	"github.com/mohe22/ads-blocker/internal/dns/domain"
)

// memStore is the default in-memory Store: a single map keyed by
// canonical name, the direct analogue of the original server's flat
// std::unordered_set<string> blocklist_.
type memStore struct {
	mu      sync.RWMutex
	rules   map[string]domain.BlockRule
	version uint64
	updated int64
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() Store {
	return &memStore{rules: make(map[string]domain.BlockRule)}
}

func (s *memStore) Exists(name string) (domain.BlockRule, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[name]
	return r, ok, nil
}

func (s *memStore) Load(rules []domain.BlockRule, version uint64, updatedUnix int64) error {
	m := make(map[string]domain.BlockRule, len(rules))
	for _, r := range rules {
		m[r.Name] = r
	}
	s.mu.Lock()
	s.rules = m
	s.version = version
	s.updated = updatedUnix
	s.mu.Unlock()
	return nil
}

func (s *memStore) Stats() StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StoreStats{
		Count:       uint64(len(s.rules)),
		Version:     s.version,
		UpdatedUnix: s.updated,
	}
}

func (s *memStore) Close() error { return nil }
