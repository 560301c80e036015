package blocklist

import (
	"strings"
	"sync"

	"github.com/mohe22/ads-blocker/internal/dns/common/utils"
	"github.com/mohe22/ads-blocker/internal/dns/domain"
)

// repository implements Repository by composing a Store, a Bloom filter
// (rebuilt on every Load via factory), and a DecisionCache. Match consults
// the cache once for the normalized name and, on a miss, applies the
// bloom -> store check to each candidate as it walks the hierarchical strip.
type repository struct {
	mu      sync.RWMutex
	store   Store
	cache   DecisionCache
	bloom   BloomFilter
	factory BloomFactory
	fpRate  float64
}

// NewRepository constructs a Repository. fpRate is the target
// false-positive rate for the Bloom filter rebuilt on each Load.
func NewRepository(store Store, cache DecisionCache, factory BloomFactory, fpRate float64) Repository {
	return &repository{store: store, cache: cache, factory: factory, fpRate: fpRate}
}

// Match implements C5's contract: normalize the input, then repeatedly
// test the current string against the blocklist, stripping the leftmost
// label on a miss, until a match is found or no dot remains.
func (r *repository) Match(name string) bool {
	original := utils.CanonicalDNSName(name)
	if original == "" {
		return false
	}

	if d, ok := r.checkCache(original); ok {
		return d.IsBlocked()
	}

	dec := r.walk(original)
	r.updateCache(original, dec)
	return dec.IsBlocked()
}

// walk performs the actual hierarchical strip, consulting the Bloom filter
// as a cheap negative pre-check before each store lookup: it tests name,
// then its parent, and so on until a rule matches or no label remains.
func (r *repository) walk(original string) domain.BlockDecision {
	current := original
	for {
		if r.mightContain(current) {
			if rule, ok, err := r.store.Exists(current); err == nil && ok {
				return blockedFrom(rule)
			}
		}

		idx := strings.IndexByte(current, '.')
		if idx < 0 {
			return domain.EmptyDecision()
		}
		current = current[idx+1:]
	}
}

func (r *repository) mightContain(candidate string) bool {
	r.mu.RLock()
	bf := r.bloom
	r.mu.RUnlock()
	if bf == nil {
		return true // no bloom loaded yet: fall through to the authoritative store
	}
	return bf.MightContain([]byte(candidate))
}

func (r *repository) checkCache(name string) (domain.BlockDecision, bool) {
	r.mu.RLock()
	d, ok := r.cache.Get(name)
	r.mu.RUnlock()
	return d, ok
}

func (r *repository) updateCache(name string, d domain.BlockDecision) {
	r.mu.Lock()
	r.cache.Put(name, d)
	r.mu.Unlock()
}

// Load rebuilds the store, a freshly sized Bloom filter, and purges the
// decision cache, atomically with respect to concurrent Match calls.
func (r *repository) Load(rules []domain.BlockRule, version uint64, updatedUnix int64) error {
	if err := r.store.Load(rules, version, updatedUnix); err != nil {
		return err
	}

	bf := r.factory.New(uint64(len(rules)), r.fpRate)
	for _, rule := range rules {
		bf.Add([]byte(rule.Name))
	}

	r.mu.Lock()
	r.bloom = bf
	r.cache.Purge()
	r.mu.Unlock()
	return nil
}

func (r *repository) RepoStats() RepoStats {
	hits, misses, evictions := r.cache.Stats()
	return RepoStats{
		Hits:      hits,
		Misses:    misses,
		Evictions: evictions,
		Store:     r.store.Stats(),
	}
}

func blockedFrom(rule domain.BlockRule) domain.BlockDecision {
	return domain.BlockDecision{
		Blocked:     true,
		MatchedRule: rule.Name,
		Source:      rule.Source,
	}
}

var _ Repository = (*repository)(nil)
