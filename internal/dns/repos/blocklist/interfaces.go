// Package blocklist implements the suffix-match blocklist (C5): a
// case-normalized set of domain suffixes with hierarchical lookup,
// accelerated by a decision cache and a Bloom filter in front of the
// authoritative store.
package blocklist

import "github.com/mohe22/ads-blocker/internal/dns/domain"

// BloomSizer computes Bloom filter parameters from capacity (n) and target
// false-positive rate (p). It returns m (number of bits) and k (number of
// hash functions).
type BloomSizer interface {
	Size(n uint64, p float64) (m uint64, k uint8)
}

// BloomFilter is the minimal interface the repository needs from Bloom
// filters. Add and MightContain must be safe for concurrent use; Clear
// discards all state.
type BloomFilter interface {
	Add(key []byte)
	MightContain(key []byte) bool
	Clear()
}

// BloomFactory constructs a BloomFilter sized for capacity and fpRate.
type BloomFactory interface {
	New(capacity uint64, fpRate float64) BloomFilter
}

// DecisionCache caches block decisions by canonical name with basic metrics.
type DecisionCache interface {
	Get(name string) (domain.BlockDecision, bool)
	Put(name string, d domain.BlockDecision)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}

// StoreStats captures high-level counts and metadata for the persistent store.
type StoreStats struct {
	Count       uint64
	Version     uint64
	UpdatedUnix int64
}

// Store abstracts the authoritative rule index. Exists reports the rule
// registered for name, if any. It is queried by the repository at each
// level of the hierarchical strip, so it itself never walks parent
// labels. Load replaces the entire contents of the store atomically from
// rules.
type Store interface {
	Exists(name string) (domain.BlockRule, bool, error)
	Load(rules []domain.BlockRule, version uint64, updatedUnix int64) error
	Stats() StoreStats
	Close() error
}

// RepoStats exposes repository-level counters and underlying store stats.
type RepoStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Store     StoreStats
}

// Repository is the composition layer that wires cache -> bloom -> store to
// answer C5's Match contract efficiently.
type Repository interface {
	// Match reports whether name (or any of its parent domains, checked by
	// progressive left-label stripping) is present in the blocklist.
	Match(name string) bool
	// Load replaces the blocklist contents from rules and resets the cache
	// and Bloom filter accordingly.
	Load(rules []domain.BlockRule, version uint64, updatedUnix int64) error
	RepoStats() RepoStats
}
