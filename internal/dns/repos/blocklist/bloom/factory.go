package bloom

import (
	bitsbloom "github.com/bits-and-blooms/bloom/v3"
	"github.com/mohe22/ads-blocker/internal/dns/repos/blocklist"
)

// factory implements blocklist.BloomFactory using the sizing formulas in sizer.go.
type factory struct{}

// NewFactory returns a BloomFactory that sizes filters from capacity and FP rate.
func NewFactory() blocklist.BloomFactory { return factory{} }

func (factory) New(capacity uint64, fpRate float64) blocklist.BloomFilter {
	m, k := size(capacity, fpRate)
	return &filter{bf: bitsbloom.New(uint(m), uint(k))}
}
