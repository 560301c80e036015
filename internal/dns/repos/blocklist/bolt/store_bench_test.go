package bolt

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/mohe22/ads-blocker/internal/dns/domain"
	"github.com/mohe22/ads-blocker/internal/dns/repos/blocklist"
)

func benchMakeRules(n int, suffix string) []domain.BlockRule {
	out := make([]domain.BlockRule, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.BlockRule{
			Name:    fmt.Sprintf("d%04d.%s", i, suffix),
			Source:  "bench",
			AddedAt: time.Unix(1, 0),
		})
	}
	return out
}

func benchBuildStore(b *testing.B, rules []domain.BlockRule) (func(), blocklist.Store) {
	b.Helper()
	path := filepath.Join(b.TempDir(), "bl.db")
	store, err := New(path)
	if err != nil {
		b.Fatalf("bolt.New: %v", err)
	}
	if err := store.Load(rules, 1, time.Now().Unix()); err != nil {
		b.Fatalf("Load: %v", err)
	}
	return func() { _ = store.Close() }, store
}

func BenchmarkBoltStore_Exists_Positive(b *testing.B) {
	rules := benchMakeRules(1000, "example.bench")
	closeFn, st := benchBuildStore(b, rules)
	b.Cleanup(closeFn)
	queries := make([]string, len(rules))
	for i := range rules {
		queries[i] = rules[i].Name
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = st.Exists(queries[i%len(queries)])
	}
}

func BenchmarkBoltStore_Exists_Negative(b *testing.B) {
	rules := benchMakeRules(1000, "present.bench")
	closeFn, st := benchBuildStore(b, rules)
	b.Cleanup(closeFn)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = st.Exists("absent.present.bench")
	}
}

func BenchmarkBoltStore_Exists_ApexOfSuffixRule(b *testing.B) {
	rules := append(benchMakeRules(500, "data.bench"), domain.BlockRule{
		Name:    "example.org",
		Source:  "bench",
		AddedAt: time.Unix(1, 0),
	})
	closeFn, st := benchBuildStore(b, rules)
	b.Cleanup(closeFn)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = st.Exists("example.org")
	}
}
