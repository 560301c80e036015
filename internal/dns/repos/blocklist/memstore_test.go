package blocklist

import (
	"testing"
	"time"

	"github.com/mohe22/ads-blocker/internal/dns/domain"
)

func TestMemStore_Exists(t *testing.T) {
	s := NewMemStore()
	now := time.Now()
	rules := []domain.BlockRule{
		{Name: "a.example.com", Source: "t", AddedAt: now},
		{Name: "example.net", Source: "t", AddedAt: now},
	}
	if err := s.Load(rules, 3, now.Unix()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if r, ok, err := s.Exists("a.example.com"); err != nil || !ok || r.Name != "a.example.com" {
		t.Fatalf("lookup unexpected: r=%+v ok=%v err=%v", r, ok, err)
	}
	if r, ok, err := s.Exists("example.net"); err != nil || !ok || r.Name != "example.net" {
		t.Fatalf("lookup unexpected: r=%+v ok=%v err=%v", r, ok, err)
	}
	if _, ok, _ := s.Exists("sub.a.example.com"); ok {
		t.Fatalf("Exists must not itself walk parent labels")
	}

	stats := s.Stats()
	if stats.Count != 2 || stats.Version != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestMemStore_LoadReplacesPriorContents(t *testing.T) {
	s := NewMemStore()
	now := time.Now()
	if err := s.Load([]domain.BlockRule{{Name: "old.example", Source: "t", AddedAt: now}}, 1, now.Unix()); err != nil {
		t.Fatalf("Load 1: %v", err)
	}
	if err := s.Load([]domain.BlockRule{{Name: "new.example", Source: "t", AddedAt: now}}, 2, now.Unix()); err != nil {
		t.Fatalf("Load 2: %v", err)
	}
	if _, ok, _ := s.Exists("old.example"); ok {
		t.Fatalf("expected old.example to be gone after reload")
	}
	if _, ok, _ := s.Exists("new.example"); !ok {
		t.Fatalf("expected new.example present")
	}
}

func TestMemStore_Close(t *testing.T) {
	s := NewMemStore()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
