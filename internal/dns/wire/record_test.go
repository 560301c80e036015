package wire

import (
	"strings"
	"testing"

	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
	"github.com/mohe22/ads-blocker/internal/dns/domain"
)

func TestRecord_RoundTrip(t *testing.T) {
	rr := domain.ResourceRecord{
		Name:  "example.com",
		Type:  domain.RRTypeA,
		Class: domain.RRClassIN,
		TTL:   300,
		RData: []byte{192, 0, 2, 1},
	}
	buf, err := EncodeRecord(nil, rr, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, next, err := DecodeRecord(buf, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != rr.Name || got.Type != rr.Type || got.Class != rr.Class || got.TTL != rr.TTL || string(got.RData) != string(rr.RData) {
		t.Fatalf("got %+v, want %+v", got, rr)
	}
	if next != len(buf) {
		t.Fatalf("next = %d, want %d", next, len(buf))
	}
}

func TestRecord_EmptyRDataRoundTrip(t *testing.T) {
	rr := domain.ResourceRecord{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 0, RData: nil}
	buf, err := EncodeRecord(nil, rr, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _, err := DecodeRecord(buf, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.RData) != 0 {
		t.Fatalf("RData = %v, want empty", got.RData)
	}
}

func TestEncodeRecord_RDataOverflow(t *testing.T) {
	rr := domain.ResourceRecord{
		Name:  "example.com",
		Type:  domain.RRTypeTXT,
		Class: domain.RRClassIN,
		RData: []byte(strings.Repeat("a", 0x10000)),
	}
	_, err := EncodeRecord(nil, rr, nil)
	if !dnserr.Is(err, dnserr.Overflow) {
		t.Fatalf("expected OVERFLOW, got %v", err)
	}
}

func TestDecodeRecord_TruncatedFixedFields(t *testing.T) {
	buf := encodeRawName(t, "example", "com")
	buf = append(buf, 0x00, 0x01, 0x00, 0x01) // only 4 of the required 10 fixed bytes
	_, _, err := DecodeRecord(buf, 0)
	if !dnserr.Is(err, dnserr.Truncated) {
		t.Fatalf("expected TRUNCATED, got %v", err)
	}
}

func TestDecodeRecord_TruncatedRData(t *testing.T) {
	buf := encodeRawName(t, "example", "com")
	buf = append(buf, 0x00, 0x01, 0x00, 0x01, 0, 0, 0, 60, 0x00, 0x10) // rdlength=16, but no rdata follows
	_, _, err := DecodeRecord(buf, 0)
	if !dnserr.Is(err, dnserr.Truncated) {
		t.Fatalf("expected TRUNCATED, got %v", err)
	}
}

func TestRecord_CompressionSharedWithQuestion(t *testing.T) {
	table := make(CompressionTable)
	q := domain.Question{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}
	buf, err := EncodeQuestion(nil, q, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	beforeRecord := len(buf)

	rr := domain.ResourceRecord{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 60, RData: []byte{1, 2, 3, 4}}
	buf, err = EncodeRecord(buf, rr, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A compressed name is 2 bytes; the record's remaining fixed+rdata fields are 10+4 bytes.
	if len(buf) != beforeRecord+2+10+4 {
		t.Fatalf("len(buf) = %d, want %d", len(buf), beforeRecord+2+10+4)
	}

	got, _, err := DecodeRecord(buf, beforeRecord)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.Name != "example.com" {
		t.Fatalf("Name = %q, want example.com", got.Name)
	}
}
