package wire

import (
	"testing"

	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
	"github.com/mohe22/ads-blocker/internal/dns/domain"
)

func TestHeader_RoundTrip(t *testing.T) {
	h := domain.Header{
		ID:      0x1234,
		QR:      false,
		Opcode:  domain.OpcodeQuery,
		RD:      true,
		QDCount: 1,
	}
	buf := EncodeHeader(h)
	got, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != h {
		t.Fatalf("got %+v, want %+v", got, h)
	}
}

func TestHeader_ResponseFlags(t *testing.T) {
	h := domain.Header{
		ID:      1,
		QR:      true,
		Opcode:  domain.OpcodeQuery,
		AA:      true,
		TC:      false,
		RD:      true,
		RA:      true,
		AD:      true,
		CD:      true,
		RCode:   domain.RCodeNXDomain,
		QDCount: 1,
		ANCount: 2,
	}
	buf := EncodeHeader(h)
	got, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != h {
		t.Fatalf("got %+v, want %+v", got, h)
	}
}

func TestDecodeHeader_TooShort(t *testing.T) {
	_, err := DecodeHeader(make([]byte, 11))
	if !dnserr.Is(err, dnserr.TooShort) {
		t.Fatalf("expected TOO_SHORT, got %v", err)
	}
}

func TestDecodeHeader_ReservedZBitRejected(t *testing.T) {
	h := domain.Header{QDCount: 1}
	buf := EncodeHeader(h)
	buf[3] |= 0x40 // set the Z bit (bit 6 of the flags word, low byte)
	_, err := DecodeHeader(buf)
	if !dnserr.Is(err, dnserr.Truncated) {
		t.Fatalf("expected TRUNCATED for reserved Z bit, got %v", err)
	}
}

func TestDecodeHeader_UnrecognizedOpcode(t *testing.T) {
	buf := EncodeHeader(domain.Header{QDCount: 1})
	// Opcode occupies bits 11-14 of the flags word; 3 and 7-15 are unassigned.
	buf[2] = (buf[2] &^ 0x78) | (3 << 3)
	_, err := DecodeHeader(buf)
	if !dnserr.Is(err, dnserr.BadOpcode) {
		t.Fatalf("expected BAD_OPCODE, got %v", err)
	}
}

func TestDecodeHeader_QueryWithAASet(t *testing.T) {
	buf := EncodeHeader(domain.Header{QDCount: 1, AA: true})
	_, err := DecodeHeader(buf)
	if !dnserr.Is(err, dnserr.Truncated) {
		t.Fatalf("expected TRUNCATED for query carrying AA, got %v", err)
	}
}

func TestDecodeHeader_QueryWithBadQdcount(t *testing.T) {
	cases := []uint16{0, 2}
	for _, qd := range cases {
		buf := EncodeHeader(domain.Header{QDCount: qd})
		_, err := DecodeHeader(buf)
		if !dnserr.Is(err, dnserr.BadQdcount) {
			t.Fatalf("qdcount=%d: expected BAD_QDCOUNT, got %v", qd, err)
		}
	}
}

func TestDecodeHeader_SectionCapExceeded(t *testing.T) {
	buf := EncodeHeader(domain.Header{QR: true, QDCount: 1, ANCount: 501})
	_, err := DecodeHeader(buf)
	if !dnserr.Is(err, dnserr.Truncated) {
		t.Fatalf("expected TRUNCATED for oversized ANCount, got %v", err)
	}
}

func TestDecodeHeader_ResponseAllowsZeroQdcount(t *testing.T) {
	buf := EncodeHeader(domain.Header{QR: true, QDCount: 0})
	if _, err := DecodeHeader(buf); err != nil {
		t.Fatalf("unexpected error for response with qdcount=0: %v", err)
	}
}
