package wire

import (
	"encoding/binary"

	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
	"github.com/mohe22/ads-blocker/internal/dns/domain"
)

const headerSize = 12

const (
	flagQR    = 1 << 15
	flagAA    = 1 << 10
	flagTC    = 1 << 9
	flagRD    = 1 << 8
	flagRA    = 1 << 7
	flagZ     = 1 << 6
	flagAD    = 1 << 5
	flagCD    = 1 << 4
	opcodeMask = 0x0F
	rcodeMask  = 0x0F
)

// DecodeHeader decodes the fixed 12-byte DNS header from the start of buf.
// buf may be longer than 12 bytes; only the first 12 are consulted.
func DecodeHeader(buf []byte) (domain.Header, error) {
	if len(buf) < headerSize {
		return domain.Header{}, dnserr.New(dnserr.TooShort, "header: buffer under 12 bytes")
	}

	id := binary.BigEndian.Uint16(buf[0:2])
	flags := binary.BigEndian.Uint16(buf[2:4])

	h := domain.Header{
		ID:      id,
		QR:      flags&flagQR != 0,
		Opcode:  domain.Opcode((flags >> 11) & opcodeMask),
		AA:      flags&flagAA != 0,
		TC:      flags&flagTC != 0,
		RD:      flags&flagRD != 0,
		RA:      flags&flagRA != 0,
		AD:      flags&flagAD != 0,
		CD:      flags&flagCD != 0,
		RCode:   domain.RCode(flags & rcodeMask),
		QDCount: binary.BigEndian.Uint16(buf[4:6]),
		ANCount: binary.BigEndian.Uint16(buf[6:8]),
		NSCount: binary.BigEndian.Uint16(buf[8:10]),
		ARCount: binary.BigEndian.Uint16(buf[10:12]),
	}

	if flags&flagZ != 0 {
		return domain.Header{}, dnserr.New(dnserr.Truncated, "header: reserved Z bit set")
	}
	if !h.Opcode.IsRecognized() {
		return domain.Header{}, dnserr.New(dnserr.BadOpcode, "header: unrecognized opcode")
	}
	if h.IsQuery() {
		if h.AA || h.RA {
			return domain.Header{}, dnserr.New(dnserr.Truncated, "header: query carries AA or RA")
		}
		if h.QDCount == 0 || h.QDCount > 1 {
			return domain.Header{}, dnserr.New(dnserr.BadQdcount, "header: qdcount must be exactly 1 for a query")
		}
	}
	if h.ANCount > maxSectionCap || h.NSCount > maxSectionCap || h.ARCount > maxSectionCap {
		return domain.Header{}, dnserr.New(dnserr.Truncated, "header: section count exceeds defensive cap")
	}

	return h, nil
}

// EncodeHeader writes the header's 12-byte wire representation. Unlike
// decode, encode cannot fail in isolation: it is the caller's
// responsibility (see EncodeMessage) to synchronize the section counts from
// the actual section lengths before calling this.
func EncodeHeader(h domain.Header) []byte {
	var flags uint16
	if h.QR {
		flags |= flagQR
	}
	flags |= uint16(h.Opcode&0x0F) << 11
	if h.AA {
		flags |= flagAA
	}
	if h.TC {
		flags |= flagTC
	}
	if h.RD {
		flags |= flagRD
	}
	if h.RA {
		flags |= flagRA
	}
	if h.AD {
		flags |= flagAD
	}
	if h.CD {
		flags |= flagCD
	}
	flags |= uint16(h.RCode) & rcodeMask

	buf := make([]byte, headerSize)
	binary.BigEndian.PutUint16(buf[0:2], h.ID)
	binary.BigEndian.PutUint16(buf[2:4], flags)
	binary.BigEndian.PutUint16(buf[4:6], h.QDCount)
	binary.BigEndian.PutUint16(buf[6:8], h.ANCount)
	binary.BigEndian.PutUint16(buf[8:10], h.NSCount)
	binary.BigEndian.PutUint16(buf[10:12], h.ARCount)
	return buf
}
