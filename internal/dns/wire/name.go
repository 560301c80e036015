package wire

import (
	"strings"

	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
)

// CompressionTable maps a name's remaining dot-separated suffix to the byte
// offset within the current encode call's output buffer at which that
// suffix was first written. Its lifetime is a single EncodeMessage call; a
// nil table disables compression entirely.
type CompressionTable map[string]int

// DecodeName decodes a dot-separated domain name starting at cursor within
// buf, per RFC 1035 §4.1.4. It returns the decoded name and the cursor
// position immediately following the name as observed at the caller's
// original position: after the terminating zero byte for an uncompressed
// name, or after the two-byte pointer for a name that begins with one.
//
// A single zero byte at cursor decodes to the empty string and advances the
// cursor by one.
func DecodeName(buf []byte, cursor int) (string, int, error) {
	var b strings.Builder
	p := cursor
	jumped := false
	hops := 0
	next := cursor

	for {
		if p >= len(buf) {
			return "", 0, dnserr.New(dnserr.Truncated, "name: truncated before length byte")
		}
		length := buf[p]

		if length == 0 {
			if !jumped {
				next = p + 1
			}
			return b.String(), next, nil
		}

		if length&0xC0 == 0xC0 {
			if p+1 >= len(buf) {
				return "", 0, dnserr.New(dnserr.PtrOob, "name: pointer second byte out of bounds")
			}
			target := (int(length&0x3F) << 8) | int(buf[p+1])
			if target >= len(buf) {
				return "", 0, dnserr.New(dnserr.PtrOob, "name: pointer target out of bounds")
			}
			if !jumped {
				next = p + 2
			}
			jumped = true
			p = target
			hops++
			if hops > maxHops {
				return "", 0, dnserr.New(dnserr.PtrLoop, "name: exceeded 20 compression hops")
			}
			continue
		}

		if length > maxLabelLength {
			return "", 0, dnserr.New(dnserr.BadLabel, "name: label exceeds 63 bytes")
		}
		if p+1+int(length) > len(buf) {
			return "", 0, dnserr.New(dnserr.Truncated, "name: truncated label body")
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.Write(buf[p+1 : p+1+int(length)])
		p += 1 + int(length)
		if b.Len() > maxNameLength {
			return "", 0, dnserr.New(dnserr.NameTooLong, "name: decoded name exceeds 255 bytes")
		}
	}
}

// EncodeName appends the wire encoding of name to buf and returns the
// extended buffer. When table is non-nil, any suffix of name already
// present in the table is replaced by a two-byte compression pointer; every
// suffix not yet seen is registered against the buffer's current absolute
// length before its label is written, so a later occurrence of the same
// suffix anywhere in the message compresses against it.
func EncodeName(buf []byte, name string, table CompressionTable) ([]byte, error) {
	if name == "" {
		return append(buf, 0), nil
	}

	remaining := name
	encodedLen := 0
	for {
		if table != nil {
			if offset, ok := table[remaining]; ok {
				ptr := uint16(0xC000) | uint16(offset)
				return append(buf, byte(ptr>>8), byte(ptr)), nil
			}
			table[remaining] = len(buf)
		}

		label := remaining
		dot := strings.IndexByte(remaining, '.')
		if dot >= 0 {
			label = remaining[:dot]
		}
		if len(label) == 0 || len(label) > maxLabelLength {
			return nil, dnserr.New(dnserr.LabelTooLong, "name: label length invalid")
		}

		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
		encodedLen += 1 + len(label)
		if encodedLen > maxNameLength {
			return nil, dnserr.New(dnserr.EncodeNameTooLong, "name: encoded name exceeds 255 bytes")
		}

		if dot < 0 {
			return append(buf, 0), nil
		}
		remaining = remaining[dot+1:]
	}
}
