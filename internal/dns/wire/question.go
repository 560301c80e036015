package wire

import (
	"encoding/binary"

	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
	"github.com/mohe22/ads-blocker/internal/dns/domain"
)

// DecodeQuestion decodes a single question entry starting at cursor and
// returns it alongside the cursor position immediately following it.
func DecodeQuestion(buf []byte, cursor int) (domain.Question, int, error) {
	name, cursor, err := DecodeName(buf, cursor)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if cursor+4 > len(buf) {
		return domain.Question{}, 0, dnserr.New(dnserr.Truncated, "question: truncated type/class")
	}
	qtype := domain.RRType(binary.BigEndian.Uint16(buf[cursor : cursor+2]))
	qclass := domain.RRClass(binary.BigEndian.Uint16(buf[cursor+2 : cursor+4]))
	cursor += 4

	q, err := domain.NewQuestion(name, qtype, qclass)
	if err != nil {
		return domain.Question{}, 0, dnserr.Wrap(dnserr.BadLabel, "question: invalid", err)
	}
	return q, cursor, nil
}

// EncodeQuestion appends the wire encoding of q to buf.
func EncodeQuestion(buf []byte, q domain.Question, table CompressionTable) ([]byte, error) {
	buf, err := EncodeName(buf, q.Name, table)
	if err != nil {
		return nil, err
	}
	var tail [4]byte
	binary.BigEndian.PutUint16(tail[0:2], uint16(q.Type))
	binary.BigEndian.PutUint16(tail[2:4], uint16(q.Class))
	return append(buf, tail[:]...), nil
}
