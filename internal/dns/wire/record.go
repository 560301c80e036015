package wire

import (
	"encoding/binary"

	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
	"github.com/mohe22/ads-blocker/internal/dns/domain"
)

// DecodeRecord decodes a single resource record starting at cursor and
// returns it alongside the cursor position immediately following it. RData
// is copied out of buf; the codec never inspects its contents.
func DecodeRecord(buf []byte, cursor int) (domain.ResourceRecord, int, error) {
	name, cursor, err := DecodeName(buf, cursor)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	if cursor+10 > len(buf) {
		return domain.ResourceRecord{}, 0, dnserr.New(dnserr.Truncated, "record: truncated fixed fields")
	}
	rtype := domain.RRType(binary.BigEndian.Uint16(buf[cursor : cursor+2]))
	rclass := domain.RRClass(binary.BigEndian.Uint16(buf[cursor+2 : cursor+4]))
	ttl := binary.BigEndian.Uint32(buf[cursor+4 : cursor+8])
	rdlength := binary.BigEndian.Uint16(buf[cursor+8 : cursor+10])
	cursor += 10

	if cursor+int(rdlength) > len(buf) {
		return domain.ResourceRecord{}, 0, dnserr.New(dnserr.Truncated, "record: truncated rdata")
	}
	rdata := make([]byte, rdlength)
	copy(rdata, buf[cursor:cursor+int(rdlength)])
	cursor += int(rdlength)

	rr, err := domain.NewResourceRecord(name, rtype, rclass, ttl, rdata)
	if err != nil {
		return domain.ResourceRecord{}, 0, dnserr.Wrap(dnserr.BadLabel, "record: invalid", err)
	}
	return rr, cursor, nil
}

// EncodeRecord appends the wire encoding of rr to buf.
func EncodeRecord(buf []byte, rr domain.ResourceRecord, table CompressionTable) ([]byte, error) {
	buf, err := EncodeName(buf, rr.Name, table)
	if err != nil {
		return nil, err
	}
	if len(rr.RData) > 0xFFFF {
		return nil, dnserr.New(dnserr.Overflow, "record: rdata exceeds 65535 bytes")
	}

	var fixed [10]byte
	binary.BigEndian.PutUint16(fixed[0:2], uint16(rr.Type))
	binary.BigEndian.PutUint16(fixed[2:4], uint16(rr.Class))
	binary.BigEndian.PutUint32(fixed[4:8], rr.TTL)
	binary.BigEndian.PutUint16(fixed[8:10], uint16(len(rr.RData)))

	buf = append(buf, fixed[:]...)
	buf = append(buf, rr.RData...)
	return buf, nil
}
