package wire

import (
	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
	"github.com/mohe22/ads-blocker/internal/dns/domain"
)

// ParseMessage decodes a complete DNS message from a received UDP datagram.
// Section counts in the header are treated as untrusted hints bounded by
// maxSectionCap in DecodeHeader; parsing stops as soon as any section entry
// fails to decode, surfacing that entry's error.
func ParseMessage(buf []byte) (domain.Message, error) {
	if len(buf) > maxDatagram {
		return domain.Message{}, dnserr.New(dnserr.Truncated, "message: datagram exceeds 4096 bytes")
	}

	h, err := DecodeHeader(buf)
	if err != nil {
		return domain.Message{}, err
	}

	cursor := headerSize
	msg := domain.Message{Header: h}

	msg.Questions = make([]domain.Question, 0, h.QDCount)
	for i := uint16(0); i < h.QDCount; i++ {
		q, next, err := DecodeQuestion(buf, cursor)
		if err != nil {
			return domain.Message{}, err
		}
		msg.Questions = append(msg.Questions, q)
		cursor = next
	}

	msg.Answers, cursor, err = decodeRecords(buf, cursor, h.ANCount)
	if err != nil {
		return domain.Message{}, err
	}
	msg.Authority, cursor, err = decodeRecords(buf, cursor, h.NSCount)
	if err != nil {
		return domain.Message{}, err
	}
	msg.Additional, _, err = decodeRecords(buf, cursor, h.ARCount)
	if err != nil {
		return domain.Message{}, err
	}

	return msg, nil
}

func decodeRecords(buf []byte, cursor int, count uint16) ([]domain.ResourceRecord, int, error) {
	records := make([]domain.ResourceRecord, 0, count)
	for i := uint16(0); i < count; i++ {
		rr, next, err := DecodeRecord(buf, cursor)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rr)
		cursor = next
	}
	return records, cursor, nil
}

// EncodeMessage renders msg to its wire form using a single compression
// table shared across all four sections, per RFC 1035 §4.1.4. The header's
// section counts are synchronized from the slice lengths before encoding,
// overriding whatever the caller set on msg.Header. The result is rejected
// with OVERFLOW if it would exceed the 4096-byte UDP datagram budget.
func EncodeMessage(msg domain.Message) ([]byte, error) {
	if len(msg.Questions) > 0xFFFF || len(msg.Answers) > 0xFFFF ||
		len(msg.Authority) > 0xFFFF || len(msg.Additional) > 0xFFFF {
		return nil, dnserr.New(dnserr.Overflow, "message: section length exceeds uint16 range")
	}

	h := msg.Header
	h.QDCount = uint16(len(msg.Questions))
	h.ANCount = uint16(len(msg.Answers))
	h.NSCount = uint16(len(msg.Authority))
	h.ARCount = uint16(len(msg.Additional))

	buf := EncodeHeader(h)
	table := make(CompressionTable)

	var err error
	for _, q := range msg.Questions {
		buf, err = EncodeQuestion(buf, q, table)
		if err != nil {
			return nil, err
		}
	}
	for _, sections := range [][]domain.ResourceRecord{msg.Answers, msg.Authority, msg.Additional} {
		for _, rr := range sections {
			buf, err = EncodeRecord(buf, rr, table)
			if err != nil {
				return nil, err
			}
		}
	}

	if len(buf) > maxDatagram {
		return nil, dnserr.New(dnserr.Overflow, "message: encoded message exceeds 4096 bytes")
	}
	return buf, nil
}
