package domain

import "fmt"

// RRType represents a DNS resource record type (e.g. A, AAAA, MX).
// See IANA DNS Parameters for assigned codes. The wire codec preserves
// unknown numeric values round-trip; it never rejects a well-formed
// question or record because its type is unrecognized.
type RRType uint16

// DNS Resource Record Type constants used by the query handler and tests.
// This is not an exhaustive IANA list: the codec accepts any uint16 value,
// these are simply the ones the rest of the system names directly.
const (
	RRTypeA     RRType = 1
	RRTypeNS    RRType = 2
	RRTypeCNAME RRType = 5
	RRTypeSOA   RRType = 6
	RRTypePTR   RRType = 12
	RRTypeMX    RRType = 15
	RRTypeTXT   RRType = 16
	RRTypeAAAA  RRType = 28
	RRTypeSRV   RRType = 33
	RRTypeOPT   RRType = 41
	RRTypeSVCB  RRType = 64
	RRTypeHTTPS RRType = 65
	RRTypeANY   RRType = 255
	RRTypeCAA   RRType = 257
)

// String returns the textual representation of the RRType, or
// "UNKNOWN(<value>)" for numeric values with no assigned mnemonic here.
func (t RRType) String() string {
	switch t {
	case RRTypeA:
		return "A"
	case RRTypeNS:
		return "NS"
	case RRTypeCNAME:
		return "CNAME"
	case RRTypeSOA:
		return "SOA"
	case RRTypePTR:
		return "PTR"
	case RRTypeMX:
		return "MX"
	case RRTypeTXT:
		return "TXT"
	case RRTypeAAAA:
		return "AAAA"
	case RRTypeSRV:
		return "SRV"
	case RRTypeOPT:
		return "OPT"
	case RRTypeSVCB:
		return "SVCB"
	case RRTypeHTTPS:
		return "HTTPS"
	case RRTypeANY:
		return "ANY"
	case RRTypeCAA:
		return "CAA"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
	}
}
