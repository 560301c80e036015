package domain

import "fmt"

// Opcode identifies the DNS query category carried in a header's OPCODE field.
type Opcode uint8

const (
	OpcodeQuery  Opcode = 0
	OpcodeIQuery Opcode = 1
	OpcodeStatus Opcode = 2
	OpcodeNotify Opcode = 4
	OpcodeUpdate Opcode = 5
	OpcodeDSO    Opcode = 6
)

// IsRecognized reports whether the opcode is one the header codec accepts.
// Recognized opcodes other than QUERY are decoded but not semantically
// handled by the query handler; see spec Non-goals.
func (o Opcode) IsRecognized() bool {
	switch o {
	case OpcodeQuery, OpcodeIQuery, OpcodeStatus, OpcodeNotify, OpcodeUpdate, OpcodeDSO:
		return true
	default:
		return false
	}
}

func (o Opcode) String() string {
	switch o {
	case OpcodeQuery:
		return "QUERY"
	case OpcodeIQuery:
		return "IQUERY"
	case OpcodeStatus:
		return "STATUS"
	case OpcodeNotify:
		return "NOTIFY"
	case OpcodeUpdate:
		return "UPDATE"
	case OpcodeDSO:
		return "DSO"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(o))
	}
}
