// Package dnserr defines the flat, numerically-stable error taxonomy shared
// by the wire codec, query handler, transport, and blocklist packages.
package dnserr

import (
	"errors"
	"fmt"
)

// Code is a stable numeric error identifier, kept interoperable with the
// original implementation's log output.
type Code uint8

const (
	// Parser errors.
	TooShort   Code = 10
	BadOpcode  Code = 11
	BadLabel   Code = 12
	NameTooLong Code = 13
	PtrLoop    Code = 14
	PtrOob     Code = 15
	Truncated  Code = 16
	BadQType   Code = 17
	BadQClass  Code = 18
	BadQdcount Code = 19

	// Encoder errors.
	EncodeNameTooLong Code = 20
	LabelTooLong      Code = 21
	Overflow          Code = 22

	// Server errors.
	SocketFail Code = 30
	BindFail   Code = 31
	RecvFail   Code = 32
	SendFail   Code = 33
	NotRunning Code = 34

	// Upstream errors.
	UpstreamTimeout     Code = 40
	UpstreamUnreachable Code = 41
	UpstreamServfail    Code = 43

	// Blocklist errors.
	BlockerFileNotFound Code = 60
	BlockerParseError   Code = 61
	BlockerEmpty        Code = 62
	InvalidIP           Code = 63
)

// String returns the short, log-friendly name of the code.
func (c Code) String() string {
	switch c {
	case TooShort:
		return "TOO_SHORT"
	case BadOpcode:
		return "BAD_OPCODE"
	case BadLabel:
		return "BAD_LABEL"
	case NameTooLong:
		return "NAME_TOO_LONG"
	case PtrLoop:
		return "PTR_LOOP"
	case PtrOob:
		return "PTR_OOB"
	case Truncated:
		return "TRUNCATED"
	case BadQType:
		return "BAD_QTYPE"
	case BadQClass:
		return "BAD_QCLASS"
	case BadQdcount:
		return "BAD_QDCOUNT"
	case EncodeNameTooLong:
		return "ENCODE_NAME_TOO_LONG"
	case LabelTooLong:
		return "LABEL_TOO_LONG"
	case Overflow:
		return "OVERFLOW"
	case SocketFail:
		return "SOCKET_FAIL"
	case BindFail:
		return "BIND_FAIL"
	case RecvFail:
		return "RECV_FAIL"
	case SendFail:
		return "SEND_FAIL"
	case NotRunning:
		return "NOT_RUNNING"
	case UpstreamTimeout:
		return "UPSTREAM_TIMEOUT"
	case UpstreamUnreachable:
		return "UPSTREAM_UNREACHABLE"
	case UpstreamServfail:
		return "UPSTREAM_SERVFAIL"
	case BlockerFileNotFound:
		return "BLOCKER_FILE_NOT_FOUND"
	case BlockerParseError:
		return "BLOCKER_PARSE_ERROR"
	case BlockerEmpty:
		return "BLOCKER_EMPTY"
	case InvalidIP:
		return "INVALID_IP"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(c))
	}
}

// Error is a typed error carrying one of the stable numeric codes above.
type Error struct {
	code Code
	msg  string
	err  error
}

// New constructs an *Error with no wrapped cause.
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Wrap constructs an *Error that wraps an underlying cause.
func Wrap(code Code, msg string, cause error) *Error {
	return &Error{code: code, msg: msg, err: cause}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s (%s): %v", e.msg, e.code, e.err)
	}
	return fmt.Sprintf("%s (%s)", e.msg, e.code)
}

// Code returns the stable numeric error code.
func (e *Error) Code() Code { return e.code }

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether err is a *dnserr.Error carrying the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.code == code
	}
	return false
}
