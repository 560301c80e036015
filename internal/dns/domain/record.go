package domain

// ResourceRecord represents a single DNS resource record. RData is retained
// as an opaque byte string: the codec never interprets or rewrites names
// embedded within it (see wire package doc comment).
//
// Unlike Question, an empty (root) Name is legal here: an EDNS(0) OPT
// pseudo-record always carries the root name, and this proxy must be able
// to parse and forward it.
type ResourceRecord struct {
	Name  string
	Type  RRType
	Class RRClass
	TTL   uint32
	RData []byte
}

// NewResourceRecord constructs a ResourceRecord and validates its fields.
func NewResourceRecord(name string, t RRType, c RRClass, ttl uint32, rdata []byte) (ResourceRecord, error) {
	rr := ResourceRecord{Name: name, Type: t, Class: c, TTL: ttl, RData: rdata}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate exists to satisfy the constructor pattern used across the domain
// package. ResourceRecord has no field that a well-formed wire record can
// ever violate: an empty Name is the root name (legal, e.g. OPT records),
// and Type/Class/TTL/RData are unconstrained integers and byte strings.
func (rr ResourceRecord) Validate() error {
	return nil
}
