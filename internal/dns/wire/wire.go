// Package wire implements bit-exact encoding and decoding of DNS messages
// per RFC 1035, including name compression, strict bounds checking, and the
// explicit numeric error taxonomy of dnserr. It does not interpret resource
// record rdata; embedded names inside rdata (CNAME, MX, NS, SOA, PTR) are
// decoded correctly by DecodeName using absolute buffer offsets, but this
// encoder never rewrites or compresses names it did not itself walk out of
// the name/question/record fields.
package wire

const (
	maxHops        = 20
	maxNameLength  = 255
	maxLabelLength = 63
	maxDatagram    = 4096
	maxSectionCap  = 500
)
