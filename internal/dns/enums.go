// Package dns provides the wire-format codec for an authoritative DNS
// server: big-endian primitives, domain-name compression, per-type record
// bodies, and full message parsing/serialization (RFC 1035).
package dns

import "strings"

// DNS header flags and masks (RFC 1035 Section 4.1.1).
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA|      Z    |   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	 15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
//
// Z occupies bits 6-4 and must be zero on send; this server does not
// implement DNSSEC's AD/CD reuse of those bits.
const (
	QRFlag     uint16 = 0x8000 // Query/Response: 1 = response, 0 = query
	OpcodeMask uint16 = 0x7800 // Bits 14-11: operation type (use >> 11 to extract)
	AAFlag     uint16 = 0x0400 // Authoritative Answer
	TCFlag     uint16 = 0x0200 // Truncation: message was truncated
	RDFlag     uint16 = 0x0100 // Recursion Desired
	RAFlag     uint16 = 0x0080 // Recursion Available
	ZMask      uint16 = 0x0070 // Bits 6-4: reserved, must be zero on send
	RCodeMask  uint16 = 0x000F // Bits 3-0: response code
)

// RecordType is a tagged variant over the DNS wire type code. Only the
// types this server answers carry a name; everything else decodes to
// Other and is echoed back as an opaque blob.
type RecordType uint16

const (
	TypeA     RecordType = 1  // IPv4 address
	TypeCNAME RecordType = 5  // Canonical name (alias)
	TypeSOA   RecordType = 6  // Start of authority (decode-only, for round trip)
	TypePTR   RecordType = 12 // Domain name pointer (reverse DNS)
	TypeMX    RecordType = 15 // Mail exchange
	TypeTXT   RecordType = 16 // Text strings
)

// RecordClass represents DNS resource record classes (RFC 1035).
type RecordClass uint16

const (
	ClassIN RecordClass = 1 // Internet class
)

// RCode represents DNS response codes (RFC 1035 Section 4.1.1).
type RCode uint16

const (
	RCodeNoError  RCode = 0 // No error
	RCodeFormErr  RCode = 1 // Format error: query malformed
	RCodeServFail RCode = 2 // Server failure: internal error
	RCodeNXDomain RCode = 3 // Non-existent domain
	RCodeNotImp   RCode = 4 // Not implemented: unsupported query type
	RCodeRefused  RCode = 5 // Query refused by policy
)

// RCodeFromFlags extracts the response code from the DNS header flags.
// The RCODE occupies the low 4 bits of the flags field.
func RCodeFromFlags(flags uint16) RCode {
	return RCode(flags & RCodeMask)
}

// ParseRecordType recognizes a configured record-type string case-insensitively.
// Unknown spellings are reported to the caller via ok=false; the config
// loader treats that as a fatal error rather than silently falling back
// to Other.
func ParseRecordType(s string) (rt RecordType, ok bool) {
	switch strings.ToUpper(s) {
	case "A":
		return TypeA, true
	case "CNAME":
		return TypeCNAME, true
	case "PTR":
		return TypePTR, true
	case "MX":
		return TypeMX, true
	case "TXT":
		return TypeTXT, true
	default:
		return 0, false
	}
}

// String renders the canonical uppercase spelling of rt, or "OTHER" for
// any wire value this server doesn't name.
func (rt RecordType) String() string {
	switch rt {
	case TypeA:
		return "A"
	case TypeCNAME:
		return "CNAME"
	case TypeSOA:
		return "SOA"
	case TypePTR:
		return "PTR"
	case TypeMX:
		return "MX"
	case TypeTXT:
		return "TXT"
	default:
		return "OTHER"
	}
}
