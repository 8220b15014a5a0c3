package dns

import (
	"encoding/binary"
	"fmt"
)

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
//
// Each question specifies what the client is asking for:
//   - Name: The domain name being queried
//   - Type: The record type requested (A, AAAA, MX, etc.)
//   - Class: Usually ClassIN (Internet)
// Question represents a DNS question (RFC 1035 Section 4.1.2).
// Each DNS query contains one or more questions asking for records of a specific type.
type Question struct {
	Name  string // Domain name (e.g., "example.com")
	Type  uint16 // Record type (e.g., TypeA, TypeMX)
	Class uint16 // Record class (usually ClassIN for Internet)
}

// Encode appends the question to buf: a compressed name followed by the
// fixed type/class fields. Unlike a record, a question has no RDLENGTH
// to backfill. Questions must be encoded through the shared buffer (not
// marshaled standalone) so their name registers in OutputBuffer's
// compression dictionary before any answer or authority name that
// repeats it.
func (q Question) Encode(buf *OutputBuffer) error {
	if err := buf.AppendDomain(q.Name); err != nil {
		return err
	}
	buf.AppendU16(q.Type)
	buf.AppendU16(q.Class)
	return nil
}

// ParseQuestion parses a question from the message at the given offset.
// It advances *off past the parsed question on success.
// The domain name is normalized to lowercase for case-insensitive DNS comparisons.
func ParseQuestion(msg []byte, off *int) (Question, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return Question{}, err
	}
	if *off+4 > len(msg) {
		return Question{}, fmt.Errorf("%w: unexpected EOF while reading DNS question", ErrDNSError)
	}
	q := Question{
		Name:  NormalizeName(name),
		Type:  binary.BigEndian.Uint16(msg[*off : *off+2]),
		Class: binary.BigEndian.Uint16(msg[*off+2 : *off+4]),
	}
	*off += 4
	return q, nil
}
