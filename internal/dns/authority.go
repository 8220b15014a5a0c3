package dns

import (
	"encoding/binary"
	"fmt"

	"github.com/jroosing/hydradns/internal/helpers"
)

// Authority is an SOA resource record. The core server never synthesizes
// one; it exists so a message that carries an authority section on the
// wire (typically captured from an upstream source) round-trips through
// decode and encode unchanged.
type Authority struct {
	Name    string
	Type    uint16
	Class   uint16
	TTL     uint32
	Primary string // MNAME: primary nameserver
	Mbox    string // RNAME: responsible mailbox
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	MinTTL  uint32 // MINIMUM, floor TTL for negative caching
}

// ParseAuthority decodes one SOA record at *off, advancing past it.
func ParseAuthority(msg []byte, off *int) (Authority, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return Authority{}, err
	}
	if *off+10 > len(msg) {
		return Authority{}, fmt.Errorf("%w: unexpected EOF while reading authority record", ErrDNSError)
	}
	rrType := binary.BigEndian.Uint16(msg[*off : *off+2])
	rrClass := binary.BigEndian.Uint16(msg[*off+2 : *off+4])
	ttl := binary.BigEndian.Uint32(msg[*off+4 : *off+8])
	rdlen := int(binary.BigEndian.Uint16(msg[*off+8 : *off+10]))
	*off += 10
	start := *off
	if start+rdlen > len(msg) {
		return Authority{}, fmt.Errorf("%w: unexpected EOF while reading authority rdata", ErrDNSError)
	}

	primary, err := DecodeName(msg, off)
	if err != nil {
		return Authority{}, err
	}
	mbox, err := DecodeName(msg, off)
	if err != nil {
		return Authority{}, err
	}
	if *off+20 > len(msg) {
		return Authority{}, fmt.Errorf("%w: unexpected EOF while reading SOA fixed fields", ErrDNSError)
	}
	a := Authority{
		Name:    name,
		Type:    rrType,
		Class:   rrClass,
		TTL:     ttl,
		Primary: primary,
		Mbox:    mbox,
		Serial:  binary.BigEndian.Uint32(msg[*off : *off+4]),
		Refresh: binary.BigEndian.Uint32(msg[*off+4 : *off+8]),
		Retry:   binary.BigEndian.Uint32(msg[*off+8 : *off+12]),
		Expire:  binary.BigEndian.Uint32(msg[*off+12 : *off+16]),
		MinTTL:  binary.BigEndian.Uint32(msg[*off+16 : *off+20]),
	}
	*off += 20
	if *off-start != rdlen {
		return Authority{}, fmt.Errorf("%w: RDLENGTH mismatch for SOA record", ErrDNSError)
	}
	return a, nil
}

// Encode appends the SOA record to buf, backfilling RDLENGTH the same way
// Record.Encode does.
func (a Authority) Encode(buf *OutputBuffer) error {
	if err := buf.AppendDomain(a.Name); err != nil {
		return err
	}
	buf.AppendU16(a.Type)
	buf.AppendU16(a.Class)
	buf.AppendU32(a.TTL)

	rdlenPos := len(buf.Result)
	buf.AppendU16(0)
	bodyStart := len(buf.Result)

	if err := buf.AppendDomain(a.Primary); err != nil {
		return err
	}
	if err := buf.AppendDomain(a.Mbox); err != nil {
		return err
	}
	buf.AppendU32(a.Serial)
	buf.AppendU32(a.Refresh)
	buf.AppendU32(a.Retry)
	buf.AppendU32(a.Expire)
	buf.AppendU32(a.MinTTL)

	buf.OverwriteU16(rdlenPos, helpers.ClampIntToUint16(len(buf.Result)-bodyStart))
	return nil
}
