package dns

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/jroosing/hydradns/internal/helpers"
)

// RecordBody is the per-type payload of an Answer or Authority record. It
// is a tagged variant (sum type) keyed by the enclosing Record's wire
// type: each concrete body owns its fields and its own encoding, and the
// Record holds its body by value — answers are never aliased, so no
// shared ownership is needed.
type RecordBody interface {
	// encodeBody writes the body (without the RDLENGTH prefix) into buf,
	// using compression where the wire format allows it.
	encodeBody(buf *OutputBuffer) error
}

// ABody is the body of an A record: 4 raw octets, network order.
type ABody struct {
	Addr [4]byte
}

// NewABody parses a dotted-quad IPv4 address. Per §4.3, invalid text is
// rejected rather than silently coerced to 0.0.0.0.
func NewABody(text string) (ABody, error) {
	ip := net.ParseIP(text)
	if ip == nil {
		return ABody{}, fmt.Errorf("%w: invalid IPv4 address %q", ErrDNSError, text)
	}
	v4 := ip.To4()
	if v4 == nil {
		return ABody{}, fmt.Errorf("%w: not an IPv4 address %q", ErrDNSError, text)
	}
	var b ABody
	copy(b.Addr[:], v4)
	return b, nil
}

func decodeABody(msg []byte, off, rdlength int) (ABody, error) {
	if rdlength != 4 {
		return ABody{}, fmt.Errorf("%w: A record RDLENGTH must be 4, got %d", ErrDNSError, rdlength)
	}
	var b ABody
	copy(b.Addr[:], msg[off:off+4])
	return b, nil
}

func (b ABody) encodeBody(buf *OutputBuffer) error {
	buf.AppendBytes(b.Addr[:])
	return nil
}

func (b ABody) String() string {
	return net.IPv4(b.Addr[0], b.Addr[1], b.Addr[2], b.Addr[3]).String()
}

// NameBody is the body shared by CNAME and PTR records: a single
// compressible domain name.
type NameBody struct {
	Name string
}

func decodeNameBody(msg []byte, off *int) (NameBody, error) {
	n, err := DecodeName(msg, off)
	if err != nil {
		return NameBody{}, err
	}
	return NameBody{Name: n}, nil
}

func (b NameBody) encodeBody(buf *OutputBuffer) error {
	return buf.AppendDomain(b.Name)
}

// MXBody is the body of an MX record: <preference:u16><exchange:domain>.
type MXBody struct {
	Preference uint16
	Exchange   string
}

// defaultMXPreference is used when constructing an MX body from a config
// string that names only the exchange host.
const defaultMXPreference = 10

func NewMXBody(exchange string) MXBody {
	return MXBody{Preference: defaultMXPreference, Exchange: exchange}
}

func decodeMXBody(msg []byte, off *int) (MXBody, error) {
	if *off+2 > len(msg) {
		return MXBody{}, fmt.Errorf("%w: unexpected EOF while reading MX preference", ErrDNSError)
	}
	pref := binary.BigEndian.Uint16(msg[*off : *off+2])
	*off += 2
	ex, err := DecodeName(msg, off)
	if err != nil {
		return MXBody{}, err
	}
	return MXBody{Preference: pref, Exchange: ex}, nil
}

func (b MXBody) encodeBody(buf *OutputBuffer) error {
	buf.AppendU16(b.Preference)
	return buf.AppendDomain(b.Exchange)
}

// TXTBody is a single character-string: <len:u8><bytes>, len <= 255. The
// reference model emits exactly one character-string per TXT record, and
// so does this port: multi-string TXT records are not decoded or encoded.
type TXTBody struct {
	Text []byte
}

func NewTXTBody(text string) (TXTBody, error) {
	if len(text) > 255 {
		return TXTBody{}, fmt.Errorf("%w: TXT character-string cannot exceed 255 bytes", ErrDNSError)
	}
	return TXTBody{Text: []byte(text)}, nil
}

func decodeTXTBody(msg []byte, off, rdlength int) (TXTBody, error) {
	if rdlength < 1 {
		return TXTBody{}, fmt.Errorf("%w: TXT record RDLENGTH must be at least 1", ErrDNSError)
	}
	strLen := int(msg[off])
	if 1+strLen != rdlength {
		return TXTBody{}, fmt.Errorf("%w: TXT character-string length does not match RDLENGTH", ErrDNSError)
	}
	text := make([]byte, strLen)
	copy(text, msg[off+1:off+1+strLen])
	return TXTBody{Text: text}, nil
}

func (b TXTBody) encodeBody(buf *OutputBuffer) error {
	if len(b.Text) > 255 {
		return fmt.Errorf("%w: TXT character-string cannot exceed 255 bytes", ErrDNSError)
	}
	buf.AppendU8(byte(len(b.Text)))
	buf.AppendBytes(b.Text)
	return nil
}

// OtherBody retains an opaque payload so a record type this server does
// not semantically understand can still be echoed back losslessly.
type OtherBody struct {
	Data []byte
}

func decodeOtherBody(msg []byte, off, rdlength int) OtherBody {
	data := make([]byte, rdlength)
	copy(data, msg[off:off+rdlength])
	return OtherBody{Data: data}
}

func (b OtherBody) encodeBody(buf *OutputBuffer) error {
	buf.AppendBytes(b.Data)
	return nil
}

// Record is a DNS resource record: the shared name/type/class/ttl fields
// plus a tagged-variant Body. Type is the raw wire value (not RecordType)
// so an Other body can still carry a type code this server has no name
// for.
type Record struct {
	Name  string
	Type  uint16
	Class uint16
	TTL   uint32
	Body  RecordBody
}

// ParseRecord decodes one resource record at *off, advancing past it.
func ParseRecord(msg []byte, off *int) (Record, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return Record{}, err
	}
	if *off+10 > len(msg) {
		return Record{}, fmt.Errorf("%w: unexpected EOF while reading DNS record", ErrDNSError)
	}
	rrType := binary.BigEndian.Uint16(msg[*off : *off+2])
	rrClass := binary.BigEndian.Uint16(msg[*off+2 : *off+4])
	ttl := binary.BigEndian.Uint32(msg[*off+4 : *off+8])
	rdlen := int(binary.BigEndian.Uint16(msg[*off+8 : *off+10]))
	*off += 10
	start := *off
	if start+rdlen > len(msg) {
		return Record{}, fmt.Errorf("%w: unexpected EOF while reading DNS record rdata", ErrDNSError)
	}

	var body RecordBody
	switch RecordType(rrType) {
	case TypeA:
		body, err = decodeABody(msg, start, rdlen)
		if err != nil {
			return Record{}, err
		}
		*off = start + rdlen
	case TypeCNAME, TypePTR:
		body, err = decodeNameBody(msg, off)
		if err != nil {
			return Record{}, err
		}
		if *off-start != rdlen {
			return Record{}, fmt.Errorf("%w: RDLENGTH mismatch for name-based record", ErrDNSError)
		}
	case TypeMX:
		body, err = decodeMXBody(msg, off)
		if err != nil {
			return Record{}, err
		}
		if *off-start != rdlen {
			return Record{}, fmt.Errorf("%w: RDLENGTH mismatch for MX record", ErrDNSError)
		}
	case TypeTXT:
		body, err = decodeTXTBody(msg, start, rdlen)
		if err != nil {
			return Record{}, err
		}
		*off = start + rdlen
	default:
		body = decodeOtherBody(msg, start, rdlen)
		*off = start + rdlen
	}

	return Record{Name: name, Type: rrType, Class: rrClass, TTL: ttl, Body: body}, nil
}

// Encode appends the record to buf: a compressed name, the fixed
// type/class/ttl fields, a placeholder RDLENGTH, the body, and finally the
// backfilled RDLENGTH. The length is always backfilled, even when the
// body is empty — the reference implementation's skip-on-zero-size
// backfill was a bug (see DESIGN.md), not a behavior worth preserving.
func (rr Record) Encode(buf *OutputBuffer) error {
	if err := buf.AppendDomain(rr.Name); err != nil {
		return err
	}
	buf.AppendU16(rr.Type)
	buf.AppendU16(rr.Class)
	buf.AppendU32(rr.TTL)

	rdlenPos := len(buf.Result)
	buf.AppendU16(0) // placeholder, backfilled below
	bodyStart := len(buf.Result)

	if rr.Body == nil {
		return fmt.Errorf("%w: record has no body", ErrDNSError)
	}
	if err := rr.Body.encodeBody(buf); err != nil {
		return err
	}
	buf.OverwriteU16(rdlenPos, helpers.ClampIntToUint16(len(buf.Result)-bodyStart))
	return nil
}

// IPv4 returns the dotted-quad text of an A record's address.
func (rr Record) IPv4() (string, bool) {
	a, ok := rr.Body.(ABody)
	if !ok {
		return "", false
	}
	return a.String(), true
}
