package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEncodeA(t *testing.T) {
	body, err := NewABody("192.0.2.1")
	require.NoError(t, err)
	rr := Record{Name: "example.com", Type: uint16(TypeA), Class: 1, TTL: 300, Body: body}

	buf := NewOutputBuffer(0, 0)
	require.NoError(t, rr.Encode(buf))

	assert.GreaterOrEqual(t, len(buf.Result), 17)
	rdlenPos := len(buf.Result) - 4 - 2
	rdlen := int(buf.Result[rdlenPos])<<8 | int(buf.Result[rdlenPos+1])
	assert.Equal(t, 4, rdlen)
}

func TestRecordEncodeCNAME(t *testing.T) {
	rr := Record{
		Name:  "www.example.com",
		Type:  uint16(TypeCNAME),
		Class: 1,
		TTL:   3600,
		Body:  NameBody{Name: "example.com"},
	}

	buf := NewOutputBuffer(0, 0)
	require.NoError(t, rr.Encode(buf))
	assert.NotEmpty(t, buf.Result)
}

func TestRecordEncodeMX(t *testing.T) {
	rr := Record{
		Name:  "example.com",
		Type:  uint16(TypeMX),
		Class: 1,
		TTL:   3600,
		Body:  MXBody{Preference: 10, Exchange: "mail.example.com"},
	}

	buf := NewOutputBuffer(0, 0)
	require.NoError(t, rr.Encode(buf))
	assert.NotEmpty(t, buf.Result)
}

func TestRecordEncodeTXT(t *testing.T) {
	body, err := NewTXTBody("hello world")
	require.NoError(t, err)
	rr := Record{Name: "example.com", Type: uint16(TypeTXT), Class: 1, TTL: 300, Body: body}

	buf := NewOutputBuffer(0, 0)
	require.NoError(t, rr.Encode(buf))
	assert.NotEmpty(t, buf.Result)
}

func TestNewTXTBodyRejectsOversize(t *testing.T) {
	big := make([]byte, 256)
	_, err := NewTXTBody(string(big))
	assert.Error(t, err)
}

func TestRecordEncodeOther(t *testing.T) {
	rr := Record{
		Name:  "example.com",
		Type:  46, // RRSIG, unrecognized by this server
		Class: 1,
		TTL:   86400,
		Body:  OtherBody{Data: []byte{0x01, 0x02, 0x03}},
	}

	buf := NewOutputBuffer(0, 0)
	require.NoError(t, rr.Encode(buf))
	assert.NotEmpty(t, buf.Result)
}

func TestNewABodyRejectsInvalidText(t *testing.T) {
	_, err := NewABody("not an address")
	assert.Error(t, err, "expected error for invalid A record text")
}

func TestRecordIPv4(t *testing.T) {
	body, err := NewABody("192.0.2.1")
	require.NoError(t, err)
	rr := Record{Name: "example.com", Type: uint16(TypeA), Class: 1, TTL: 300, Body: body}

	ip, ok := rr.IPv4()
	require.True(t, ok)
	assert.Equal(t, "192.0.2.1", ip)
}

func TestRecordIPv4NotA(t *testing.T) {
	rr := Record{
		Name:  "example.com",
		Type:  uint16(TypeCNAME),
		Class: 1,
		TTL:   300,
		Body:  NameBody{Name: "target.example.com"},
	}

	_, ok := rr.IPv4()
	assert.False(t, ok, "expected ok to be false for non-A record")
}

func TestParseRecord(t *testing.T) {
	// Name: example.com, Type A, Class IN, TTL 300, RDLEN 4, RDATA 192.0.2.1
	msg := []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		3, 'c', 'o', 'm',
		0,
		0, 1, // Type A
		0, 1, // Class IN
		0, 0, 1, 44, // TTL 300
		0, 4, // RDLEN
		192, 0, 2, 1,
	}

	off := 0
	rr, err := ParseRecord(msg, &off)
	require.NoError(t, err)

	assert.Equal(t, "example.com", rr.Name)
	assert.Equal(t, uint16(TypeA), rr.Type)
	assert.Equal(t, uint16(1), rr.Class)
	assert.Equal(t, uint32(300), rr.TTL)

	body, ok := rr.Body.(ABody)
	require.True(t, ok, "expected ABody, got %T", rr.Body)
	assert.Equal(t, "192.0.2.1", body.String())
}

func TestParseRecordCNAMERoundTrip(t *testing.T) {
	rr := Record{
		Name:  "www.example.com",
		Type:  uint16(TypeCNAME),
		Class: 1,
		TTL:   3600,
		Body:  NameBody{Name: "target.example.com"},
	}

	buf := NewOutputBuffer(0, 0)
	require.NoError(t, rr.Encode(buf))

	off := 0
	parsed, err := ParseRecord(buf.Result, &off)
	require.NoError(t, err)

	assert.Equal(t, uint16(TypeCNAME), parsed.Type)
	body, ok := parsed.Body.(NameBody)
	require.True(t, ok, "expected NameBody, got %T", parsed.Body)
	assert.Equal(t, "target.example.com", body.Name)
}

func TestParseRecordMX(t *testing.T) {
	msg := []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		3, 'c', 'o', 'm',
		0,
		0, 15, // Type MX
		0, 1, // Class IN
		0, 0, 14, 16, // TTL 3600
		0, 20, // RDLEN
		0, 10, // Preference
		4, 'm', 'a', 'i', 'l',
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		3, 'c', 'o', 'm',
		0,
	}

	off := 0
	rr, err := ParseRecord(msg, &off)
	require.NoError(t, err)

	assert.Equal(t, uint16(TypeMX), rr.Type)
	mx, ok := rr.Body.(MXBody)
	require.True(t, ok, "expected MXBody, got %T", rr.Body)
	assert.Equal(t, uint16(10), mx.Preference)
	assert.Equal(t, "mail.example.com", mx.Exchange)
}

func TestParseRecordTruncated(t *testing.T) {
	msg := []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		3, 'c', 'o', 'm',
		0,
		0, 1, // Type A
		0, 1, // Class IN
		0, 0, 1, 44, // TTL 300
		0, 4, // RDLEN says 4 bytes
		// no RDATA follows
	}

	off := 0
	_, err := ParseRecord(msg, &off)
	assert.Error(t, err, "expected error for truncated record")
}

func TestParseRecordOther(t *testing.T) {
	msg := []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		3, 'c', 'o', 'm',
		0,
		0, 28, // Type AAAA, not recognized by this server
		0, 1, // Class IN
		0, 0, 1, 44, // TTL 300
		0, 16, // RDLEN
		0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
	}

	off := 0
	rr, err := ParseRecord(msg, &off)
	require.NoError(t, err)

	body, ok := rr.Body.(OtherBody)
	require.True(t, ok, "expected OtherBody, got %T", rr.Body)
	assert.Len(t, body.Data, 16)
}
