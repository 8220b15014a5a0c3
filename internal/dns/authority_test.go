package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorityEncodeParseRoundTrip(t *testing.T) {
	a := Authority{
		Name:    "example.com",
		Type:    uint16(TypeSOA),
		Class:   uint16(ClassIN),
		TTL:     86400,
		Primary: "ns1.example.com",
		Mbox:    "hostmaster.example.com",
		Serial:  2024010100,
		Refresh: 7200,
		Retry:   1800,
		Expire:  1209600,
		MinTTL:  3600,
	}

	buf := NewOutputBuffer(0, 0)
	require.NoError(t, a.Encode(buf))

	off := 0
	parsed, err := ParseAuthority(buf.Result, &off)
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
	assert.Equal(t, len(buf.Result), off)
}

func TestParseAuthorityTruncated(t *testing.T) {
	msg := []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		3, 'c', 'o', 'm',
		0,
		0, 6, // Type SOA
		0, 1, // Class IN
		0, 1, 81, 128, // TTL
		0, 20, // RDLEN (too small / truncated data follows)
		3, 'n', 's', '1', 0,
	}
	off := 0
	_, err := ParseAuthority(msg, &off)
	assert.Error(t, err)
}
