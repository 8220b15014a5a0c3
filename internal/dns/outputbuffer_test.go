package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendDomainCompressionReuse(t *testing.T) {
	buf := NewOutputBuffer(0, 0)
	require.NoError(t, buf.AppendDomain("example.com"))
	firstLen := len(buf.Result)

	require.NoError(t, buf.AppendDomain("example.com"))
	// Second emission must be a 2-byte pointer, not a repeat of the labels.
	assert.Equal(t, firstLen+2, len(buf.Result))
}

func TestAppendDomainRoot(t *testing.T) {
	buf := NewOutputBuffer(0, 0)
	require.NoError(t, buf.AppendDomain(""))
	assert.Equal(t, []byte{0}, buf.Result)
}

func TestAppendDomainOffsetsRelativeToDataStart(t *testing.T) {
	buf := NewOutputBuffer(2, 0) // TCP: 2-byte length prefix precedes the message
	buf.AppendU16(0)            // placeholder length prefix
	require.NoError(t, buf.AppendDomain("a.com"))

	require.NoError(t, buf.AppendDomain("a.com"))
	// Pointer offset is relative to data_start (2), so it must point at 0,
	// not at the prefix.
	ptr := uint16(buf.Result[len(buf.Result)-2])<<8 | uint16(buf.Result[len(buf.Result)-1])
	assert.Equal(t, uint16(0xC000), ptr&0xC000)
	assert.Equal(t, uint16(0), ptr&0x3FFF)
}

func TestAppendDomainRejectsOversizeLabel(t *testing.T) {
	buf := NewOutputBuffer(0, 0)
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	err := buf.AppendDomain(string(long) + ".com")
	assert.Error(t, err)
}

func TestOverwriteU16Backfill(t *testing.T) {
	buf := NewOutputBuffer(0, 0)
	pos := len(buf.Result)
	buf.AppendU16(0)
	buf.AppendBytes([]byte{1, 2, 3})
	buf.OverwriteU16(pos, 3)
	assert.Equal(t, []byte{0, 3, 1, 2, 3}, buf.Result)
}

func TestClearResetsCompressionDictionary(t *testing.T) {
	buf := NewOutputBuffer(0, 512)
	require.NoError(t, buf.AppendDomain("example.com"))
	buf.Clear()

	assert.Empty(t, buf.Result)
	assert.Zero(t, buf.DataStart)
	assert.Zero(t, buf.MaxSize)

	// After Clear, example.com must be re-emitted in full, not compressed
	// against the dictionary from before the reset.
	require.NoError(t, buf.AppendDomain("example.com"))
	assert.Equal(t, byte(7), buf.Result[0]) // first label length, not a pointer
	require.NoError(t, buf.AppendDomain("example.com"))
	assert.Equal(t, byte(0xC0), buf.Result[len(buf.Result)-2]&0xC0)
}
