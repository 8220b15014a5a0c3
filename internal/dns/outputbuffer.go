package dns

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// OutputBuffer is the byte vector DNS messages are serialized into. It
// tracks data_start (nonzero on the TCP path, which prepends a 2-byte
// length before the message), a per-response compression dictionary, and
// an optional max_size cap used for UDP truncation detection.
type OutputBuffer struct {
	Result    []byte
	DataStart int
	MaxSize   int // 0 means uncapped
	compress  map[string]int
}

// NewOutputBuffer returns a buffer ready for a fresh response. dataStart is
// 0 for UDP, 2 for TCP (after the length prefix placeholder has been
// appended by the caller).
func NewOutputBuffer(dataStart, maxSize int) *OutputBuffer {
	return &OutputBuffer{DataStart: dataStart, MaxSize: maxSize, compress: make(map[string]int)}
}

// Clear resets everything, including data_start and max_size, and drops
// the compression dictionary — matching the per-response lifetime the
// dictionary has in the reference design.
func (b *OutputBuffer) Clear() {
	b.Result = b.Result[:0]
	b.DataStart = 0
	b.MaxSize = 0
	b.compress = make(map[string]int)
}

// pos returns the current offset relative to data_start — where the next
// appended byte will land, measured the way compression offsets are.
func (b *OutputBuffer) pos() int {
	return len(b.Result) - b.DataStart
}

func (b *OutputBuffer) AppendU8(v uint8) {
	b.Result = append(b.Result, v)
}

func (b *OutputBuffer) AppendU16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.Result = append(b.Result, tmp[:]...)
}

func (b *OutputBuffer) AppendU32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.Result = append(b.Result, tmp[:]...)
}

func (b *OutputBuffer) AppendBytes(v []byte) {
	b.Result = append(b.Result, v...)
}

// OverwriteU16 replaces two bytes at absolute offset pos (within Result,
// not relative to data_start) with the big-endian encoding of v. Used to
// backfill RDLENGTH and the TCP length prefix after a variable-length
// body has been emitted.
func (b *OutputBuffer) OverwriteU16(pos int, v uint16) {
	binary.BigEndian.PutUint16(b.Result[pos:pos+2], v)
}

// AppendDomain appends name in compressed wire format (RFC 1035 section
// 4.1.4): an empty name is the single root byte; otherwise a prior
// occurrence of name becomes a 2-byte pointer, and a first occurrence is
// recorded in the dictionary (keyed by offset from data_start) before its
// labels are emitted, with the remainder after the first '.' recursed on.
func (b *OutputBuffer) AppendDomain(name string) error {
	name = trimDot(name)
	if name == "" {
		b.AppendU8(0)
		return nil
	}
	if off, ok := b.compress[name]; ok {
		b.AppendU16(0xC000 | uint16(off))
		return nil
	}
	if len(name) > 255 {
		return fmt.Errorf("%w: encoded domain name too long (%d > 255)", ErrDNSError, len(name))
	}
	b.compress[name] = b.pos()

	label, rest, hasRest := strings.Cut(name, ".")
	if len(label) == 0 || len(label) > 63 {
		return fmt.Errorf("%w: invalid DNS label length: %q", ErrDNSError, label)
	}
	for i := 0; i < len(label); i++ {
		if label[i] > 0x7F {
			return fmt.Errorf("%w: domain_name must be ASCII", ErrDNSError)
		}
	}
	b.AppendU8(byte(len(label)))
	b.AppendBytes([]byte(label))
	if !hasRest {
		b.AppendU8(0)
		return nil
	}
	return b.AppendDomain(rest)
}
