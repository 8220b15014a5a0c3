package dns

import "github.com/jroosing/hydradns/internal/helpers"

// Packet represents a complete DNS message (RFC 1035 Section 4).
//
// The additional section is never materialized: it is ignored on parse
// and always empty on serialize (ARCOUNT=0), per the server's decision
// to not synthesize additional records.
type Packet struct {
	Header      Header
	Questions   []Question
	Answers     []Record
	Authorities []Authority
}

// Marshal serializes the packet into an output buffer using name
// compression. The header's *COUNT fields are derived from the slice
// lengths actually present, not copied from p.Header, so a caller only
// ever needs to populate p.Header.ID and p.Header.Flags.
func (p Packet) Marshal(buf *OutputBuffer) error {
	h := Header{
		ID:      p.Header.ID,
		Flags:   p.Header.Flags,
		QDCount: helpers.ClampIntToUint16(len(p.Questions)),
		ANCount: helpers.ClampIntToUint16(len(p.Answers)),
		NSCount: helpers.ClampIntToUint16(len(p.Authorities)),
		ARCount: 0,
	}
	hb, err := h.Marshal()
	if err != nil {
		return err
	}
	buf.AppendBytes(hb)

	for _, q := range p.Questions {
		if err := q.Encode(buf); err != nil {
			return err
		}
	}
	for _, rr := range p.Answers {
		if err := rr.Encode(buf); err != nil {
			return err
		}
	}
	for _, a := range p.Authorities {
		if err := a.Encode(buf); err != nil {
			return err
		}
	}
	return nil
}

// ParsePacket decodes a full message: header, questions, answers,
// authorities in order. The additional section (ARCOUNT) is never read;
// its bytes, if any, are simply left unconsumed.
func ParsePacket(msg []byte) (Packet, error) {
	off := 0
	h, err := ParseHeader(msg, &off)
	if err != nil {
		return Packet{}, err
	}

	p := Packet{Header: h}

	// Cap initial allocation to avoid DoS with large counts in header
	// but small actual packet size.
	limitCount := func(count uint16, limit int) int {
		if int(count) > limit {
			return limit
		}
		return int(count)
	}

	p.Questions = make([]Question, 0, limitCount(h.QDCount, MaxQuestions))
	for range h.QDCount {
		q, err := ParseQuestion(msg, &off)
		if err != nil {
			return Packet{}, err
		}
		p.Questions = append(p.Questions, q)
	}
	p.Answers = make([]Record, 0, limitCount(h.ANCount, MaxRRPerSection))
	for range h.ANCount {
		rr, err := ParseRecord(msg, &off)
		if err != nil {
			return Packet{}, err
		}
		p.Answers = append(p.Answers, rr)
	}
	p.Authorities = make([]Authority, 0, limitCount(h.NSCount, MaxRRPerSection))
	for range h.NSCount {
		a, err := ParseAuthority(msg, &off)
		if err != nil {
			return Packet{}, err
		}
		p.Authorities = append(p.Authorities, a)
	}
	return p, nil
}
