package dns

import (
	"errors"
	"fmt"
)

// defaultAnswerTTL is the TTL stamped on every server-synthesized answer.
const defaultAnswerTTL uint32 = 3600

// buildAnswerBody constructs the RecordBody for one configured answer
// string, using the codec appropriate to recordType.
func buildAnswerBody(recordType RecordType, text string) (RecordBody, error) {
	switch recordType {
	case TypeA:
		return NewABody(text)
	case TypeCNAME, TypePTR:
		return NameBody{Name: text}, nil
	case TypeMX:
		return NewMXBody(text), nil
	case TypeTXT:
		return NewTXTBody(text)
	default:
		return nil, fmt.Errorf("%w: record type %s", ErrNotImplemented, recordType)
	}
}

// isSupportedQueryType reports whether recordType is one of the five
// types this server answers (§6). Any other QTYPE is well-formed DNS
// but unhandled, so it yields NotImplemented rather than a table miss.
func isSupportedQueryType(recordType RecordType) bool {
	switch recordType {
	case TypeA, TypeCNAME, TypePTR, TypeMX, TypeTXT:
		return true
	default:
		return false
	}
}

// ProcessQuery implements the query processor (C6): parse the raw
// request, resolve each question against table, and serialize a response
// into out, applying the UDP truncation policy when out.MaxSize is set.
//
// A parse failure yields a minimal FormatError response carrying only the
// echoed ID; anything past that point always has QR=1, RA=1 and the
// request's original questions.
func ProcessQuery(raw []byte, table *RecordTable, out *OutputBuffer) error {
	req, err := ParseRequestBounded(raw)
	if err != nil {
		return serializeFormatError(raw, out)
	}

	flags := DecodeFlags(req.Header.Flags)
	flags.QR = true
	flags.RA = true
	flags.RCode = RCodeNoError

	resp := Packet{
		Header: Header{
			ID:    req.Header.ID,
			Flags: flags.Encode(),
		},
		Questions: req.Questions,
	}

	for _, q := range resp.Questions {
		recordType := RecordType(q.Type)
		if !isSupportedQueryType(recordType) {
			flags.RCode = RCodeNotImp
			break
		}
		strs, ok := table.Lookup(recordType, q.Name)
		if !ok {
			flags.RCode = RCodeNXDomain
			break
		}
		for _, s := range strs {
			body, err := buildAnswerBody(recordType, s)
			if err != nil {
				flags.RCode = RCodeServFail
				if errors.Is(err, ErrNotImplemented) {
					flags.RCode = RCodeNotImp
				}
				break
			}
			resp.Answers = append(resp.Answers, Record{
				Name:  q.Name,
				Type:  q.Type,
				Class: uint16(ClassIN),
				TTL:   defaultAnswerTTL,
				Body:  body,
			})
		}
		if flags.RCode != RCodeNoError {
			break
		}
	}

	if flags.RCode != RCodeNoError {
		resp.Answers = nil
	}
	resp.Header.Flags = flags.Encode()

	if err := resp.Marshal(out); err != nil {
		return err
	}

	if out.MaxSize > 0 && len(out.Result) > out.MaxSize {
		dataStart, maxSize := out.DataStart, out.MaxSize
		out.Clear()
		out.DataStart, out.MaxSize = dataStart, maxSize

		flags.TC = true
		resp.Answers = nil
		resp.Authorities = nil
		resp.Header.Flags = flags.Encode()
		if err := resp.Marshal(out); err != nil {
			return err
		}
	}
	return nil
}

// serializeFormatError writes a minimal error response for a request that
// failed to parse: the ID is echoed if the request holds at least two bytes, QR=1,
// RCODE=FormatError, no questions or records.
func serializeFormatError(raw []byte, out *OutputBuffer) error {
	var id uint16
	if len(raw) >= 2 {
		id = uint16(raw[0])<<8 | uint16(raw[1])
	}
	flags := HeaderFlags{QR: true, RA: true, RCode: RCodeFormErr}
	resp := Packet{Header: Header{ID: id, Flags: flags.Encode()}}
	return resp.Marshal(out)
}
