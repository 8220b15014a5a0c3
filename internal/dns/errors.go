// Package dns implements the wire-format codec for an authoritative DNS
// server: RFC 1035 header/question/record parsing and serialization,
// name compression, and the record types this server answers (A, CNAME,
// PTR, MX, TXT, SOA for round-trip fidelity, and an opaque Other
// fallback for everything else).
//
// Record bodies are a tagged variant keyed by wire type (see
// RecordBody), not a generic struct with an any-typed payload, so each
// body's encode/decode lives next to its own fields.
//
// All errors are wrapped with context using fmt.Errorf("...: %w", err),
// preserving the sentinel for callers that need to distinguish failure
// classes (see ErrDNSError, ErrNotImplemented, ErrConfig).
package dns

import "errors"

var (
	// ErrDNSError is a sentinel error for DNS wire-format violations: an
	// unparseable message, an oversize label, a pointer cycle, or a
	// truncated section. Wrap it with fmt.Errorf("context: %w", ErrDNSError)
	// to add context. Surfaces to clients as RCODE=FormatError.
	ErrDNSError = errors.New("dns wire error")

	// ErrNotImplemented marks a query type the table recognizes the wire
	// value of but has no body codec for. Surfaces as RCODE=NotImplemented.
	ErrNotImplemented = errors.New("dns record type not implemented")

	// ErrConfig marks a malformed configuration document (bad JSON or an
	// unrecognized record-type string). Fatal: the process exits before
	// the reactor starts.
	ErrConfig = errors.New("dns config error")
)
