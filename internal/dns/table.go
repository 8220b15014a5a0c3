package dns

import "fmt"

// tableKey pairs a record type with a normalized (lowercase, no trailing
// dot) domain name.
type tableKey struct {
	Type RecordType
	Name string
}

// RecordTable maps (RecordType, normalized name) to an ordered list of
// textual answer strings. It is built once at startup and never mutated
// again once the reactor starts serving requests.
type RecordTable struct {
	entries map[tableKey][]string
}

// NewRecordTable returns an empty table.
func NewRecordTable() *RecordTable {
	return &RecordTable{entries: make(map[tableKey][]string)}
}

// AddRecord replaces any prior answer list for (recordType, name) with
// answers, in order.
func (t *RecordTable) AddRecord(recordType RecordType, name string, answers []string) {
	key := tableKey{Type: recordType, Name: NormalizeName(name)}
	cp := make([]string, len(answers))
	copy(cp, answers)
	t.entries[key] = cp
}

// Lookup returns the answer list for (recordType, name), canonicalizing
// name the same way AddRecord does. ok is false on a miss.
func (t *RecordTable) Lookup(recordType RecordType, name string) ([]string, bool) {
	answers, ok := t.entries[tableKey{Type: recordType, Name: NormalizeName(name)}]
	return answers, ok
}

// RecordEntry is the declarative shape of one table entry as it appears
// in the server's JSON configuration: {"type": "A", "host": "...",
// "response": [...]}.
type RecordEntry struct {
	Type     string
	Host     string
	Response []string
}

// LoadEntries populates the table from a list of declarative entries,
// rejecting any entry whose Type string isn't a recognized record type.
// Config loading treats this as fatal, so the whole load is rejected
// rather than skipping the bad entry.
func (t *RecordTable) LoadEntries(entries []RecordEntry) error {
	for _, e := range entries {
		rt, ok := ParseRecordType(e.Type)
		if !ok {
			return fmt.Errorf("%w: unrecognized record type %q", ErrConfig, e.Type)
		}
		t.AddRecord(rt, e.Host, e.Response)
	}
	return nil
}
