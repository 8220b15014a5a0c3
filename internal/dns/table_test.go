package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTableAddAndLookup(t *testing.T) {
	table := NewRecordTable()
	table.AddRecord(TypeA, "domain.com", []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"})

	answers, ok := table.Lookup(TypeA, "domain.com")
	require.True(t, ok)
	assert.Equal(t, []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"}, answers)
}

func TestRecordTableMiss(t *testing.T) {
	table := NewRecordTable()
	_, ok := table.Lookup(TypeA, "domain1.com")
	assert.False(t, ok)
}

func TestRecordTableAddReplacesExisting(t *testing.T) {
	table := NewRecordTable()
	table.AddRecord(TypeA, "domain.com", []string{"1.1.1.1"})
	table.AddRecord(TypeA, "domain.com", []string{"9.9.9.9"})

	answers, ok := table.Lookup(TypeA, "domain.com")
	require.True(t, ok)
	assert.Equal(t, []string{"9.9.9.9"}, answers)
}

func TestRecordTableDistinctTypesSameName(t *testing.T) {
	table := NewRecordTable()
	table.AddRecord(TypeA, "domain.com", []string{"1.1.1.1"})
	table.AddRecord(TypeMX, "domain.com", []string{"mail.domain.com"})

	_, ok := table.Lookup(TypeCNAME, "domain.com")
	assert.False(t, ok)

	mx, ok := table.Lookup(TypeMX, "domain.com")
	require.True(t, ok)
	assert.Equal(t, []string{"mail.domain.com"}, mx)
}

func TestRecordTableLoadEntriesRejectsUnknownType(t *testing.T) {
	table := NewRecordTable()
	err := table.LoadEntries([]RecordEntry{
		{Type: "WKS", Host: "domain.com", Response: []string{"x"}},
	})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestRecordTableLoadEntries(t *testing.T) {
	table := NewRecordTable()
	err := table.LoadEntries([]RecordEntry{
		{Type: "A", Host: "domain.com", Response: []string{"1.2.3.4"}},
		{Type: "a", Host: "other.com", Response: []string{"5.6.7.8"}},
	})
	require.NoError(t, err)

	answers, ok := table.Lookup(TypeA, "domain.com")
	require.True(t, ok)
	assert.Equal(t, []string{"1.2.3.4"}, answers)

	answers, ok = table.Lookup(TypeA, "other.com")
	require.True(t, ok)
	assert.Equal(t, []string{"5.6.7.8"}, answers)
}
