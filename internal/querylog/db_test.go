package querylog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRunsMigrations(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	defer db.Close()

	err = db.Insert(Entry{
		Timestamp:   time.Now(),
		ClientAddr:  "10.0.0.1:9999",
		Transport:   "tcp",
		QName:       "test.example.com",
		QType:       1,
		RCode:       0,
		AnswerCount: 2,
	})
	require.NoError(t, err)

	var qname string
	require.NoError(t, db.conn.QueryRow("SELECT qname FROM query_log LIMIT 1").Scan(&qname))
	assert.Equal(t, "test.example.com", qname)
}
