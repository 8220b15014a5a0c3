package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/hydradns/internal/dns"
)

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		envValue string
		want     string
	}{
		{"flag takes precedence", "/path/from/flag", "/path/from/env", "/path/from/flag"},
		{"env when no flag", "", "/path/from/env", "/path/from/env"},
		{"empty when neither", "", "", ""},
		{"whitespace flag", "  ", "/path/from/env", "/path/from/env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HYDRADNS_CONFIG", tt.envValue)
			got := ResolveConfigPath(tt.flag)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.IP)
	assert.Equal(t, 10000, cfg.Port)
	assert.Empty(t, cfg.Records)
	assert.False(t, cfg.StatusAPI.Enabled)
	assert.False(t, cfg.QueryLog.Enabled)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	content := `{
  "ip": "0.0.0.0",
  "port": 5353,
  "records": [
    {"type": "A", "host": "example.com", "response": ["1.2.3.4", "5.6.7.8"]},
    {"type": "CNAME", "host": "www.example.com", "response": ["example.com"]}
  ],
  "status_api": {"enabled": true, "host": "127.0.0.1", "port": 9090},
  "query_log": {"enabled": true, "path": "queries.db"},
  "logging": {"level": "DEBUG", "structured": true, "structured_format": "keyvalue"}
}`
	dir := t.TempDir()
	path := filepath.Join(dir, "test-config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.IP)
	assert.Equal(t, 5353, cfg.Port)
	require.Len(t, cfg.Records, 2)
	assert.Equal(t, "A", cfg.Records[0].Type)
	assert.Equal(t, "example.com", cfg.Records[0].Host)
	assert.Equal(t, []string{"1.2.3.4", "5.6.7.8"}, cfg.Records[0].Response)
	assert.True(t, cfg.StatusAPI.Enabled)
	assert.Equal(t, 9090, cfg.StatusAPI.Port)
	assert.True(t, cfg.QueryLog.Enabled)
	assert.Equal(t, "queries.db", cfg.QueryLog.Path)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Structured)
	assert.Equal(t, "keyvalue", cfg.Logging.StructuredFormat)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path/to/config.json")
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": [invalid`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownRecordType(t *testing.T) {
	content := `{"records": [{"type": "WKS", "host": "example.com", "response": ["x"]}]}`
	cfg, err := LoadReader(strings.NewReader(content))
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, dns.ErrConfig)
}

func TestNormalizeInvalidPort(t *testing.T) {
	_, err := LoadReader(strings.NewReader(`{"port": 0}`))
	assert.Error(t, err)
}

func TestNormalizeDefaultsEmptyIP(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader(`{"ip": ""}`))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.IP)
}

func TestBuildTable(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader(`{
  "records": [
    {"type": "A", "host": "example.com", "response": ["1.2.3.4"]}
  ]
}`))
	require.NoError(t, err)

	table, err := BuildTable(cfg)
	require.NoError(t, err)

	answers, ok := table.Lookup(dns.TypeA, "example.com")
	require.True(t, ok)
	assert.Equal(t, []string{"1.2.3.4"}, answers)
}
