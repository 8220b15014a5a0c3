// Package config loads the server's JSON configuration document using
// Viper, validating it eagerly so a bad file fails before the reactor
// starts.
package config

import (
	"os"
	"strings"
)

// RecordConfig is one entry of the "records" array: a record type, the
// host it answers for, and the ordered list of answer strings.
type RecordConfig struct {
	Type     string   `mapstructure:"type"     json:"type"`
	Host     string   `mapstructure:"host"     json:"host"`
	Response []string `mapstructure:"response" json:"response"`
}

// StatusAPIConfig controls the optional read-only introspection HTTP
// surface. Disabled by default.
type StatusAPIConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	Host    string `mapstructure:"host"    json:"host"`
	Port    int    `mapstructure:"port"    json:"port"`
}

// QueryLogConfig controls the optional sqlite-backed audit trail.
// Disabled by default.
type QueryLogConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	Path    string `mapstructure:"path"    json:"path"`
}

// LoggingConfig controls the structured log sink.
type LoggingConfig struct {
	Level            string            `mapstructure:"level"             json:"level"`
	Structured       bool              `mapstructure:"structured"        json:"structured"`
	StructuredFormat string            `mapstructure:"structured_format" json:"structured_format"`
	IncludePID       bool              `mapstructure:"include_pid"       json:"include_pid"`
	ExtraFields      map[string]string `mapstructure:"extra_fields"      json:"extra_fields,omitempty"`
}

// Config is the root of the server's JSON configuration document.
type Config struct {
	IP        string          `mapstructure:"ip"         json:"ip"`
	Port      int             `mapstructure:"port"       json:"port"`
	Records   []RecordConfig  `mapstructure:"records"    json:"records"`
	StatusAPI StatusAPIConfig `mapstructure:"status_api" json:"status_api"`
	QueryLog  QueryLogConfig  `mapstructure:"query_log"  json:"query_log"`
	Logging   LoggingConfig   `mapstructure:"logging"    json:"logging"`
}

// ResolveConfigPath determines the config file path from the CLI argument
// or the HYDRADNS_CONFIG environment variable, in that order of
// precedence.
func ResolveConfigPath(argValue string) string {
	if strings.TrimSpace(argValue) != "" {
		return argValue
	}
	if v := strings.TrimSpace(os.Getenv("HYDRADNS_CONFIG")); v != "" {
		return v
	}
	return ""
}
