package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/jroosing/hydradns/internal/dns"
)

// Load reads and validates the server's JSON configuration file at path.
// An empty path yields the defaults (ip=127.0.0.1, port=10000, no
// records).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: opening config file: %v", dns.ErrConfig, err)
		}
		defer f.Close()
		if err := v.ReadConfig(f); err != nil {
			return nil, fmt.Errorf("%w: parsing config file: %v", dns.ErrConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding config: %v", dns.ErrConfig, err)
	}

	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadReader is like Load but reads the JSON document from r instead of
// opening a path, for callers that already have the bytes (tests, or an
// embedded default config).
func LoadReader(r io.Reader) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("%w: parsing config: %v", dns.ErrConfig, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding config: %v", dns.ErrConfig, err)
	}
	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ip", "127.0.0.1")
	v.SetDefault("port", 10000)
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.structured_format", "json")
	v.SetDefault("status_api.enabled", false)
	v.SetDefault("status_api.host", "127.0.0.1")
	v.SetDefault("status_api.port", 8080)
	v.SetDefault("query_log.enabled", false)
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.IP) == "" {
		cfg.IP = "127.0.0.1"
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port must be 1..65535", dns.ErrConfig)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	for _, r := range cfg.Records {
		if _, ok := dns.ParseRecordType(r.Type); !ok {
			return fmt.Errorf("%w: unrecognized record type %q for host %q", dns.ErrConfig, r.Type, r.Host)
		}
		if r.Host == "" {
			return errors.New("config error: record entry missing host")
		}
	}
	if cfg.StatusAPI.Enabled && (cfg.StatusAPI.Port <= 0 || cfg.StatusAPI.Port > 65535) {
		return fmt.Errorf("%w: status_api.port must be 1..65535", dns.ErrConfig)
	}
	return nil
}

// BuildTable constructs a populated record table from cfg.Records. The
// record-type validation already happened in normalize, so this never
// fails on a config that came from Load.
func BuildTable(cfg *Config) (*dns.RecordTable, error) {
	table := dns.NewRecordTable()
	entries := make([]dns.RecordEntry, 0, len(cfg.Records))
	for _, r := range cfg.Records {
		entries = append(entries, dns.RecordEntry{Type: r.Type, Host: r.Host, Response: r.Response})
	}
	if err := table.LoadEntries(entries); err != nil {
		return nil, err
	}
	return table, nil
}
