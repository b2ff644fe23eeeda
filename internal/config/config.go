// Package config loads the TOML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abelbrown/hncli/internal/cache"
	"github.com/abelbrown/hncli/internal/fetch"
	"github.com/abelbrown/hncli/internal/hn"
	"github.com/abelbrown/hncli/internal/logging"
)

// Config is the application configuration
type Config struct {
	// APIURL is the Firebase REST root
	APIURL string `toml:"api_url"`

	// List is the ranked list to browse (topstories, newstories, ...)
	List string `toml:"list"`

	// Browser overrides the platform URL opener
	Browser string `toml:"browser,omitempty"`

	// MetricsAddr serves /metrics when set, e.g. "127.0.0.1:9100"
	MetricsAddr string `toml:"metrics_addr,omitempty"`

	Cache CacheConfig `toml:"cache"`
	Fetch FetchConfig `toml:"fetch"`
	Log   LogConfig   `toml:"log"`
}

// CacheConfig selects the item cache backend
type CacheConfig struct {
	Backend string `toml:"backend"` // "memory" or "sqlite"
}

// FetchConfig tunes upstream reads
type FetchConfig struct {
	Timeout        Duration `toml:"timeout"`
	Retries        int      `toml:"retries"`
	MaxConcurrency int      `toml:"max_concurrency"`
	RatePerSecond  float64  `toml:"rate_per_second"` // 0 = unlimited
}

// LogConfig controls the diagnostic log
type LogConfig struct {
	Dir    string `toml:"dir"`
	Prefix string `toml:"prefix"`
	Level  string `toml:"level"`
}

// Duration is a time.Duration written as text ("30s") in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		APIURL: fetch.DefaultBaseURL,
		List:   hn.DefaultList,
		Cache: CacheConfig{
			Backend: cache.BackendMemory,
		},
		Fetch: FetchConfig{
			Timeout:        Duration{30 * time.Second},
			Retries:        2,
			MaxConcurrency: fetch.DefaultMaxConcurrency,
			RatePerSecond:  0,
		},
		Log: LogConfig{
			Dir:    logging.DefaultDir,
			Prefix: logging.DefaultPrefix,
			Level:  "debug",
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hn", "config.toml")
}

// Load reads the config at path on top of the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		errs = append(errs, fmt.Errorf("api_url %q must be an http(s) URL", c.APIURL))
	}
	if !hn.ValidList(c.List) {
		errs = append(errs, fmt.Errorf("unknown list %q (want one of %s)", c.List, strings.Join(hn.Lists, ", ")))
	}
	switch c.Cache.Backend {
	case cache.BackendMemory, cache.BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}
	if c.Fetch.Timeout.Duration <= 0 {
		errs = append(errs, errors.New("fetch.timeout must be positive"))
	}
	if c.Fetch.Retries < 0 {
		errs = append(errs, errors.New("fetch.retries must not be negative"))
	}
	if c.Fetch.MaxConcurrency <= 0 {
		errs = append(errs, errors.New("fetch.max_concurrency must be positive"))
	}
	if c.Fetch.RatePerSecond < 0 {
		errs = append(errs, errors.New("fetch.rate_per_second must not be negative"))
	}
	return errors.Join(errs...)
}

// FetchOptions converts the fetch settings for fetch.NewFetcher.
func (c *Config) FetchOptions() fetch.Options {
	return fetch.Options{
		BaseURL:       c.APIURL,
		Timeout:       c.Fetch.Timeout.Duration,
		Retries:       c.Fetch.Retries,
		RatePerSecond: c.Fetch.RatePerSecond,
	}
}

// LogOptions converts the log settings for logging.Init.
func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Dir:    c.Log.Dir,
		Prefix: c.Log.Prefix,
		Level:  c.Log.Level,
	}
}
