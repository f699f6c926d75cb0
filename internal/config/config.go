// Package config holds runtime settings loaded from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/six-degrees/internal/cache"
	"github.com/pfrederiksen/six-degrees/internal/linksource"
	"github.com/pfrederiksen/six-degrees/internal/search"
	"github.com/pfrederiksen/six-degrees/internal/wiki"
)

// Config holds all settings. Zero values are filled from Default.
type Config struct {
	RateLimit int           `yaml:"rate_limit"`
	MaxDepth  int           `yaml:"max_depth"`
	BatchSize int           `yaml:"batch_size"`
	FanOut    int           `yaml:"fan_out"`
	MaxLinks  int           `yaml:"max_links"`
	Backlinks bool          `yaml:"backlinks"`
	Language  string        `yaml:"language"`
	UserAgent string        `yaml:"user_agent"`
	Endpoint  string        `yaml:"endpoint"`
	Timeout   time.Duration `yaml:"timeout"`
	Retries   int           `yaml:"retries"`
	GraphFile string        `yaml:"graph_file"`
	Cache     CacheConfig   `yaml:"cache"`
	Serve     ServeConfig   `yaml:"serve"`
}

// CacheConfig selects the link cache backend
type CacheConfig struct {
	Backend string   `yaml:"backend"`
	Path    string   `yaml:"path"`
	S3      S3Config `yaml:"s3"`
}

// S3Config locates the cache snapshot for the s3 backend
type S3Config struct {
	Bucket  string `yaml:"bucket"`
	Key     string `yaml:"key"`
	Profile string `yaml:"profile"`
	Region  string `yaml:"region"`
}

// ServeConfig configures the HTTP API
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		RateLimit: 50,
		MaxDepth:  search.DefaultMaxDepth,
		BatchSize: search.DefaultBatchSize,
		FanOut:    search.DefaultFanOut,
		MaxLinks:  linksource.DefaultMaxLinks,
		Backlinks: true,
		Language:  wiki.DefaultLanguage,
		UserAgent: wiki.DefaultUserAgent,
		Endpoint:  wiki.DefaultEndpoint,
		Timeout:   wiki.DefaultTimeout,
		Retries:   2,
		Cache: CacheConfig{
			Backend: cache.BackendBadger,
			Path:    "wiki_cache",
			S3: S3Config{
				Key: "six-degrees/cache.json",
			},
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// SearchOptions converts the config to engine options
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		MaxDepth:  c.MaxDepth,
		BatchSize: c.BatchSize,
		FanOut:    c.FanOut,
		Backlinks: c.Backlinks,
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error

	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rate_limit must not be negative"))
	}
	if c.MaxDepth < 1 {
		errs = append(errs, errors.New("max_depth must be at least 1"))
	}
	if c.BatchSize < 1 {
		errs = append(errs, errors.New("batch_size must be at least 1"))
	}
	if c.FanOut < 1 {
		errs = append(errs, errors.New("fan_out must be at least 1"))
	}
	if c.MaxLinks < 1 {
		errs = append(errs, errors.New("max_links must be at least 1"))
	}
	if c.Retries < 0 {
		errs = append(errs, errors.New("retries must not be negative"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}

	switch c.Cache.Backend {
	case cache.BackendMemory:
	case cache.BackendBadger:
		if c.Cache.Path == "" {
			errs = append(errs, errors.New("cache.path is required for the badger backend"))
		}
	case cache.BackendS3:
		if c.Cache.S3.Bucket == "" {
			errs = append(errs, errors.New("cache.s3.bucket is required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}

	return errors.Join(errs...)
}
