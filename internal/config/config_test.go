package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "six-degrees.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.RateLimit)
	assert.Equal(t, 5, cfg.MaxDepth)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 30, cfg.FanOut)
	assert.Equal(t, 100, cfg.MaxLinks)
	assert.True(t, cfg.Backlinks)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
rate_limit: 10
max_depth: 3
backlinks: false
timeout: 30s
cache:
  backend: s3
  s3:
    bucket: wiki-cache
    region: eu-west-1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.False(t, cfg.Backlinks)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "s3", cfg.Cache.Backend)
	assert.Equal(t, "wiki-cache", cfg.Cache.S3.Bucket)
	assert.Equal(t, "six-degrees/cache.json", cfg.Cache.S3.Key, "unset keys keep their defaults")
	assert.Equal(t, 30, cfg.FanOut)

	opts := cfg.SearchOptions()
	assert.Equal(t, 3, opts.MaxDepth)
	assert.False(t, opts.Backlinks)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "rate_limit: [1"},
		{"zero depth", "max_depth: 0"},
		{"negative rate", "rate_limit: -1"},
		{"unknown backend", "cache:\n  backend: redis"},
		{"s3 without bucket", "cache:\n  backend: s3"},
		{"badger without path", "cache:\n  path: \"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.MaxDepth = 0
	cfg.FanOut = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth")
	assert.Contains(t, err.Error(), "fan_out")
}
