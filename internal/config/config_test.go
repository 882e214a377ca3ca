package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"namolux/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 60, cfg.Search.PoolSize)
	require.Equal(t, 12, cfg.Search.ShortlistSize)
	require.Equal(t, float64(75), cfg.Search.QualityThreshold)
	require.Equal(t, float64(60), cfg.Search.MeaningFloor)
	require.Equal(t, "com", cfg.Search.TLD)
	require.Equal(t, []string{"io", "co", "ai"}, cfg.Search.AltTLDs)
	require.Equal(t, 24*time.Hour, cfg.Availability.TTL)
	require.Equal(t, 60*time.Second, cfg.Availability.DegradedTTL)
	require.Equal(t, 6, cfg.Availability.Concurrency)
	require.Equal(t, "https://dns.google/resolve", cfg.Availability.DNSEndpoint)
}

func TestLoad_env(t *testing.T) {
	t.Setenv("SEARCH_TLD", "io")
	t.Setenv("AVAILABILITY_MAX_RETRIES", "4")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "io", cfg.Search.TLD)
	require.Equal(t, 4, cfg.Availability.MaxRetries)
}

func TestLoad_yaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
environment: production
search:
  poolSize: 90
  tld: dev
availability:
  ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, 90, cfg.Search.PoolSize)
	require.Equal(t, "dev", cfg.Search.TLD)
	require.Equal(t, time.Hour, cfg.Availability.TTL)
}

func TestLoad_missingFile(t *testing.T) {
	_, err := config.Load("/does/not/exist.yaml")
	require.Error(t, err)
}
