package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, the search loop, and the
// availability resolver.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Search contains the generation and selection loop configurations
	Search struct {
		// PoolSize is the number of raw candidates generated per attempt
		PoolSize int `env:"SEARCH_POOL_SIZE" env-default:"60" yaml:"poolSize"`
		// ShortlistSize is the number of top candidates availability-checked per attempt
		ShortlistSize int `env:"SEARCH_SHORTLIST_SIZE" env-default:"12" yaml:"shortlistSize"`
		// QualityThreshold is the minimum total score a candidate needs to be checked
		QualityThreshold float64 `env:"SEARCH_QUALITY_THRESHOLD" env-default:"75" yaml:"qualityThreshold"`
		// MeaningFloor is the minimum meaning score a candidate needs to survive
		MeaningFloor float64 `env:"SEARCH_MEANING_FLOOR" env-default:"60" yaml:"meaningFloor"`
		// MaxAttempts bounds the generate-check-relax loop
		MaxAttempts int `env:"SEARCH_MAX_ATTEMPTS" env-default:"5" yaml:"maxAttempts"`
		// TimeCap stops a run that takes longer, zero disables the cap
		TimeCap time.Duration `env:"SEARCH_TIME_CAP" env-default:"30s" yaml:"timeCap"`
		// TLD is the primary extension offered to the caller, without dot
		TLD string `env:"SEARCH_TLD" env-default:"com" yaml:"tld"`
		// AltTLDs are probed for near misses when the primary extension is taken
		AltTLDs []string `env:"SEARCH_ALT_TLDS" env-default:"io,co,ai" yaml:"altTlds"`
	} `yaml:"search"`

	// Availability contains the resolver and provider configurations
	Availability struct {
		// TTL is how long a confident verdict stays cached
		TTL time.Duration `env:"AVAILABILITY_TTL" env-default:"24h" yaml:"ttl"`
		// DegradedTTL is how long an all-providers-failed verdict stays cached
		DegradedTTL time.Duration `env:"AVAILABILITY_DEGRADED_TTL" env-default:"60s" yaml:"degradedTtl"`
		// MaxRetries is the number of retries per provider beyond the first try
		MaxRetries int `env:"AVAILABILITY_MAX_RETRIES" env-default:"2" yaml:"maxRetries"`
		// Backoff is the base delay between retries
		Backoff time.Duration `env:"AVAILABILITY_BACKOFF" env-default:"250ms" yaml:"backoff"`
		// Timeout bounds every single provider HTTP request
		Timeout time.Duration `env:"AVAILABILITY_TIMEOUT" env-default:"5s" yaml:"timeout"`
		// Concurrency bounds in-flight checks during a batch
		Concurrency int `env:"AVAILABILITY_CONCURRENCY" env-default:"6" yaml:"concurrency"`
		// RatePerSecond limits provider dispatches, zero disables the limiter
		RatePerSecond float64 `env:"AVAILABILITY_RATE_PER_SECOND" env-default:"10" yaml:"ratePerSecond"`
		// DNSEndpoint is the DNS-over-HTTPS JSON resolver URL
		DNSEndpoint string `env:"AVAILABILITY_DNS_ENDPOINT" env-default:"https://dns.google/resolve" yaml:"dnsEndpoint"`
		// RDAPEndpoint is the RDAP registry base URL for the .com zone
		RDAPEndpoint string `env:"AVAILABILITY_RDAP_ENDPOINT" env-default:"https://rdap.verisign.com/com/v1/domain/" yaml:"rdapEndpoint"` //nolint: lll
	} `yaml:"availability"`
}

// Load receives the path for yaml config file and returns a filled Config
// struct. An empty path reads from the environment and defaults only.
func Load(configPath string) (*Config, error) {
	var cfg Config
	var err error
	if configPath == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
