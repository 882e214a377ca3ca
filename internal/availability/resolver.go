package availability

import (
	"context"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"namolux/pkg/domain"
	"namolux/pkg/logger"
	"namolux/pkg/metrics"
)

// Provider is one independent source of registration verdicts.
//
// Check returns (nil, nil) when the provider does not apply to the domain
// (for example an RDAP endpoint restricted to one TLD), in which case the
// resolver moves on to the next provider without counting an error.
type Provider interface {
	Name() string
	Check(ctx context.Context, fqdn string) (*domain.AvailabilityCheckResult, error)
}

// Defaults for resolver options.
const (
	DefaultTTL         = 24 * time.Hour
	DefaultDegradedTTL = 60 * time.Second
	DefaultMaxRetries  = 2
	DefaultBackoff     = 250 * time.Millisecond
	DefaultConcurrency = 6
)

// ErrorAvailabilityUnknown tags the degraded verdict produced when every
// provider failed.
const ErrorAvailabilityUnknown = "availability_unknown"

// Options configure a Resolver. Zero values fall back to the defaults above.
type Options struct {
	// Providers are consulted in priority order.
	Providers []Provider
	// TTL caches confident verdicts.
	TTL time.Duration
	// DegradedTTL caps how long an all-providers-failed verdict lives, so
	// transient failures are re-checked soon.
	DegradedTTL time.Duration
	// MaxRetries is the number of retries per provider beyond the first try.
	MaxRetries int
	// Backoff is the base delay between retries; it doubles per attempt with
	// a small random jitter.
	Backoff time.Duration
	// Concurrency bounds in-flight checks in CheckBatch.
	Concurrency int
	// Limiter, when set, gates every provider dispatch.
	Limiter *rate.Limiter
	// Metrics, when set, records provider and cache activity.
	Metrics *metrics.Engine
	// Now is the clock used for latency measurement; nil means time.Now.
	Now func() time.Time
}

// Resolver answers availability questions through the provider chain and
// the shared cache. Safe for concurrent use.
type Resolver struct {
	cache *Cache
	opts  Options

	// providerErrors counts failed provider attempts over the resolver's
	// lifetime. Callers snapshot it around a batch to attribute errors.
	providerErrors atomic.Uint64
}

// NewResolver creates a resolver over the given cache.
func NewResolver(cache *Cache, opts Options) *Resolver {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.DegradedTTL <= 0 {
		opts.DegradedTTL = DefaultDegradedTTL
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	} else if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if cache == nil {
		cache = NewCache(opts.Now)
	}

	return &Resolver{cache: cache, opts: opts}
}

// ProviderErrors returns the cumulative count of failed provider attempts.
func (r *Resolver) ProviderErrors() uint64 {
	return r.providerErrors.Load()
}

// Check resolves a single domain. It never returns an error: when every
// provider fails, the verdict is a low-confidence "assume taken" result
// cached only briefly.
func (r *Resolver) Check(ctx context.Context, fqdn string) domain.AvailabilityCheckResult {
	key := strings.ToLower(strings.TrimSpace(fqdn))
	start := r.opts.Now()

	if res, ok := r.cache.Get(key); ok {
		res.Cached = true
		res.LatencyMs = 0
		r.opts.Metrics.CacheHit(ctx)

		return res
	}

	for _, p := range r.opts.Providers {
		res, applicable := r.checkProvider(ctx, p, key)
		if !applicable || res == nil {
			continue
		}
		res.Domain = key
		res.Provider = p.Name()
		res.LatencyMs = r.opts.Now().Sub(start).Milliseconds()
		r.cache.Set(key, *res, r.opts.TTL)
		r.opts.Metrics.CheckLatency(ctx, float64(res.LatencyMs)/1000)

		return *res
	}

	// conservative on uncertainty: a domain counts as taken until a registry
	// says otherwise
	degraded := domain.AvailabilityCheckResult{
		Domain:     key,
		Available:  false,
		Provider:   "none",
		LatencyMs:  r.opts.Now().Sub(start).Milliseconds(),
		Confidence: domain.ConfidenceLow,
		Error:      ErrorAvailabilityUnknown,
	}
	ttl := r.opts.DegradedTTL
	if r.opts.TTL < ttl {
		ttl = r.opts.TTL
	}
	r.cache.Set(key, degraded, ttl)

	return degraded
}

// checkProvider runs one provider with retries and backoff. The second
// return value is false when the provider declared itself not applicable.
func (r *Resolver) checkProvider(ctx context.Context, p Provider, key string) (*domain.AvailabilityCheckResult, bool) {
	for attempt := 0; attempt <= r.opts.MaxRetries; attempt++ {
		if r.opts.Limiter != nil {
			if err := r.opts.Limiter.Wait(ctx); err != nil {
				return nil, true
			}
		}

		res, err := p.Check(ctx, key)
		if err == nil && res == nil {
			return nil, false
		}
		if err == nil {
			r.opts.Metrics.ProviderRequest(ctx, p.Name(), "ok")

			return res, true
		}

		r.providerErrors.Add(1)
		r.opts.Metrics.ProviderRequest(ctx, p.Name(), "error")
		r.opts.Metrics.ProviderError(ctx, p.Name())
		logger.Debug(ctx, "provider check failed",
			zap.String("provider", p.Name()),
			zap.String("domain", key),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == r.opts.MaxRetries {
			break
		}
		if !sleepBackoff(ctx, r.opts.Backoff, attempt) {
			break
		}
	}

	return nil, true
}

// sleepBackoff waits backoff*2^attempt plus jitter, honoring cancellation.
// It reports false when the context was canceled during the wait.
func sleepBackoff(ctx context.Context, backoff time.Duration, attempt int) bool {
	delay := backoff << uint(attempt) //nolint: gosec
	jitter := time.Duration(rand.Int63n(int64(backoff)/4 + 1))

	timer := time.NewTimer(delay + jitter)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
