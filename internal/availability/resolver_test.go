package availability_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"namolux/internal/availability"
	"namolux/pkg/domain"

	"github.com/stretchr/testify/require"
)

// fakeProvider scripts verdicts and counts invocations.
type fakeProvider struct {
	name  string
	calls atomic.Int64
	check func(ctx context.Context, fqdn string) (*domain.AvailabilityCheckResult, error)
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Check(ctx context.Context, fqdn string) (*domain.AvailabilityCheckResult, error) {
	f.calls.Add(1)

	return f.check(ctx, fqdn)
}

func alwaysAvailable(name string) *fakeProvider {
	return &fakeProvider{name: name, check: func(_ context.Context, _ string) (*domain.AvailabilityCheckResult, error) {
		return &domain.AvailabilityCheckResult{Available: true, Confidence: domain.ConfidenceHigh}, nil
	}}
}

func alwaysFailing(name string) *fakeProvider {
	return &fakeProvider{name: name, check: func(_ context.Context, _ string) (*domain.AvailabilityCheckResult, error) {
		return nil, errors.New("boom")
	}}
}

// fastOpts keeps retries and backoff negligible for tests.
func fastOpts(providers ...availability.Provider) availability.Options {
	return availability.Options{
		Providers:  providers,
		MaxRetries: 1,
		Backoff:    time.Millisecond,
	}
}

func TestResolver_Check_cachesSecondLookup(t *testing.T) {
	p := alwaysAvailable("dns")
	r := availability.NewResolver(nil, fastOpts(p))

	first := r.Check(context.Background(), "Blinex.com")
	require.True(t, first.Available)
	require.Equal(t, "blinex.com", first.Domain)
	require.Equal(t, "dns", first.Provider)
	require.False(t, first.Cached)

	second := r.Check(context.Background(), "blinex.com")
	require.True(t, second.Available)
	require.True(t, second.Cached)
	require.Zero(t, second.LatencyMs)
	require.Equal(t, int64(1), p.calls.Load(), "second lookup must not reach the provider")
}

func TestResolver_Check_fallsThroughToSecondProvider(t *testing.T) {
	bad := alwaysFailing("dns")
	good := alwaysAvailable("rdap")
	r := availability.NewResolver(nil, fastOpts(bad, good))

	res := r.Check(context.Background(), "blinex.com")
	require.True(t, res.Available)
	require.Equal(t, "rdap", res.Provider)
	require.Empty(t, res.Error)
	require.Equal(t, uint64(2), r.ProviderErrors(), "each failed attempt counts")
}

func TestResolver_Check_skipsNotApplicableProvider(t *testing.T) {
	na := &fakeProvider{name: "rdap", check: func(_ context.Context, _ string) (*domain.AvailabilityCheckResult, error) {
		return nil, nil
	}}
	good := alwaysAvailable("dns")
	r := availability.NewResolver(nil, fastOpts(na, good))

	res := r.Check(context.Background(), "blinex.io")
	require.True(t, res.Available)
	require.Equal(t, "dns", res.Provider)
	require.Equal(t, int64(1), na.calls.Load(), "not-applicable providers are not retried")
	require.Zero(t, r.ProviderErrors())
}

func TestResolver_Check_degradedWhenAllProvidersFail(t *testing.T) {
	r := availability.NewResolver(nil, fastOpts(alwaysFailing("dns"), alwaysFailing("rdap")))

	res := r.Check(context.Background(), "blinex.com")
	require.False(t, res.Available, "uncertainty must not be reported as available")
	require.Equal(t, "none", res.Provider)
	require.Equal(t, domain.ConfidenceLow, res.Confidence)
	require.Equal(t, availability.ErrorAvailabilityUnknown, res.Error)
	require.True(t, res.Degraded())
}

func TestResolver_Check_ttlExpiryRechecks(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	cache := availability.NewCache(clock)

	p := alwaysAvailable("dns")
	opts := fastOpts(p)
	opts.TTL = time.Minute
	opts.Now = clock
	r := availability.NewResolver(cache, opts)

	r.Check(context.Background(), "blinex.com")
	require.Equal(t, int64(1), p.calls.Load())

	now = now.Add(30 * time.Second)
	require.True(t, r.Check(context.Background(), "blinex.com").Cached)
	require.Equal(t, int64(1), p.calls.Load())

	now = now.Add(45 * time.Second)
	res := r.Check(context.Background(), "blinex.com")
	require.False(t, res.Cached)
	require.Equal(t, int64(2), p.calls.Load(), "expired entries go back to the provider")
}

func TestResolver_Check_degradedEntryExpiresQuickly(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	cache := availability.NewCache(clock)

	p := alwaysFailing("dns")
	opts := fastOpts(p)
	opts.TTL = time.Hour
	opts.DegradedTTL = 10 * time.Second
	opts.Now = clock
	r := availability.NewResolver(cache, opts)

	require.True(t, r.Check(context.Background(), "blinex.com").Degraded())
	callsAfterFirst := p.calls.Load()

	now = now.Add(11 * time.Second)
	require.True(t, r.Check(context.Background(), "blinex.com").Degraded())
	require.Greater(t, p.calls.Load(), callsAfterFirst, "degraded verdicts must be re-checked soon")
}

func TestResolver_CheckBatch_dedupesRepeatedDomains(t *testing.T) {
	p := alwaysAvailable("dns")
	r := availability.NewResolver(nil, fastOpts(p))

	results := r.CheckBatch(context.Background(), []string{"x.com", "X.com", " x.com "})
	require.Len(t, results, 1)
	require.Equal(t, "x.com", results[0].Domain)
	require.Equal(t, int64(1), p.calls.Load(), "repeated domains collapse to one check")
}

func TestResolver_CheckBatch_preservesInputOrder(t *testing.T) {
	p := alwaysAvailable("dns")
	opts := fastOpts(p)
	opts.Concurrency = 2
	r := availability.NewResolver(nil, opts)

	in := []string{"a.com", "b.com", "c.com", "d.com", "e.com"}
	results := r.CheckBatch(context.Background(), in)
	require.Len(t, results, len(in))
	for i, fqdn := range in {
		require.Equal(t, fqdn, results[i].Domain)
	}
	require.Equal(t, int64(len(in)), p.calls.Load())
}

func TestResolver_CheckBatch_empty(t *testing.T) {
	r := availability.NewResolver(nil, fastOpts(alwaysAvailable("dns")))
	require.Empty(t, r.CheckBatch(context.Background(), nil))
}

func TestCache_SetGetAndExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := availability.NewCache(func() time.Time { return now })

	c.Set("x.com", domain.AvailabilityCheckResult{Domain: "x.com", Available: true}, time.Minute)
	got, ok := c.Get("x.com")
	require.True(t, ok)
	require.True(t, got.Available)
	require.Equal(t, 1, c.Len())

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("x.com")
	require.False(t, ok)
	require.Zero(t, c.Len(), "expired entries are evicted on lookup")
}
