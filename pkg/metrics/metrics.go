// Package metrics wires the OpenTelemetry meter used by the engine to a
// Prometheus exporter and defines the instruments the availability resolver
// records into. All recording helpers are nil-safe so the engine can run
// without metrics in tests and library embeddings.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets is the shared set of latency histogram buckets in seconds.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Engine holds the instruments recorded by the availability resolver and the
// search loop. A nil *Engine is a valid no-op recorder.
type Engine struct {
	providerRequests metric.Int64Counter
	providerErrors   metric.Int64Counter
	cacheHits        metric.Int64Counter
	checkLatency     metric.Float64Histogram
}

// NewEngine creates the engine instruments on the given meter provider.
func NewEngine(mp metric.MeterProvider) (*Engine, error) {
	meter := mp.Meter("namolux/engine")

	requests, err := meter.Int64Counter("availability_provider_requests_total",
		metric.WithDescription("Provider lookups attempted, by provider and outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create provider requests counter: %w", err)
	}

	errs, err := meter.Int64Counter("availability_provider_errors_total",
		metric.WithDescription("Provider lookups that ended in an error, by provider."))
	if err != nil {
		return nil, fmt.Errorf("could not create provider errors counter: %w", err)
	}

	hits, err := meter.Int64Counter("availability_cache_hits_total",
		metric.WithDescription("Availability verdicts served from the TTL cache."))
	if err != nil {
		return nil, fmt.Errorf("could not create cache hits counter: %w", err)
	}

	latency, err := meter.Float64Histogram("availability_check_seconds",
		metric.WithDescription("Wall time of a full availability check."),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create check latency histogram: %w", err)
	}

	return &Engine{
		providerRequests: requests,
		providerErrors:   errs,
		cacheHits:        hits,
		checkLatency:     latency,
	}, nil
}

// ProviderRequest records one provider lookup attempt.
func (e *Engine) ProviderRequest(ctx context.Context, provider, outcome string) {
	if e == nil {
		return
	}
	e.providerRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome)))
}

// ProviderError records one failed provider lookup.
func (e *Engine) ProviderError(ctx context.Context, provider string) {
	if e == nil {
		return
	}
	e.providerErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", provider)))
}

// CacheHit records one verdict served from the cache.
func (e *Engine) CacheHit(ctx context.Context) {
	if e == nil {
		return
	}
	e.cacheHits.Add(ctx, 1)
}

// CheckLatency records the wall time of a full availability check.
func (e *Engine) CheckLatency(ctx context.Context, seconds float64) {
	if e == nil {
		return
	}
	e.checkLatency.Record(ctx, seconds)
}

// SetupPrometheus creates a meter provider backed by the default Prometheus
// registry and returns it together with the /metrics HTTP handler.
func SetupPrometheus() (metric.MeterProvider, http.Handler, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return nil, nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), promhttp.Handler(), nil
}
