package domain

// Confidence is the resolver's trust level in an availability verdict,
// driven by which provider and registry signal produced it.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// AvailabilityCheckResult is the outcome of resolving one fully-qualified
// domain against the registries. Exactly one result exists per queried
// domain; failures are folded into a degraded result instead of an error.
type AvailabilityCheckResult struct {
	// Domain is the fully-qualified domain that was checked, lowercased.
	Domain string `json:"domain"`
	// Available is the registration verdict. The resolver is conservative:
	// a domain counts as taken unless a registry explicitly signals otherwise.
	Available bool `json:"available"`
	// Provider names the provider that produced the verdict, or "none" when
	// every provider failed.
	Provider string `json:"provider"`
	// LatencyMs is the wall time spent resolving, zero on cache hits.
	LatencyMs int64 `json:"latencyMs"`
	// Cached marks a verdict served from the TTL cache.
	Cached bool `json:"cached,omitempty"`
	// Confidence grades the verdict; degraded outcomes are low.
	Confidence Confidence `json:"confidence"`
	// Error carries the failure tag for degraded results, empty otherwise.
	Error string `json:"error,omitempty"`
}

// Degraded reports whether this result was synthesized from provider
// failures rather than a registry signal.
func (r AvailabilityCheckResult) Degraded() bool { return r.Error != "" }
