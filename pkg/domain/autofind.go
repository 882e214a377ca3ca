package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunID uniquely identifies one AutoFind invocation in logs and summaries.
type RunID = uuid.UUID

// Request is the inbound contract of the engine. It is handed over by the
// surrounding product after authorization and credit checks have passed.
type Request struct {
	Keyword     string   `json:"keyword"`
	Industry    string   `json:"industry,omitempty"`
	Vibe        string   `json:"vibe,omitempty"`
	MaxLength   int      `json:"maxLength,omitempty"`
	TargetCount int      `json:"targetCount,omitempty"`
	Controls    Controls `json:"controls"`
}

// RelaxationStep is one discrete loosening of a generation or filter
// constraint, applied between attempts when too few picks are found.
type RelaxationStep struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Applied bool   `json:"applied"`
}

// Pick is an accepted candidate: it passed the filters, met the quality
// threshold, and its domain was confirmed available.
type Pick struct {
	ScoredCandidate

	// Domain is the fully-qualified domain that was confirmed available.
	Domain string `json:"domain"`
	// Availability is the resolver verdict that confirmed the pick.
	Availability AvailabilityCheckResult `json:"availability"`
}

// ReasonCount pairs a rejection reason tag with its frequency.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// NearMiss is a candidate that was unavailable on the requested TLD but
// available on an alternate one.
type NearMiss struct {
	Name   string  `json:"name"`
	Domain string  `json:"domain"`
	TLD    string  `json:"tld"`
	Score  float64 `json:"score"`
}

// RunSummary is the diagnostic aggregate for one AutoFind invocation.
type RunSummary struct {
	RunID RunID `json:"runId"`

	Generated           int     `json:"generated"`
	PassedFilters       int     `json:"passedFilters"`
	CheckedAvailability int     `json:"checkedAvailability"`
	ProviderErrors      int     `json:"providerErrors"`
	HitRate             float64 `json:"hitRate"`

	Attempts            int           `json:"attempts"`
	RelaxationsApplied  []string      `json:"relaxationsApplied,omitempty"`
	TopRejectionReasons []ReasonCount `json:"topRejectionReasons,omitempty"`
	NearMisses          []NearMiss    `json:"nearMisses,omitempty"`

	Elapsed time.Duration `json:"elapsed"`
	// Explanation is a natural-language account of how the run went, meant
	// for operator and UI surfacing.
	Explanation string `json:"explanation"`
}

// Result is the outbound contract: the ranked accepted picks plus the
// diagnostic summary. Picks never exceed the requested target count.
type Result struct {
	Picks   []Pick     `json:"picks"`
	Summary RunSummary `json:"summary"`
}
