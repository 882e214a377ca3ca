package autofind_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"namolux/internal/autofind"
	"namolux/internal/vocab"
	"namolux/pkg/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// stubChecker scripts availability per domain suffix or exact name and
// records everything it was asked about.
type stubChecker struct {
	mu        sync.Mutex
	requested []string
	available func(fqdn string) bool
	errors    uint64
}

func (s *stubChecker) CheckBatch(_ context.Context, fqdns []string) []domain.AvailabilityCheckResult {
	s.mu.Lock()
	s.requested = append(s.requested, fqdns...)
	s.mu.Unlock()

	results := make([]domain.AvailabilityCheckResult, len(fqdns))
	for i, fqdn := range fqdns {
		results[i] = domain.AvailabilityCheckResult{
			Domain:     fqdn,
			Available:  s.available(fqdn),
			Provider:   "stub",
			Confidence: domain.ConfidenceHigh,
		}
	}

	return results
}

func (s *stubChecker) ProviderErrors() uint64 { return s.errors }

func (s *stubChecker) requestedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requested)
}

func newFinder(t *testing.T, checker autofind.Checker, opts autofind.Options) *autofind.Finder {
	t.Helper()
	tables, err := vocab.Load()
	require.NoError(t, err)

	return autofind.New(tables, checker, opts)
}

func TestFinder_Run_endToEnd(t *testing.T) {
	checker := &stubChecker{available: func(_ string) bool { return true }}
	f := newFinder(t, checker, autofind.Options{})

	res := f.Run(context.Background(), domain.Request{
		Keyword:     "blink pixel snap",
		Industry:    "Technology",
		Vibe:        "futuristic",
		MaxLength:   9,
		TargetCount: 5,
		Controls:    domain.Controls{Seed: 7},
	})

	require.Len(t, res.Picks, 5)
	for _, p := range res.Picks {
		require.True(t, strings.HasSuffix(p.Domain, ".com"))
		require.Equal(t, p.Name+".com", p.Domain)
		require.GreaterOrEqual(t, p.Score, float64(autofind.DefaultQualityThreshold))
		require.True(t, p.Availability.Available)
		require.NotEmpty(t, p.Meaning)
		require.LessOrEqual(t, len(p.Name), 9)
	}

	s := res.Summary
	require.NotEqual(t, uuid.Nil, s.RunID)
	require.Equal(t, 1, s.Attempts, "everything available means one attempt suffices")
	require.GreaterOrEqual(t, s.Generated, s.PassedFilters)
	require.GreaterOrEqual(t, s.CheckedAvailability, 5)
	require.Equal(t, float64(1), s.HitRate)
	require.Empty(t, s.RelaxationsApplied)
	require.NotEmpty(t, s.Explanation)
}

func TestFinder_Run_isDeterministicForSameSeed(t *testing.T) {
	run := func() []string {
		checker := &stubChecker{available: func(_ string) bool { return true }}
		f := newFinder(t, checker, autofind.Options{})
		res := f.Run(context.Background(), domain.Request{
			Keyword:     "blink pixel snap",
			Industry:    "Technology",
			MaxLength:   9,
			TargetCount: 3,
			Controls:    domain.Controls{Seed: 42},
		})
		names := make([]string, 0, len(res.Picks))
		for _, p := range res.Picks {
			names = append(names, p.Name)
		}

		return names
	}

	require.Equal(t, run(), run())
}

func TestFinder_Run_emptyKeyword(t *testing.T) {
	checker := &stubChecker{available: func(_ string) bool { return true }}
	f := newFinder(t, checker, autofind.Options{})

	res := f.Run(context.Background(), domain.Request{Keyword: "   ", TargetCount: 3})
	require.Empty(t, res.Picks)
	require.Zero(t, res.Summary.Attempts)
	require.NotEmpty(t, res.Summary.Explanation)
	require.Zero(t, checker.requestedCount())
}

func TestFinder_Run_zeroTarget(t *testing.T) {
	checker := &stubChecker{available: func(_ string) bool { return true }}
	f := newFinder(t, checker, autofind.Options{})

	res := f.Run(context.Background(), domain.Request{Keyword: "blink"})
	require.Empty(t, res.Picks)
	require.Zero(t, checker.requestedCount())
}

func TestFinder_Run_relaxesConstraintsWhenNothingAvailable(t *testing.T) {
	checker := &stubChecker{available: func(_ string) bool { return false }}
	f := newFinder(t, checker, autofind.Options{})

	res := f.Run(context.Background(), domain.Request{
		Keyword:     "blink pixel snap",
		Industry:    "Technology",
		MaxLength:   9,
		TargetCount: 5,
		Controls:    domain.Controls{Seed: 7},
	})

	require.Empty(t, res.Picks)
	require.Equal(t, autofind.DefaultMaxAttempts, res.Summary.Attempts)
	require.NotEmpty(t, res.Summary.RelaxationsApplied)
	require.Equal(t, "Maximum length increased by 1 character", res.Summary.RelaxationsApplied[0],
		"relaxations must apply in menu order")
	require.Zero(t, res.Summary.HitRate)
	require.Contains(t, res.Summary.Explanation, "Fewer names than requested")
}

func TestFinder_Run_relaxesTooStrictMaxLength(t *testing.T) {
	checker := &stubChecker{available: func(_ string) bool { return true }}
	f := newFinder(t, checker, autofind.Options{})

	res := f.Run(context.Background(), domain.Request{
		Keyword:     "snap",
		Industry:    "Technology",
		MaxLength:   7,
		TargetCount: 3,
		Controls:    domain.Controls{Seed: 7},
	})

	require.GreaterOrEqual(t, len(res.Picks), 1)
	require.Contains(t, res.Summary.RelaxationsApplied, "Maximum length increased by 1 character")
	require.GreaterOrEqual(t, res.Summary.Attempts, 2)
	for _, p := range res.Picks {
		require.LessOrEqual(t, len(p.Name), 8)
	}
}

func TestFinder_Run_nearMissesOnAlternateTLDs(t *testing.T) {
	checker := &stubChecker{available: func(fqdn string) bool {
		return strings.HasSuffix(fqdn, ".io")
	}}
	f := newFinder(t, checker, autofind.Options{
		MaxAttempts: 1,
		AltTLDs:     []string{"io", "co"},
	})

	res := f.Run(context.Background(), domain.Request{
		Keyword:     "blink pixel snap",
		Industry:    "Technology",
		MaxLength:   9,
		TargetCount: 5,
		Controls:    domain.Controls{Seed: 7},
	})

	require.Empty(t, res.Picks, "primary extension was fully taken")
	require.NotEmpty(t, res.Summary.NearMisses)
	for _, nm := range res.Summary.NearMisses {
		require.Equal(t, "io", nm.TLD)
		require.Equal(t, nm.Name+".io", nm.Domain)
		require.Positive(t, nm.Score)
	}
}

func TestFinder_Run_neverRechecksPickedNames(t *testing.T) {
	checker := &stubChecker{available: func(_ string) bool { return true }}
	f := newFinder(t, checker, autofind.Options{ShortlistSize: 4})

	res := f.Run(context.Background(), domain.Request{
		Keyword:     "blink pixel snap",
		Industry:    "Technology",
		MaxLength:   9,
		TargetCount: 10,
		Controls:    domain.Controls{Seed: 7},
	})

	checker.mu.Lock()
	defer checker.mu.Unlock()
	seen := map[string]int{}
	for _, fqdn := range checker.requested {
		seen[fqdn]++
		require.Equal(t, 1, seen[fqdn], "domain %s was checked twice", fqdn)
	}
	require.LessOrEqual(t, len(res.Picks), 10)
}

func TestFinder_Run_stopsAtTimeCap(t *testing.T) {
	checker := &stubChecker{available: func(_ string) bool { return false }}

	base := time.Unix(1_700_000_000, 0)
	var calls int
	clock := func() time.Time {
		calls++

		return base.Add(time.Duration(calls) * 40 * time.Millisecond)
	}
	f := newFinder(t, checker, autofind.Options{
		TimeCap: 50 * time.Millisecond,
		Now:     clock,
	})

	res := f.Run(context.Background(), domain.Request{
		Keyword:     "blink pixel snap",
		Industry:    "Technology",
		MaxLength:   9,
		TargetCount: 5,
		Controls:    domain.Controls{Seed: 7},
	})

	require.Empty(t, res.Picks)
	require.GreaterOrEqual(t, res.Summary.Attempts, 1)
	require.Less(t, res.Summary.Attempts, autofind.DefaultMaxAttempts,
		"the cap must end the run before the attempt budget does")
	require.Positive(t, res.Summary.Elapsed)
}

func TestFinder_Run_showAnyAvailableSkipsQualityGate(t *testing.T) {
	run := func(show bool) domain.Result {
		checker := &stubChecker{available: func(_ string) bool { return true }}
		f := newFinder(t, checker, autofind.Options{
			QualityThreshold: 99,
			MaxAttempts:      1,
		})

		return f.Run(context.Background(), domain.Request{
			Keyword:     "blink pixel snap",
			Industry:    "Technology",
			MaxLength:   9,
			TargetCount: 3,
			Controls:    domain.Controls{Seed: 7, ShowAnyAvailable: show},
		})
	}

	strict := run(false)
	require.Empty(t, strict.Picks, "nothing scores 99, so the gate rejects the whole pool")
	found := false
	for _, rc := range strict.Summary.TopRejectionReasons {
		if rc.Reason == autofind.ReasonBelowThreshold {
			found = true
			require.Positive(t, rc.Count)
		}
	}
	require.True(t, found, "sub-threshold survivors must be counted")

	lenient := run(true)
	require.Len(t, lenient.Picks, 3)
	for _, p := range lenient.Picks {
		require.Less(t, p.Score, float64(99))
		require.True(t, p.Availability.Available)
	}
}

func TestFinder_Run_respectsContextCancellation(t *testing.T) {
	checker := &stubChecker{available: func(_ string) bool { return false }}
	f := newFinder(t, checker, autofind.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := f.Run(ctx, domain.Request{Keyword: "blink", TargetCount: 3})
	require.Empty(t, res.Picks)
	require.Zero(t, res.Summary.Attempts)
	require.Zero(t, checker.requestedCount())
}
