// Package autofind orchestrates one end-to-end discovery run: generate a
// candidate pool, filter it, score and rank the survivors, check the best
// ones for availability, and when the yield falls short, progressively relax
// the search constraints and try again.
package autofind

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"namolux/internal/filter"
	"namolux/internal/generator"
	"namolux/internal/scoring"
	"namolux/internal/vocab"
	"namolux/pkg/domain"
	"namolux/pkg/logger"
)

// Rejection reason tags added by the orchestrator on top of the filter's.
const (
	ReasonWeakMeaning    = "weak_meaning"
	ReasonBelowThreshold = "below_quality_threshold"
)

// Defaults for finder options.
const (
	DefaultShortlistSize    = 12
	DefaultQualityThreshold = 75
	DefaultMaxAttempts      = 5
	DefaultTLD              = "com"
)

// topRejectionReasons caps how many reason tags the summary reports.
const topRejectionReasons = 5

// nearMissProbesPerAttempt caps how many unavailable candidates get
// alternate-TLD probes in one attempt.
const nearMissProbesPerAttempt = 2

// Checker resolves availability for a batch of domains. Satisfied by
// availability.Resolver; tests substitute scripted implementations.
type Checker interface {
	CheckBatch(ctx context.Context, fqdns []string) []domain.AvailabilityCheckResult
	ProviderErrors() uint64
}

// Options tune a Finder. Zero values fall back to the defaults above.
type Options struct {
	// PoolSize is forwarded to the generator.
	PoolSize int
	// ShortlistSize bounds how many candidates get availability-checked per
	// attempt.
	ShortlistSize int
	// QualityThreshold is the minimum total score a candidate needs before
	// its domain is worth checking.
	QualityThreshold float64
	// MeaningFloor is the minimum meaning score; candidates the meaning
	// builder cannot account for are dropped.
	MeaningFloor float64
	// MaxAttempts bounds the generate-check-relax loop.
	MaxAttempts int
	// TimeCap, when positive, stops the loop once the run has taken longer.
	TimeCap time.Duration
	// TLD is the primary extension, without dot.
	TLD string
	// AltTLDs are probed for near misses when the primary TLD is taken.
	AltTLDs []string
	// Now is the run clock; nil means time.Now.
	Now func() time.Time
}

// Finder runs the discovery loop. Safe for concurrent use; each Run carries
// its own state.
type Finder struct {
	gen     *generator.Generator
	scorer  *scoring.Pipeline
	tables  *vocab.Tables
	checker Checker
	opts    Options
}

// New creates a Finder over the given vocabulary and availability checker.
func New(tables *vocab.Tables, checker Checker, opts Options) *Finder {
	if opts.ShortlistSize <= 0 {
		opts.ShortlistSize = DefaultShortlistSize
	}
	if opts.QualityThreshold <= 0 {
		opts.QualityThreshold = DefaultQualityThreshold
	}
	if opts.MeaningFloor <= 0 {
		opts.MeaningFloor = scoring.MeaningFloor
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.TLD == "" {
		opts.TLD = DefaultTLD
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Finder{
		gen:     generator.New(tables),
		scorer:  scoring.New(tables),
		tables:  tables,
		checker: checker,
		opts:    opts,
	}
}

// runState is the mutable state of one Run.
type runState struct {
	input   generator.Input
	picks   []domain.Pick
	picked  map[string]bool
	checked map[string]bool

	generated     int
	passedFilters int
	checkedCount  int
	availableHits int
	reasons       map[string]int
	nearMisses    []domain.NearMiss
	relaxations   []string
}

// Run executes the full discovery loop for one request. It never returns an
// error: malformed requests yield an empty, well-formed result, and provider
// trouble degrades into fewer picks with the shortfall explained in the
// summary.
func (f *Finder) Run(ctx context.Context, req domain.Request) domain.Result {
	runID := uuid.New()
	start := f.opts.Now()
	ctx = logger.WithFields(ctx, zap.String("runId", runID.String()))

	st := &runState{
		input: generator.Input{
			Keyword:   req.Keyword,
			Industry:  req.Industry,
			Vibe:      req.Vibe,
			MaxLength: req.MaxLength,
			Controls:  req.Controls.Normalized(),
		},
		picked:  map[string]bool{},
		checked: map[string]bool{},
		reasons: map[string]int{},
	}
	if st.input.MaxLength <= 0 {
		st.input.MaxLength = filter.DefaultMaxLength
	}

	target := req.TargetCount
	if strings.TrimSpace(req.Keyword) == "" || target <= 0 {
		return domain.Result{Summary: domain.RunSummary{
			RunID:       runID,
			Elapsed:     f.opts.Now().Sub(start),
			Explanation: "Nothing to search for: the request had no keyword or asked for zero names.",
		}}
	}

	errsBefore := f.checker.ProviderErrors()
	relaxMenu := f.relaxationMenu()

	attempts := 0
	for attempts < f.opts.MaxAttempts {
		if ctx.Err() != nil {
			break
		}
		if f.opts.TimeCap > 0 && f.opts.Now().Sub(start) > f.opts.TimeCap {
			logger.Warn(ctx, "time cap reached, stopping early",
				zap.Duration("cap", f.opts.TimeCap))

			break
		}
		attempts++

		shortlist := f.buildShortlist(st)
		f.checkShortlist(ctx, st, shortlist, target)

		logger.Info(ctx, "attempt finished",
			zap.Int("attempt", attempts),
			zap.Int("shortlisted", len(shortlist)),
			zap.Int("picks", len(st.picks)))

		if len(st.picks) >= target {
			break
		}

		if !f.applyNextRelaxation(st, relaxMenu) {
			break
		}
	}

	elapsed := f.opts.Now().Sub(start)
	summary := domain.RunSummary{
		RunID:               runID,
		Generated:           st.generated,
		PassedFilters:       st.passedFilters,
		CheckedAvailability: st.checkedCount,
		ProviderErrors:      int(f.checker.ProviderErrors() - errsBefore), //nolint: gosec
		Attempts:            attempts,
		RelaxationsApplied:  st.relaxations,
		TopRejectionReasons: rankReasons(st.reasons),
		NearMisses:          st.nearMisses,
		Elapsed:             elapsed,
	}
	if st.checkedCount > 0 {
		summary.HitRate = float64(st.availableHits) / float64(st.checkedCount)
	}
	summary.Explanation = explain(len(st.picks), target, summary)

	return domain.Result{Picks: st.picks, Summary: summary}
}

// buildShortlist runs one generate-filter-score pass and returns the ranked
// candidates worth an availability check.
func (f *Finder) buildShortlist(st *runState) []domain.ScoredCandidate {
	out := f.gen.Generate(st.input, generator.Options{PoolSize: f.opts.PoolSize})
	st.generated += len(out.Candidates)

	params := filter.Params{
		MaxLength: st.input.MaxLength,
		Controls:  st.input.Controls,
		Tables:    f.tables,
	}
	sctx := scoring.Context{
		Industry:      st.input.Industry,
		Vibe:          st.input.Vibe,
		KeywordTokens: out.KeywordTokens,
		Controls:      st.input.Controls,
		TLD:           f.opts.TLD,
	}

	var scored []domain.ScoredCandidate
	for _, c := range out.Candidates {
		decision := filter.Evaluate(c.Name, params)
		if !decision.Accepted {
			for _, reason := range decision.Reasons {
				st.reasons[reason]++
			}

			continue
		}
		st.passedFilters++

		sc := f.scorer.Score(c, sctx)
		if sc.MeaningScore < f.opts.MeaningFloor {
			st.reasons[ReasonWeakMeaning]++

			continue
		}
		scored = append(scored, sc)
	}

	scored = scoring.Rank(scoring.Dedupe(scored))

	var shortlist []domain.ScoredCandidate
	for _, sc := range scored {
		if len(shortlist) >= f.opts.ShortlistSize {
			break
		}
		// ShowAnyAvailable trades quality for yield: every ranked survivor is
		// worth a check
		if sc.Score < f.opts.QualityThreshold && !st.input.Controls.ShowAnyAvailable {
			st.reasons[ReasonBelowThreshold]++

			continue
		}
		if st.picked[sc.Name] || st.checked[f.fqdn(sc.Name, f.opts.TLD)] {
			continue
		}
		shortlist = append(shortlist, sc)
	}

	return shortlist
}

// checkShortlist resolves the shortlist's domains and accepts the available
// ones, probing alternate TLDs for the best unavailable candidates.
func (f *Finder) checkShortlist(ctx context.Context, st *runState, shortlist []domain.ScoredCandidate, target int) {
	if len(shortlist) == 0 {
		return
	}

	fqdns := make([]string, len(shortlist))
	for i, sc := range shortlist {
		fqdns[i] = f.fqdn(sc.Name, f.opts.TLD)
	}
	results := f.checker.CheckBatch(ctx, fqdns)
	st.checkedCount += len(results)

	var unavailable []domain.ScoredCandidate
	for i, res := range results {
		if i >= len(shortlist) {
			break
		}
		sc := shortlist[i]
		st.checked[res.Domain] = true

		if !res.Available {
			if !res.Degraded() {
				unavailable = append(unavailable, sc)
			}

			continue
		}
		st.availableHits++
		if len(st.picks) >= target || st.picked[sc.Name] {
			continue
		}
		st.picked[sc.Name] = true
		st.picks = append(st.picks, domain.Pick{
			ScoredCandidate: sc,
			Domain:          res.Domain,
			Availability:    res,
		})
	}

	f.probeNearMisses(ctx, st, unavailable)
}

// probeNearMisses checks alternate TLDs for the best taken candidates so the
// caller can surface "available elsewhere" suggestions.
func (f *Finder) probeNearMisses(ctx context.Context, st *runState, unavailable []domain.ScoredCandidate) {
	if len(f.opts.AltTLDs) == 0 || len(unavailable) == 0 {
		return
	}
	if len(unavailable) > nearMissProbesPerAttempt {
		unavailable = unavailable[:nearMissProbesPerAttempt]
	}

	for _, sc := range unavailable {
		fqdns := make([]string, 0, len(f.opts.AltTLDs))
		for _, tld := range f.opts.AltTLDs {
			fqdns = append(fqdns, f.fqdn(sc.Name, tld))
		}

		results := f.checker.CheckBatch(ctx, fqdns)
		st.checkedCount += len(results)
		for _, res := range results {
			if !res.Available {
				continue
			}
			st.availableHits++
			st.nearMisses = append(st.nearMisses, domain.NearMiss{
				Name:   sc.Name,
				Domain: res.Domain,
				TLD:    strings.TrimPrefix(res.Domain[strings.LastIndex(res.Domain, "."):], "."),
				Score:  sc.Score,
			})

			break
		}
	}
}

// relaxation is one entry of the ordered relaxation menu.
type relaxation struct {
	step  domain.RelaxationStep
	apply func(st *runState) bool
}

// relaxationMenu returns the ordered constraint relaxations. Each is applied
// at most once, and only when it actually changes the current input.
func (f *Finder) relaxationMenu() []relaxation {
	return []relaxation{
		{
			step: domain.RelaxationStep{ID: "max_length_plus_one", Label: "Maximum length increased by 1 character"},
			apply: func(st *runState) bool {
				st.input.MaxLength++

				return true
			},
		},
		{
			step: domain.RelaxationStep{ID: "keyword_exact_to_partial", Label: "Keyword requirement relaxed from exact to partial"},
			apply: func(st *runState) bool {
				if st.input.Controls.MustIncludeKeyword != domain.InclusionExact {
					return false
				}
				st.input.Controls.MustIncludeKeyword = domain.InclusionPartial

				return true
			},
		},
		{
			step: domain.RelaxationStep{ID: "keyword_partial_to_none", Label: "Keyword requirement dropped"},
			apply: func(st *runState) bool {
				if st.input.Controls.MustIncludeKeyword == domain.InclusionNone {
					return false
				}
				st.input.Controls.MustIncludeKeyword = domain.InclusionNone

				return true
			},
		},
		{
			step: domain.RelaxationStep{ID: "allow_vibe_suffix", Label: "Vibe suffixes enabled"},
			apply: func(st *runState) bool {
				if st.input.Controls.AllowVibeSuffix {
					return false
				}
				st.input.Controls.AllowVibeSuffix = true

				return true
			},
		},
		{
			step: domain.RelaxationStep{ID: "mix_styles", Label: "Both naming styles mixed in"},
			apply: func(st *runState) bool {
				if st.input.MixStyles {
					return false
				}
				st.input.MixStyles = true

				return true
			},
		},
	}
}

// applyNextRelaxation applies the first not-yet-applied applicable step and
// reports whether anything changed.
func (f *Finder) applyNextRelaxation(st *runState, menu []relaxation) bool {
	for i := range menu {
		if menu[i].step.Applied {
			continue
		}
		menu[i].step.Applied = true
		if menu[i].apply(st) {
			st.relaxations = append(st.relaxations, menu[i].step.Label)

			return true
		}
	}

	return false
}

func (f *Finder) fqdn(name, tld string) string {
	return name + "." + tld
}

// rankReasons orders rejection reasons by frequency, ties broken
// alphabetically, capped to the report size.
func rankReasons(counts map[string]int) []domain.ReasonCount {
	out := make([]domain.ReasonCount, 0, len(counts))
	for reason, count := range counts {
		out = append(out, domain.ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Reason < out[j].Reason
	})
	if len(out) > topRejectionReasons {
		out = out[:topRejectionReasons]
	}

	return out
}

// explain renders the one-paragraph human account of a run.
func explain(picks, target int, s domain.RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d of %d requested names in %d attempt(s): generated %d candidates, %d passed the filters, %d domains were checked.",
		picks, target, s.Attempts, s.Generated, s.PassedFilters, s.CheckedAvailability)
	if len(s.RelaxationsApplied) > 0 {
		fmt.Fprintf(&b, " Constraints relaxed along the way: %s.", strings.Join(s.RelaxationsApplied, "; "))
	}
	if len(s.NearMisses) > 0 {
		fmt.Fprintf(&b, " %d name(s) were taken on the primary extension but available on an alternate one.", len(s.NearMisses))
	}
	if s.ProviderErrors > 0 {
		fmt.Fprintf(&b, " %d provider error(s) occurred; some verdicts may be conservative.", s.ProviderErrors)
	}
	if picks < target {
		b.WriteString(" Fewer names than requested survived every gate.")
	}

	return b.String()
}
