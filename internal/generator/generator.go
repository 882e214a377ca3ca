// Package generator produces the deterministic candidate pool for one search
// attempt. Names are built from keyword roots, industry and vibe vocabulary,
// and a handful of named combination strategies; the same seed and inputs
// always yield the byte-identical pool in the same order.
package generator

import (
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"

	"namolux/internal/filter"
	"namolux/internal/vocab"
	"namolux/pkg/domain"
)

// DefaultPoolSize caps the candidate pool when the caller does not.
const DefaultPoolSize = 60

// Input carries the request-derived parameters of one generation pass.
type Input struct {
	Keyword   string
	Industry  string
	Vibe      string
	MaxLength int
	Controls  domain.Controls

	// MixStyles emits both real-word and blend strategies regardless of the
	// selected style. Set by the orchestrator's widen-style relaxation.
	MixStyles bool
}

// Options tune the generation pass itself.
type Options struct {
	// PoolSize bounds the emitted pool. Zero means DefaultPoolSize.
	PoolSize int
}

// Output is the generated pool plus the derived vocabulary, returned so the
// scorer and the meaning builder work from the same token view.
type Output struct {
	Candidates    []domain.Candidate
	KeywordTokens []string
	RelatedTerms  []string
}

// Generator builds candidate pools from the loaded vocabulary tables.
type Generator struct {
	tables *vocab.Tables
}

// New creates a Generator over the given vocabulary.
func New(tables *vocab.Tables) *Generator {
	return &Generator{tables: tables}
}

// Generate builds the candidate pool. It is a pure function of its
// arguments: no shared state, no I/O, and a seeded random source.
func (g *Generator) Generate(in Input, opts Options) Output {
	controls := in.Controls.Normalized()
	maxLen := in.MaxLength
	if maxLen <= 0 {
		maxLen = filter.DefaultMaxLength
	}
	poolSize := opts.PoolSize
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}

	tokens := Tokenize(in.Keyword)
	related := g.relatedTerms(in.Industry, in.Vibe, tokens)
	out := Output{KeywordTokens: tokens, RelatedTerms: related}
	if len(tokens) == 0 && len(related) == 0 {
		return out
	}

	rng := rand.New(rand.NewSource(seedFor(in, controls))) //nolint: gosec

	b := builder{
		tables:   g.tables,
		controls: controls,
		maxLen:   maxLen,
		tokens:   tokens,
		related:  related,
		vibe:     g.tables.Vibe(in.Vibe),
		seen:     map[string]bool{},
	}

	styles := []domain.Style{controls.Style}
	if in.MixStyles {
		styles = []domain.Style{domain.StyleRealWords, domain.StyleBrandableBlends}
	}
	for _, style := range styles {
		if style == domain.StyleBrandableBlends {
			b.emitBlendStrategies()
		} else {
			b.emitWordStrategies()
		}
	}

	pool := b.pool
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if controls.PreferTwoWordBrands {
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].Strategy == domain.StrategyCompound && pool[j].Strategy != domain.StrategyCompound
		})
	}
	if len(pool) > poolSize {
		pool = pool[:poolSize]
	}

	// a real-word pool must never be all consonants
	if hasWordStyle(styles) && !poolHasVowel(pool) {
		if c, ok := b.vowelFallback(); ok {
			pool = append(pool, c)
		}
	}

	out.Candidates = pool

	return out
}

// Tokenize splits a keyword string into lowercase roots, dropping one-letter
// fragments and duplicates while preserving order.
func Tokenize(keyword string) []string {
	fields := strings.FieldsFunc(strings.ToLower(keyword), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	seen := map[string]bool{}
	var tokens []string
	for _, f := range fields {
		if len(f) < 2 || seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}

	return tokens
}

// relatedTerms merges the industry and vibe vocabularies, excluding keyword
// tokens, preserving table order.
func (g *Generator) relatedTerms(industry, vibe string, tokens []string) []string {
	exclude := map[string]bool{}
	for _, t := range tokens {
		exclude[t] = true
	}

	var related []string
	seen := map[string]bool{}
	add := func(terms []string) {
		for _, term := range terms {
			if exclude[term] || seen[term] {
				continue
			}
			seen[term] = true
			related = append(related, term)
		}
	}
	add(g.tables.IndustryTerms(industry))
	add(g.tables.Vibe(vibe).Terms)

	return related
}

// seedFor derives the RNG seed. An explicit control seed wins; otherwise the
// seed is hashed from the request so reruns of the same request still match.
func seedFor(in Input, controls domain.Controls) int64 {
	if controls.Seed != 0 {
		return controls.Seed
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(in.Keyword)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strings.ToLower(in.Industry)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strings.ToLower(in.Vibe)))

	return int64(h.Sum64()) //nolint: gosec
}

func hasWordStyle(styles []domain.Style) bool {
	for _, s := range styles {
		if s == domain.StyleRealWords {
			return true
		}
	}

	return false
}

func poolHasVowel(pool []domain.Candidate) bool {
	for _, c := range pool {
		if filter.HasVowel(c.Name) {
			return true
		}
	}

	return false
}
