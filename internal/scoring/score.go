// Package scoring turns filtered candidates into scored, ranked, explainable
// ones. Everything here is pure and synchronous: a score is a deterministic
// function of the name and the request context, with no randomness and no
// network access.
package scoring

import (
	"strings"

	"namolux/internal/filter"
	"namolux/internal/vocab"
	"namolux/pkg/domain"
)

// Weights of the score dimensions. They sum to 1 so the total stays 0-100.
const (
	weightLength           = 0.15
	weightPronounceability = 0.15
	weightMemorability     = 0.15
	weightExtension        = 0.10
	weightCharacter        = 0.10
	weightBrandRisk        = 0.15
	weightFit              = 0.20
)

// Context is the request-derived state a score depends on.
type Context struct {
	Industry      string
	Vibe          string
	KeywordTokens []string
	Controls      domain.Controls
	// TLD is the extension the candidate will be offered on, without dot.
	TLD string
}

// Pipeline scores candidates against the loaded vocabulary tables.
type Pipeline struct {
	tables *vocab.Tables
}

// New creates a scoring pipeline over the given vocabulary.
func New(tables *vocab.Tables) *Pipeline {
	return &Pipeline{tables: tables}
}

// Score computes the full scored candidate: weighted total, per-dimension
// breakdown, quality band and meaning explanation.
func (p *Pipeline) Score(c domain.Candidate, ctx Context) domain.ScoredCandidate {
	name := c.Name

	breakdown := domain.ScoreBreakdown{
		Length:           lengthScore(len(name)),
		Pronounceability: pronounceabilityScore(name),
		Memorability:     p.memorabilityScore(name),
		Extension:        p.tables.ExtensionStrength(ctx.TLD),
		CharacterQuality: p.characterScore(name),
		BrandRisk:        p.brandRiskScore(name),
		Fit:              p.fitScore(name, ctx),
	}

	total := breakdown.Length*weightLength +
		breakdown.Pronounceability*weightPronounceability +
		breakdown.Memorability*weightMemorability +
		breakdown.Extension*weightExtension +
		breakdown.CharacterQuality*weightCharacter +
		breakdown.BrandRisk*weightBrandRisk +
		breakdown.Fit*weightFit

	m := p.BuildMeaning(c, ctx)

	return domain.ScoredCandidate{
		Candidate:    c,
		Score:        total,
		Breakdown:    breakdown,
		Band:         domain.BandFor(total),
		Meaning:      m.Text,
		MeaningScore: m.Score,
	}
}

// lengthScore rewards shorter names, flattening out below six characters.
func lengthScore(n int) float64 {
	switch {
	case n <= 5:
		return 100
	case n <= 12:
		// 96, 92, 88, 82, 74, 64, 56
		steps := []float64{96, 92, 88, 82, 74, 64, 56}

		return steps[n-6]
	default:
		s := 56 - 8*float64(n-12)
		if s < 20 {
			s = 20
		}

		return s
	}
}

// pronounceabilityScore reuses the filter's syllable and vowel heuristics as
// a continuous signal.
func pronounceabilityScore(name string) float64 {
	var base float64
	switch filter.SyllableCount(name) {
	case 2, 3:
		base = 100
	case 1:
		base = 85
	case 4:
		base = 78
	case 5:
		base = 62
	default:
		base = 40
	}

	ratio := filter.VowelRatio(name)
	if ratio < 0.2 || ratio > 0.65 {
		base -= 15
	}
	if base < 0 {
		base = 0
	}

	return base
}

func (p *Pipeline) memorabilityScore(name string) float64 {
	score := 70.0

	for _, suf := range p.tables.TrendySuffixes {
		if strings.HasSuffix(name, suf) {
			score += 15

			break
		}
	}
	for _, pre := range p.tables.GenericPrefixes {
		if strings.HasPrefix(name, pre) && len(name) > len(pre)+2 {
			score -= 15

			break
		}
	}
	for _, suf := range p.tables.GenericSuffixes {
		if strings.HasSuffix(name, suf) && len(name) > len(suf)+2 {
			score -= 15

			break
		}
	}

	if len(name) <= 7 {
		score += 10
	}
	if hasSingleDoubledVowel(name) {
		score += 5
	}

	return clamp(score)
}

func (p *Pipeline) characterScore(name string) float64 {
	score := 100.0

	if strings.Contains(name, "-") {
		score -= 25
	}
	if strings.ContainsAny(name, "0123456789") {
		score -= 20
	}
	for _, run := range p.tables.ScoringAmbiguousRuns {
		if strings.Contains(name, run) {
			score -= 15
		}
	}

	return clamp(score)
}

// brandRiskScore penalizes names too close to dictionary words or known
// brands. The filter already hard-rejects direct collisions; this scores the
// near misses continuously.
func (p *Pipeline) brandRiskScore(name string) float64 {
	score := 100.0

	if p.tables.IsDictionaryWord(name) {
		score -= 45
	}

	for _, brand := range p.tables.KnownBrands {
		if strings.Contains(name, brand) || strings.Contains(brand, name) {
			score -= 40

			break
		}
		if len(name) >= 4 && len(brand) >= 4 && name[:4] == brand[:4] {
			score -= 20

			break
		}
	}

	// "...hub" names that share the leading letter with a known "...hub"
	// brand read as knock-offs even without a substring match
	if strings.HasSuffix(name, "hub") {
		for _, brand := range p.tables.KnownBrands {
			if brand != name && strings.HasSuffix(brand, "hub") && brand[0] == name[0] {
				score -= 30

				break
			}
		}
	}

	return clamp(score)
}

// fitScore is the relevance dimension: keyword hits, industry vocabulary and
// vibe vocabulary all raise it. Relevance is a first-class scoring input, so
// on-topic names outrank off-topic ones of similar structural quality.
func (p *Pipeline) fitScore(name string, ctx Context) float64 {
	score := 30.0

	for _, tok := range ctx.KeywordTokens {
		if strings.Contains(name, tok) {
			score += 35

			break
		}
	}

	industryMatches := 0
	for _, term := range p.tables.IndustryTerms(ctx.Industry) {
		if strings.Contains(name, term) {
			industryMatches++
		}
	}
	if industryMatches >= 1 {
		score += 25
	}
	if industryMatches >= 2 {
		score += 10
	}

	for _, term := range p.tables.Vibe(ctx.Vibe).Terms {
		if strings.Contains(name, term) {
			score += 10

			break
		}
	}

	return clamp(score)
}

func hasSingleDoubledVowel(name string) bool {
	count := 0
	for i := 0; i+1 < len(name); i++ {
		if name[i] == name[i+1] && strings.ContainsRune("aeiou", rune(name[i])) {
			count++
		}
	}

	return count == 1
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
