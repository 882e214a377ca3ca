package scoring_test

import (
	"testing"

	"namolux/internal/scoring"
	"namolux/internal/vocab"
	"namolux/pkg/domain"

	"github.com/stretchr/testify/require"
)

func newPipeline(t *testing.T) *scoring.Pipeline {
	t.Helper()

	tables, err := vocab.Load()
	require.NoError(t, err)

	return scoring.New(tables)
}

func wordCandidate(name string, roots ...string) domain.Candidate {
	return domain.Candidate{Name: name, Strategy: domain.StrategyCompound, Roots: roots}
}

func TestScoreDeterministic(t *testing.T) {
	p := newPipeline(t)
	ctx := scoring.Context{Industry: "Technology", Vibe: "futuristic", KeywordTokens: []string{"pixel"}, TLD: "com"}
	c := wordCandidate("pixelsnap", "pixel", "snap")

	first := p.Score(c, ctx)
	second := p.Score(c, ctx)
	require.Equal(t, first, second, "scoring must be a pure function")
	require.GreaterOrEqual(t, first.Score, 0.0)
	require.LessOrEqual(t, first.Score, 100.0)
}

func TestRelevanceOutranksOffTopic(t *testing.T) {
	p := newPipeline(t)
	ctx := scoring.Context{Industry: "Sports & Fitness", TLD: "com"}

	relevant := p.Score(wordCandidate("fitcoachhub", "fit", "coach"), ctx)
	offTopic := p.Score(wordCandidate("ledgervault", "ledger", "vault"), ctx)

	require.Greater(t, relevant.Score, offTopic.Score,
		"industry-relevant candidate must score strictly higher")

	ranked := scoring.Rank([]domain.ScoredCandidate{offTopic, relevant})
	require.Equal(t, "fitcoachhub", ranked[0].Name)
}

func TestExtensionStrengthAffectsScore(t *testing.T) {
	p := newPipeline(t)
	c := wordCandidate("pixelsnap", "pixel", "snap")

	com := p.Score(c, scoring.Context{Industry: "Technology", TLD: "com"})
	dev := p.Score(c, scoring.Context{Industry: "Technology", TLD: "dev"})

	require.Greater(t, com.Score, dev.Score)
	require.Equal(t, float64(100), com.Breakdown.Extension)
	require.Equal(t, float64(48), dev.Breakdown.Extension)
}

func TestGenericAffixesPenalized(t *testing.T) {
	p := newPipeline(t)
	ctx := scoring.Context{Industry: "Technology", TLD: "com"}

	plain := p.Score(wordCandidate("pixelforge", "pixel", "forge"), ctx)
	generic := p.Score(wordCandidate("getpixelapp", "pixel"), ctx)

	require.Greater(t, plain.Breakdown.Memorability, generic.Breakdown.Memorability)
}

func TestBrandRiskHubCollision(t *testing.T) {
	p := newPipeline(t)
	ctx := scoring.Context{TLD: "com"}

	// shares the leading letter with github before "hub"
	risky := p.Score(wordCandidate("gearhub", "gear", "hub"), ctx)
	safe := p.Score(wordCandidate("fithub", "fit", "hub"), ctx)

	require.Less(t, risky.Breakdown.BrandRisk, safe.Breakdown.BrandRisk)
}

func TestDictionaryWordPenalized(t *testing.T) {
	p := newPipeline(t)
	ctx := scoring.Context{TLD: "com"}

	word := p.Score(wordCandidate("ledger", "ledger"), ctx)
	coined := p.Score(wordCandidate("ledgio", "ledger"), ctx)

	require.Less(t, word.Breakdown.BrandRisk, coined.Breakdown.BrandRisk)
}

func TestQualityBands(t *testing.T) {
	require.Equal(t, domain.BandHigh, domain.BandFor(85))
	require.Equal(t, domain.BandMedium, domain.BandFor(70))
	require.Equal(t, domain.BandLow, domain.BandFor(50))
}
