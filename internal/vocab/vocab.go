// Package vocab loads the heuristic vocabulary tables the engine works from:
// industry and vibe term sets, the root-to-concept map, and the linguistic and
// branding heuristics (banned clusters, known brands, dictionary words, affix
// lists, TLD strength). The tables live in embedded JSON so they can be
// extended or localized without touching algorithm code.
package vocab

import (
	_ "embed"
	"encoding/json"
	"strings"

	"namolux/pkg/serrors"
)

//go:embed data/industries.json
var industriesData []byte

//go:embed data/vibes.json
var vibesData []byte

//go:embed data/concepts.json
var conceptsData []byte

//go:embed data/heuristics.json
var heuristicsData []byte

// VibeSet holds the vocabulary for one vibe.
type VibeSet struct {
	Terms    []string `json:"terms"`
	Prefixes []string `json:"prefixes"`
	Suffixes []string `json:"suffixes"`
}

// heuristics mirrors the heuristics.json layout.
type heuristics struct {
	BannedClusters       []string           `json:"bannedClusters"`
	AmbiguousRuns        []string           `json:"ambiguousRuns"`
	ScoringAmbiguousRuns []string           `json:"scoringAmbiguousRuns"`
	KnownBrands          []string           `json:"knownBrands"`
	DictionaryWords      []string           `json:"dictionaryWords"`
	GenericPrefixes      []string           `json:"genericPrefixes"`
	GenericSuffixes      []string           `json:"genericSuffixes"`
	TrendySuffixes       []string           `json:"trendySuffixes"`
	BrandPrefixes        []string           `json:"brandPrefixes"`
	BrandSuffixes        []string           `json:"brandSuffixes"`
	TLDStrength          map[string]float64 `json:"tldStrength"`
}

// Tables is the loaded, read-only vocabulary. Safe for concurrent use.
type Tables struct {
	industries map[string][]string
	vibes      map[string]VibeSet
	concepts   map[string]string

	BannedClusters       []string
	AmbiguousRuns        []string
	ScoringAmbiguousRuns []string
	KnownBrands          []string
	GenericPrefixes      []string
	GenericSuffixes      []string
	TrendySuffixes       []string
	BrandPrefixes        []string
	BrandSuffixes        []string

	dictionary  map[string]bool
	tldStrength map[string]float64
}

// Load parses the embedded vocabulary tables. It fails only on corrupt
// embedded data, which is a build problem rather than a runtime condition.
func Load() (*Tables, error) {
	t := &Tables{}

	if err := json.Unmarshal(industriesData, &t.industries); err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "corrupt industries table")
	}
	if err := json.Unmarshal(vibesData, &t.vibes); err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "corrupt vibes table")
	}
	if err := json.Unmarshal(conceptsData, &t.concepts); err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "corrupt concepts table")
	}

	var h heuristics
	if err := json.Unmarshal(heuristicsData, &h); err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "corrupt heuristics table")
	}

	t.BannedClusters = h.BannedClusters
	t.AmbiguousRuns = h.AmbiguousRuns
	t.ScoringAmbiguousRuns = h.ScoringAmbiguousRuns
	t.KnownBrands = h.KnownBrands
	t.GenericPrefixes = h.GenericPrefixes
	t.GenericSuffixes = h.GenericSuffixes
	t.TrendySuffixes = h.TrendySuffixes
	t.BrandPrefixes = h.BrandPrefixes
	t.BrandSuffixes = h.BrandSuffixes
	t.tldStrength = h.TLDStrength

	t.dictionary = make(map[string]bool, len(h.DictionaryWords))
	for _, w := range h.DictionaryWords {
		t.dictionary[w] = true
	}

	return t, nil
}

// IndustryTerms returns the term set for an industry label. The lookup is
// case-insensitive and tolerates partial labels ("Fitness" matches
// "sports & fitness"). Unknown industries yield nil.
func (t *Tables) IndustryTerms(industry string) []string {
	needle := strings.ToLower(strings.TrimSpace(industry))
	if needle == "" {
		return nil
	}
	if terms, ok := t.industries[needle]; ok {
		return terms
	}
	// partial label: either direction of containment counts
	var bestKey string
	for key := range t.industries {
		if strings.Contains(key, needle) || strings.Contains(needle, key) {
			if bestKey == "" || key < bestKey {
				bestKey = key
			}
		}
	}
	if bestKey != "" {
		return t.industries[bestKey]
	}

	return nil
}

// Vibe returns the vocabulary set for a vibe label, empty when unknown.
func (t *Tables) Vibe(name string) VibeSet {
	return t.vibes[strings.ToLower(strings.TrimSpace(name))]
}

// ConceptFor maps a root to its concept, or "" when the root is unknown.
func (t *Tables) ConceptFor(root string) string {
	return t.concepts[strings.ToLower(root)]
}

// IsDictionaryWord reports whether w is an exact common dictionary word.
func (t *Tables) IsDictionaryWord(w string) bool {
	return t.dictionary[strings.ToLower(w)]
}

// ExtensionStrength returns the 0-100 strength of a TLD. TLDs outside the
// table get a flat 40.
func (t *Tables) ExtensionStrength(tld string) float64 {
	if s, ok := t.tldStrength[strings.ToLower(strings.TrimPrefix(tld, "."))]; ok {
		return s
	}

	return 40
}
