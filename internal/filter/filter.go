// Package filter implements the structural accept/reject gate for raw name
// candidates. Evaluate is a pure predicate: it runs every check, reports all
// failing reasons in check order, and never consults the network or a cache.
package filter

import (
	"strings"

	"namolux/internal/vocab"
	"namolux/pkg/domain"
)

// Reason tags reported by Evaluate.
const (
	ReasonTooShort           = "too_short"
	ReasonTooLong            = "too_long"
	ReasonHasHyphen          = "has_hyphen"
	ReasonHasNumber          = "has_number"
	ReasonAwkwardCluster     = "awkward_cluster"
	ReasonVisuallyAmbiguous  = "visually_ambiguous"
	ReasonRepeatedLetters    = "repeated_letters"
	ReasonLowVowelRatio      = "low_vowel_ratio"
	ReasonConsonantRun       = "consonant_run"
	ReasonBadSyllableCount   = "bad_syllable_count"
	ReasonTrademarkCollision = "trademark_collision"
	ReasonBlockedTermPrefix  = "blocked_term:"
	ReasonMissingAllowRoot   = "missing_allowlist_root"
)

// DefaultMaxLength applies when the caller does not constrain length.
const DefaultMaxLength = 12

// Params carries the context a filter decision depends on.
type Params struct {
	MaxLength int
	Controls  domain.Controls
	Tables    *vocab.Tables
}

// Evaluate runs a raw candidate through every structural check and returns
// the full decision. The candidate is sanitized to [a-z0-9-] first; all
// later checks run against the sanitized form.
func Evaluate(raw string, p Params) domain.FilterDecision {
	maxLen := p.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	controls := p.Controls.Normalized()

	name := Sanitize(raw)
	var reasons []string

	if len(name) < 3 {
		reasons = append(reasons, ReasonTooShort)
	}
	if len(name) > maxLen {
		reasons = append(reasons, ReasonTooLong)
	}

	if strings.Contains(name, "-") && !controls.AllowHyphen {
		reasons = append(reasons, ReasonHasHyphen)
	}
	if strings.ContainsAny(name, "0123456789") && !controls.AllowNumbers {
		reasons = append(reasons, ReasonHasNumber)
	}

	for _, cluster := range p.Tables.BannedClusters {
		if strings.Contains(name, cluster) {
			reasons = append(reasons, ReasonAwkwardCluster)

			break
		}
	}
	for _, run := range p.Tables.AmbiguousRuns {
		if strings.Contains(name, run) {
			reasons = append(reasons, ReasonVisuallyAmbiguous)

			break
		}
	}

	if hasTripleRepeat(name) {
		reasons = append(reasons, ReasonRepeatedLetters)
	}

	blend := controls.Style == domain.StyleBrandableBlends
	if VowelRatio(name) < minVowelRatio(len(name), blend) {
		reasons = append(reasons, ReasonLowVowelRatio)
	}
	if maxConsonantRun(name) >= 5 {
		reasons = append(reasons, ReasonConsonantRun)
	}
	syl := SyllableCount(name)
	maxSyl := 4
	if blend {
		maxSyl = 5
	}
	if syl < 1 || syl > maxSyl {
		reasons = append(reasons, ReasonBadSyllableCount)
	}

	lower := strings.ToLower(name)
	for _, brand := range p.Tables.KnownBrands {
		if strings.Contains(lower, brand) || strings.Contains(brand, lower) {
			reasons = append(reasons, ReasonTrademarkCollision)

			break
		}
	}

	for _, term := range controls.Blocklist {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(lower, term) {
			reasons = append(reasons, ReasonBlockedTermPrefix+term)

			break
		}
	}

	if len(controls.Allowlist) > 0 {
		found := false
		for _, root := range controls.Allowlist {
			root = strings.ToLower(strings.TrimSpace(root))
			if root != "" && strings.Contains(lower, root) {
				found = true

				break
			}
		}
		if !found {
			reasons = append(reasons, ReasonMissingAllowRoot)
		}
	}

	return domain.FilterDecision{Accepted: len(reasons) == 0, Reasons: reasons}
}

// Sanitize lowercases the input and strips every rune outside [a-z0-9-].
func Sanitize(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}

	return false
}

// HasVowel reports whether s contains at least one vowel.
func HasVowel(s string) bool {
	for _, r := range s {
		if isVowel(r) {
			return true
		}
	}

	return false
}

// VowelRatio returns vowels divided by letters. Digits and hyphens are not
// letters; a name with no letters has ratio zero.
func VowelRatio(name string) float64 {
	letters, vowels := 0, 0
	for _, r := range name {
		if r < 'a' || r > 'z' {
			continue
		}
		letters++
		if isVowel(r) {
			vowels++
		}
	}
	if letters == 0 {
		return 0
	}

	return float64(vowels) / float64(letters)
}

// SyllableCount approximates syllables by counting vowel clusters.
func SyllableCount(name string) int {
	count := 0
	inVowelRun := false
	for _, r := range name {
		v := r >= 'a' && r <= 'z' && isVowel(r)
		if v && !inVowelRun {
			count++
		}
		inVowelRun = v
	}

	return count
}

// minVowelRatio scales the pronounceability threshold by length: short names
// and blends get more slack.
func minVowelRatio(length int, blend bool) float64 {
	switch {
	case length <= 5:
		if blend {
			return 0.12
		}

		return 0.18
	case length <= 8:
		if blend {
			return 0.15
		}

		return 0.22
	default:
		if blend {
			return 0.20
		}

		return 0.25
	}
}

func maxConsonantRun(name string) int {
	run, longest := 0, 0
	for _, r := range name {
		if r >= 'a' && r <= 'z' && !isVowel(r) {
			run++
			if run > longest {
				longest = run
			}

			continue
		}
		run = 0
	}

	return longest
}

func hasTripleRepeat(name string) bool {
	var prev rune
	count := 0
	for _, r := range name {
		if r == prev {
			count++
			if count >= 3 {
				return true
			}
		} else {
			prev = r
			count = 1
		}
	}

	return false
}
