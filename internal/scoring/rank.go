package scoring

import (
	"sort"
	"strings"

	"namolux/pkg/domain"
)

// Rank sorts candidates descending by total score, breaking exact ties by
// name so the order is stable across runs. Relevance already lives inside
// the score's fit dimension, so no secondary relevance pass is needed here.
func Rank(candidates []domain.ScoredCandidate) []domain.ScoredCandidate {
	ranked := make([]domain.ScoredCandidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}

		return ranked[i].Name < ranked[j].Name
	})

	return ranked
}

// Dedupe collapses candidates that would read as near-duplicates in a
// shortlist: identical root sets, or small spelling variants of an
// already-kept name. The first occurrence wins.
func Dedupe(candidates []domain.ScoredCandidate) []domain.ScoredCandidate {
	var kept []domain.ScoredCandidate
	seenRoots := map[string]bool{}

	for _, c := range candidates {
		key := rootKey(c.Roots)
		if key != "" && seenRoots[key] {
			continue
		}
		variant := false
		for _, k := range kept {
			if spellingVariant(c.Name, k.Name) {
				variant = true

				break
			}
		}
		if variant {
			continue
		}
		if key != "" {
			seenRoots[key] = true
		}
		kept = append(kept, c)
	}

	return kept
}

func rootKey(roots []string) string {
	if len(roots) == 0 {
		return ""
	}
	sorted := make([]string, len(roots))
	copy(sorted, roots)
	sort.Strings(sorted)

	return strings.Join(sorted, "|")
}

// spellingVariant reports whether two names differ only by a trailing letter
// or by their final character.
func spellingVariant(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) == len(b)+1 && strings.HasPrefix(a, b) {
		return true
	}
	if len(b) == len(a)+1 && strings.HasPrefix(b, a) {
		return true
	}
	if len(a) == len(b) && len(a) > 1 && a[:len(a)-1] == b[:len(b)-1] {
		return true
	}

	return false
}
