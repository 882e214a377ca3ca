package generator

import (
	"strings"

	"namolux/internal/vocab"
	"namolux/pkg/domain"
)

// builder accumulates candidates for one generation pass. All emit paths run
// in a fixed order so the pool is deterministic before the final shuffle.
type builder struct {
	tables   *vocab.Tables
	controls domain.Controls
	maxLen   int
	tokens   []string
	related  []string
	vibe     vocab.VibeSet

	pool []domain.Candidate
	seen map[string]bool
}

// add appends a candidate when it fits the length budget, the keyword
// inclusion rule, and has not been emitted yet.
func (b *builder) add(name string, strategy domain.Strategy, roots ...string) {
	if len(name) > b.maxLen || len(name) < 3 || b.seen[name] {
		return
	}
	if !b.satisfiesInclusion(name) {
		return
	}
	b.seen[name] = true
	b.pool = append(b.pool, domain.Candidate{
		Name:        name,
		Strategy:    strategy,
		Roots:       roots,
		KeywordHits: b.keywordHits(name),
	})
}

// satisfiesInclusion enforces the exact-inclusion rule: a literal keyword
// token must appear at the requested position. Partial and none modes place
// no literal requirement; topical relatedness comes from the term sources.
func (b *builder) satisfiesInclusion(name string) bool {
	if b.controls.MustIncludeKeyword != domain.InclusionExact {
		return true
	}
	for _, tok := range b.tokens {
		switch b.controls.KeywordPosition {
		case domain.PositionPrefix:
			if strings.HasPrefix(name, tok) {
				return true
			}
		case domain.PositionSuffix:
			if strings.HasSuffix(name, tok) {
				return true
			}
		default:
			if strings.Contains(name, tok) {
				return true
			}
		}
	}

	return false
}

func (b *builder) keywordHits(name string) map[string]bool {
	var hits map[string]bool
	for _, tok := range b.tokens {
		if strings.Contains(name, tok) {
			if hits == nil {
				hits = map[string]bool{}
			}
			hits[tok] = true
		}
	}

	return hits
}

// emitWordStrategies builds real-word compounds: keyword+related pairs,
// two-root keyword compounds, vibe compounds and, outside exact mode,
// purely semantic compounds.
func (b *builder) emitWordStrategies() {
	// two-root keyword compounds first; PreferTwoWordBrands re-ranks them later
	for i, t1 := range b.tokens {
		for j, t2 := range b.tokens {
			if i == j {
				continue
			}
			b.add(t1+t2, domain.StrategyCompound, t1, t2)
		}
	}

	for _, tok := range b.tokens {
		for _, term := range b.related {
			if b.controls.KeywordPosition != domain.PositionSuffix {
				b.add(tok+term, domain.StrategyCompound, tok, term)
			}
			if b.controls.KeywordPosition != domain.PositionPrefix {
				b.add(term+tok, domain.StrategyCompound, term, tok)
			}
		}
	}

	for _, tok := range b.tokens {
		for _, vt := range b.vibe.Terms {
			if b.controls.KeywordPosition != domain.PositionSuffix {
				b.add(tok+vt, domain.StrategyVibeCompound, tok, vt)
			}
			if b.controls.KeywordPosition != domain.PositionPrefix {
				b.add(vt+tok, domain.StrategyVibeCompound, vt, tok)
			}
		}
	}

	if b.controls.MustIncludeKeyword != domain.InclusionExact {
		for i, r1 := range b.related {
			for j, r2 := range b.related {
				if i == j {
					continue
				}
				b.add(r1+r2, domain.StrategySemanticCompound, r1, r2)
			}
		}
	}
}

// emitBlendStrategies builds invented names: affixed roots and vowel blends.
func (b *builder) emitBlendStrategies() {
	suffixes := b.tables.BrandSuffixes
	if b.controls.AllowVibeSuffix {
		suffixes = append(append([]string{}, suffixes...), b.vibe.Suffixes...)
	}
	prefixes := b.tables.BrandPrefixes
	if len(b.vibe.Prefixes) > 0 {
		prefixes = append(append([]string{}, prefixes...), b.vibe.Prefixes...)
	}

	for _, tok := range b.tokens {
		for _, suf := range suffixes {
			b.add(joinAffix(tok, suf), domain.StrategySuffixRoot, tok, suf)
		}
	}
	if b.controls.KeywordPosition != domain.PositionPrefix {
		for _, tok := range b.tokens {
			for _, pre := range prefixes {
				b.add(joinAffix(pre, tok), domain.StrategyPrefixRoot, pre, tok)
			}
		}
	}

	blendPairs := b.blendSources()
	for _, pair := range blendPairs {
		name := blend(pair[0], pair[1])
		if len(name) > b.maxLen {
			name = name[:b.maxLen]
		}
		b.add(name, domain.StrategyInventedBlend, pair[0], pair[1])
	}

	// a second pass of reversed blends fills thin pools
	if len(b.pool) < DefaultPoolSize/2 {
		for _, pair := range blendPairs {
			name := blend(pair[1], pair[0])
			if len(name) > b.maxLen {
				name = name[:b.maxLen]
			}
			b.add(name, domain.StrategyInventedBlend, pair[1], pair[0])
		}
	}
}

func (b *builder) blendSources() [][2]string {
	var pairs [][2]string
	for i, t1 := range b.tokens {
		for j, t2 := range b.tokens {
			if i != j {
				pairs = append(pairs, [2]string{t1, t2})
			}
		}
	}
	for _, tok := range b.tokens {
		for _, term := range b.related {
			pairs = append(pairs, [2]string{tok, term})
		}
	}
	if b.controls.MustIncludeKeyword == domain.InclusionNone {
		for i, r1 := range b.related {
			for j, r2 := range b.related {
				if i != j && len(pairs) < 400 {
					pairs = append(pairs, [2]string{r1, r2})
				}
			}
		}
	}

	return pairs
}

// vowelFallback produces a safe pronounceable candidate for pools that ended
// up without a single vowel.
func (b *builder) vowelFallback() (domain.Candidate, bool) {
	root := ""
	switch {
	case len(b.tokens) > 0:
		root = b.tokens[0]
	case len(b.related) > 0:
		root = b.related[0]
	default:
		return domain.Candidate{}, false
	}

	name := joinAffix(root, "ora")
	if len(name) > b.maxLen {
		name = name[:b.maxLen]
	}

	return domain.Candidate{
		Name:     name,
		Strategy: domain.StrategySuffixRoot,
		Roots:    []string{root, "ora"},
	}, true
}

// joinAffix concatenates two fragments, collapsing a doubled boundary letter.
func joinAffix(a, c string) string {
	if a == "" || c == "" {
		return a + c
	}
	if a[len(a)-1] == c[0] {
		return a + c[1:]
	}

	return a + c
}

// blend fuses the head of a (through its first vowel run plus one consonant)
// with the tail of b (from its last vowel onward).
func blend(a, c string) string {
	head := blendHead(a)
	tail := blendTail(c)

	return joinAffix(head, tail)
}

func blendHead(a string) string {
	end := -1
	for i := 0; i < len(a); i++ {
		if isVowelByte(a[i]) {
			end = i
			for end+1 < len(a) && isVowelByte(a[end+1]) {
				end++
			}

			break
		}
	}
	if end == -1 {
		if len(a) > 3 {
			return a[:3]
		}

		return a
	}
	// include one trailing consonant when present
	if end+1 < len(a) && !isVowelByte(a[end+1]) {
		end++
	}

	return a[:end+1]
}

func blendTail(c string) string {
	last := -1
	for i := 0; i < len(c); i++ {
		if isVowelByte(c[i]) {
			last = i
		}
	}
	if last == -1 {
		if len(c) > 2 {
			return c[len(c)-2:]
		}

		return c
	}

	return c[last:]
}

func isVowelByte(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}

	return false
}
