package scoring

import (
	"fmt"
	"strings"

	"namolux/pkg/domain"
)

// Meaning is the human-readable account of why a name works.
type Meaning struct {
	// Text is the breakdown string shown to users, e.g.
	// "fit (fitness) + coach (guidance) -> fitcoach".
	Text string
	// OneLiner is a single-sentence summary of the same mapping.
	OneLiner string
	// Score rates how well the explanation holds together; a well-formed
	// breakdown never scores below the floor used by the search gate.
	Score float64
}

// MeaningFloor is the minimum score of a well-formed meaning breakdown.
const MeaningFloor = 60

// BuildMeaning maps candidate roots onto vocabulary concepts and renders the
// explanation. Invented blends get a purely phonetic account; the pipeline
// never claims a word origin for a name that has none.
func (p *Pipeline) BuildMeaning(c domain.Candidate, ctx Context) Meaning {
	if c.Strategy.Invented() {
		return p.phoneticMeaning(c)
	}

	score := float64(MeaningFloor)
	parts := make([]string, 0, len(c.Roots))
	concepts := make([]string, 0, len(c.Roots))
	known := 0
	for _, root := range c.Roots {
		concept := p.tables.ConceptFor(root)
		if concept == "" {
			concept = "a distinctive root"
		} else {
			known++
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", root, concept))
		concepts = append(concepts, concept)
	}

	if known >= 1 {
		score += 10
	}
	if known >= 2 {
		score += 10
	}
	for _, term := range p.tables.IndustryTerms(ctx.Industry) {
		for _, root := range c.Roots {
			if root == term {
				score += 10

				break
			}
		}
	}
	if score > 95 {
		score = 95
	}

	text := fmt.Sprintf("%s -> %s", strings.Join(parts, " + "), c.Name)
	oneLiner := fmt.Sprintf("%s brings together %s.", c.Name, strings.Join(concepts, " and "))

	return Meaning{Text: text, OneLiner: oneLiner, Score: score}
}

// phoneticMeaning describes an invented name by its sound alone.
func (p *Pipeline) phoneticMeaning(c domain.Candidate) Meaning {
	quality := "smooth, modern"
	if strings.ContainsAny(c.Name, "kptxz") {
		quality = "sharp, energetic"
	}

	text := fmt.Sprintf("%s is an invented name with a %s sound that is easy to say and remember.",
		c.Name, quality)

	score := float64(MeaningFloor)
	if len(c.Roots) == 2 {
		// both source fragments recognizable in the vocabulary
		if p.tables.ConceptFor(c.Roots[0]) != "" && p.tables.ConceptFor(c.Roots[1]) != "" {
			score += 10
		}
	}

	return Meaning{Text: text, OneLiner: text, Score: score}
}
