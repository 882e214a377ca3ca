package domain

// Style selects how the generator builds names.
type Style string

const (
	// StyleRealWords builds names from recognizable word compounds.
	StyleRealWords Style = "real_words"
	// StyleBrandableBlends builds invented names by blending word fragments.
	StyleBrandableBlends Style = "brandable_blends"
)

// KeywordInclusion controls whether a literal keyword token must appear in
// every generated name.
type KeywordInclusion string

const (
	// InclusionExact requires a literal keyword token in every name.
	InclusionExact KeywordInclusion = "exact"
	// InclusionPartial requires topical relatedness without literal inclusion.
	InclusionPartial KeywordInclusion = "partial"
	// InclusionNone places no keyword requirement on generated names.
	InclusionNone KeywordInclusion = "none"
)

// KeywordPosition constrains where a literal keyword token may appear.
type KeywordPosition string

const (
	PositionPrefix   KeywordPosition = "prefix"
	PositionSuffix   KeywordPosition = "suffix"
	PositionAnywhere KeywordPosition = "anywhere"
)

// Strategy identifies the generation rule that produced a candidate.
type Strategy string

const (
	StrategyPrefixRoot       Strategy = "prefix_root"
	StrategySuffixRoot       Strategy = "suffix_root"
	StrategyCompound         Strategy = "compound"
	StrategyVibeCompound     Strategy = "vibe_compound"
	StrategySemanticCompound Strategy = "semantic_compound"
	StrategyInventedBlend    Strategy = "invented_blend"
)

// Invented reports whether the strategy produces names without an
// etymological reading. Meaning explanations for such names must stay
// phonetic and never claim a word origin.
func (s Strategy) Invented() bool { return s == StrategyInventedBlend }

// Controls are the caller-supplied knobs that shape generation and filtering.
type Controls struct {
	MustIncludeKeyword KeywordInclusion `json:"mustIncludeKeyword"`
	KeywordPosition    KeywordPosition  `json:"keywordPosition"`
	Style              Style            `json:"style"`

	Blocklist []string `json:"blocklist,omitempty"`
	Allowlist []string `json:"allowlist,omitempty"`

	AllowHyphen  bool `json:"allowHyphen"`
	AllowNumbers bool `json:"allowNumbers"`

	PreferTwoWordBrands bool `json:"preferTwoWordBrands"`
	AllowVibeSuffix     bool `json:"allowVibeSuffix"`
	ShowAnyAvailable    bool `json:"showAnyAvailable"`

	// Seed makes generation reproducible. Zero means "pick one"; callers that
	// need byte-identical reruns must set it explicitly.
	Seed int64 `json:"seed,omitempty"`
}

// Normalized returns a copy with unset enum fields replaced by their
// defaults, so downstream code can match exhaustively.
func (c Controls) Normalized() Controls {
	if c.MustIncludeKeyword == "" {
		c.MustIncludeKeyword = InclusionExact
	}
	if c.KeywordPosition == "" {
		c.KeywordPosition = PositionAnywhere
	}
	if c.Style == "" {
		c.Style = StyleRealWords
	}

	return c
}

// Candidate is one generated name string with its provenance. Immutable once
// created; Name is restricted to lowercase letters, digits and hyphen.
type Candidate struct {
	// Name is the bare name without a TLD.
	Name string `json:"name"`
	// Strategy names the generation rule that produced this candidate.
	Strategy Strategy `json:"strategy"`
	// Roots are the source fragments the name was built from, in order.
	Roots []string `json:"roots"`
	// KeywordHits lists the keyword tokens literally contained in Name.
	KeywordHits map[string]bool `json:"keywordHits,omitempty"`
}

// FilterDecision is the outcome of running a raw candidate through the
// filter engine. Derived, never persisted.
type FilterDecision struct {
	Accepted bool `json:"accepted"`
	// Reasons holds every failing check's tag in check order. Empty means
	// accepted.
	Reasons []string `json:"reasons,omitempty"`
}
