package domain

// QualityBand is a coarse brandability tier derived from the numeric score.
type QualityBand string

const (
	BandHigh   QualityBand = "high"
	BandMedium QualityBand = "medium"
	BandLow    QualityBand = "low"
)

// ScoreBreakdown holds the raw 0-100 sub-scores behind a candidate's total.
// The set of dimensions is closed so the scorer can be matched exhaustively.
type ScoreBreakdown struct {
	Length           float64 `json:"length"`
	Pronounceability float64 `json:"pronounceability"`
	Memorability     float64 `json:"memorability"`
	Extension        float64 `json:"extension"`
	CharacterQuality float64 `json:"characterQuality"`
	BrandRisk        float64 `json:"brandRisk"`
	Fit              float64 `json:"fit"`
}

// ScoredCandidate is a candidate with its brandability score attached.
// The score is a deterministic pure function of the candidate and the
// request context; it involves no randomness and no network.
type ScoredCandidate struct {
	Candidate

	// Score is the weighted 0-100 brandability total.
	Score float64 `json:"score"`
	// Breakdown holds the per-dimension raw sub-scores.
	Breakdown ScoreBreakdown `json:"scoreBreakdown"`
	// Band classifies Score into a coarse tier.
	Band QualityBand `json:"qualityBand"`
	// Meaning is the human-readable "why this name works" text.
	Meaning string `json:"whyTag,omitempty"`
	// MeaningScore rates how well the meaning explanation holds together.
	MeaningScore float64 `json:"meaningScore,omitempty"`
}

// BandFor maps a numeric score to its quality band.
func BandFor(score float64) QualityBand {
	switch {
	case score >= 80:
		return BandHigh
	case score >= 65:
		return BandMedium
	default:
		return BandLow
	}
}
