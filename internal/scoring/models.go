// internal/scoring/models.go
package scoring

// SourceScore is a score with explicit presence. Valid false means the
// source had no usable data; Value is meaningless in that case. Scorers
// never substitute a default for a missing source.
type SourceScore struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Score wraps a value in a valid SourceScore.
func Score(v float64) SourceScore {
	return SourceScore{Value: v, Valid: true}
}

// NoData is the absent score.
func NoData() SourceScore {
	return SourceScore{}
}

// Availability records which of the four sources produced a score for a
// company.
type Availability struct {
	Donations      bool
	Sustainability bool
	Leadership     bool
	News           bool
}

// Count returns the number of available sources.
func (a Availability) Count() int {
	n := 0
	for _, has := range []bool{a.Donations, a.Sustainability, a.Leadership, a.News} {
		if has {
			n++
		}
	}
	return n
}

// Weights are the per-source blend weights after redistribution. They sum to
// 1 when at least one source is available and are all zero otherwise.
type Weights struct {
	Donations      float64 `json:"donations"`
	Sustainability float64 `json:"sustainability"`
	Leadership     float64 `json:"leadership"`
	News           float64 `json:"news"`
}

// Scoring mode labels for CompanyResult.
const (
	ModeHybrid        = "hybrid"
	ModeNarrativeOnly = "narrative-only"
)

// CompanyResult is the immutable outcome of scoring one company for one
// persona.
type CompanyResult struct {
	Symbol              string      `json:"symbol"`
	Name                string      `json:"name"`
	Sector              string      `json:"sector"`
	DonationScore       SourceScore `json:"donation_score"`
	SustainabilityScore SourceScore `json:"sustainability_score"`
	LeadershipScore     SourceScore `json:"leadership_score"`
	NewsScore           SourceScore `json:"news_score"`
	Weights             Weights     `json:"weights"`
	NumericalScore      float64     `json:"numerical_score"`
	NarrativeScore      *float64    `json:"narrative_score,omitempty"`
	NarrativeReasoning  string      `json:"narrative_reasoning,omitempty"`
	FinalScore          float64     `json:"final_score"`
	DataSourceCount     int         `json:"data_source_count"`
	Mode                string      `json:"mode"`
}

// Availability derives the source availability from the four scores.
func (r *CompanyResult) Availability() Availability {
	return Availability{
		Donations:      r.DonationScore.Valid,
		Sustainability: r.SustainabilityScore.Valid,
		Leadership:     r.LeadershipScore.Valid,
		News:           r.NewsScore.Valid,
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
