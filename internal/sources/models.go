// internal/sources/models.go
package sources

import "time"

// Company is one entry in the scored universe.
type Company struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// DonationSummary aggregates a company's federal political donations.
// PartyTotals keys are party codes ("DEM", "REP", minor parties).
type DonationSummary struct {
	PartyTotals        map[string]PartyTotal `json:"party_totals"`
	TotalUSD           float64               `json:"total_usd"`
	PoliticalLeanScore *float64              `json:"political_lean_score,omitempty"`
	CycleYear          int                   `json:"cycle_year,omitempty"`
}

// PartyTotal is the per-party slice of a donation summary.
type PartyTotal struct {
	TotalAmountUSD float64 `json:"total_amount_usd"`
	DonationCount  int     `json:"donation_count,omitempty"`
}

// SustainabilityRecord holds a company's environmental/social/governance
// sub-scores plus optional derived fields. Nil sub-scores mean the provider
// had no figure, not zero.
type SustainabilityRecord struct {
	EnvironmentalScore   *float64           `json:"environmental_score,omitempty"`
	SocialScore          *float64           `json:"social_score,omitempty"`
	GovernanceScore      *float64           `json:"governance_score,omitempty"`
	OverallScore         *float64           `json:"overall_score,omitempty"`
	ProgressiveLeanScore *float64           `json:"progressive_lean_score,omitempty"`
	IndustryAverages     *IndustryAverages  `json:"industry_averages,omitempty"`
}

// IndustryAverages carries sector-level reference figures for
// industry-relative scoring.
type IndustryAverages struct {
	OverallScore *float64 `json:"overall_score,omitempty"`
}

// LeadershipAnalysis is the structured output of the executive-statement
// analysis pipeline for one company.
type LeadershipAnalysis struct {
	HasStatements        bool                  `json:"has_statements"`
	PoliticalStance      PoliticalStance       `json:"political_stance"`
	RecommendationScore  *float64              `json:"recommendation_score,omitempty"`
	Sentiment            *SentimentAnalysis    `json:"sentiment_analysis,omitempty"`
	SocialResponsibility *SocialResponsibility `json:"social_responsibility,omitempty"`
}

// PoliticalStance is the classified leaning of a company's executives.
type PoliticalStance struct {
	OverallLeaning string  `json:"overall_leaning"`
	Confidence     float64 `json:"confidence"`
}

// SentimentAnalysis covers tone and reputational risk signals from
// executive statements.
type SentimentAnalysis struct {
	ControversyLevel     *float64 `json:"controversy_level,omitempty"`
	PublicPerceptionRisk string   `json:"public_perception_risk,omitempty"`
	OverallSentiment     string   `json:"overall_sentiment,omitempty"`
}

// SocialResponsibility covers labor, community, and diversity signals.
type SocialResponsibility struct {
	LaborPracticesScore      *float64 `json:"labor_practices_score,omitempty"`
	CommunityEngagementScore *float64 `json:"community_engagement_score,omitempty"`
	DiversityInclusionScore  *float64 `json:"diversity_inclusion_score,omitempty"`
}

// NewsArticle is one article from the news index.
type NewsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// CompanyData bundles everything FetchAll gathered for one company. A nil
// field means that source has no document for the ticker.
type CompanyData struct {
	Symbol         string
	Donations      *DonationSummary
	Sustainability *SustainabilityRecord
	Leadership     *LeadershipAnalysis
	News           []NewsArticle
}
