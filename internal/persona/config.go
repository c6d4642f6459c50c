// internal/persona/config.go
package persona

// Config holds the per-archetype scoring preferences. The numbers are the
// calibrated values carried over from the production scoring tables; they are
// validated for bounds at startup, not re-derived.
type Config struct {
	Donations      DonationPrefs       `json:"donations"`
	Sustainability SustainabilityPrefs `json:"sustainability"`
	Leadership     LeadershipPrefs     `json:"leadership"`
	News           NewsPrefs           `json:"news"`
}

// DonationPrefs controls how political donation records are scored.
// PartyPreference runs -1 (strongly Republican) to +1 (strongly Democratic);
// AmountSensitivity scales the large-donor penalty.
type DonationPrefs struct {
	PartyPreference   float64 `json:"partyPreference"`
	AmountSensitivity float64 `json:"amountSensitivity"`
}

// SustainabilityPrefs weights the environmental/social/governance sub-scores.
// PreferHigh false inverts the scale for personas skeptical of ESG mandates.
type SustainabilityPrefs struct {
	EnvironmentalWeight float64 `json:"environmentalWeight"`
	SocialWeight        float64 `json:"socialWeight"`
	GovernanceWeight    float64 `json:"governanceWeight"`
	PreferHigh          bool    `json:"preferHigh"`
	Importance          float64 `json:"importance"`
}

// LeadershipPrefs controls scoring of executive-statement analyses.
type LeadershipPrefs struct {
	PreferredLeanings   []string `json:"preferredLeanings"`
	ConfidenceThreshold float64  `json:"confidenceThreshold"`
}

// NewsPrefs controls news sentiment scoring. SentimentPreference runs -1
// (prefers critical coverage) to +1 (prefers positive coverage).
type NewsPrefs struct {
	SentimentPreference float64 `json:"sentimentPreference"`
	Importance          float64 `json:"importance"`
}

// ConfigFor returns the scoring preferences for an archetype. The archetype
// must be one of the eight known values; Parse guards external input.
func ConfigFor(a Archetype) Config {
	return configs[a]
}

var configs = map[Archetype]Config{
	ProgressiveGlobalist: {
		Donations: DonationPrefs{PartyPreference: 0.9, AmountSensitivity: 0.5},
		Sustainability: SustainabilityPrefs{
			EnvironmentalWeight: 0.4,
			SocialWeight:        0.4,
			GovernanceWeight:    0.2,
			PreferHigh:          true,
			Importance:          0.9,
		},
		Leadership: LeadershipPrefs{
			PreferredLeanings:   []string{"progressive", "liberal", "moderate"},
			ConfidenceThreshold: 60,
		},
		News: NewsPrefs{SentimentPreference: 0.3, Importance: 0.6},
	},
	ProgressiveNationalist: {
		Donations: DonationPrefs{PartyPreference: 0.8, AmountSensitivity: 0.7},
		Sustainability: SustainabilityPrefs{
			EnvironmentalWeight: 0.35,
			SocialWeight:        0.35,
			GovernanceWeight:    0.3,
			PreferHigh:          true,
			Importance:          0.8,
		},
		Leadership: LeadershipPrefs{
			PreferredLeanings:   []string{"progressive", "liberal", "moderate"},
			ConfidenceThreshold: 65,
		},
		News: NewsPrefs{SentimentPreference: 0.2, Importance: 0.5},
	},
	SocialistLibertarian: {
		Donations: DonationPrefs{PartyPreference: 0.7, AmountSensitivity: 0.8},
		Sustainability: SustainabilityPrefs{
			EnvironmentalWeight: 0.3,
			SocialWeight:        0.4,
			GovernanceWeight:    0.3,
			PreferHigh:          true,
			Importance:          0.7,
		},
		Leadership: LeadershipPrefs{
			PreferredLeanings:   []string{"progressive", "liberal", "moderate", "libertarian"},
			ConfidenceThreshold: 60,
		},
		News: NewsPrefs{SentimentPreference: 0.0, Importance: 0.4},
	},
	SocialistNationalist: {
		Donations: DonationPrefs{PartyPreference: 0.6, AmountSensitivity: 0.9},
		Sustainability: SustainabilityPrefs{
			EnvironmentalWeight: 0.3,
			SocialWeight:        0.4,
			GovernanceWeight:    0.3,
			PreferHigh:          true,
			Importance:          0.6,
		},
		Leadership: LeadershipPrefs{
			PreferredLeanings:   []string{"progressive", "moderate", "conservative"},
			ConfidenceThreshold: 65,
		},
		News: NewsPrefs{SentimentPreference: -0.2, Importance: 0.5},
	},
	CapitalistGlobalist: {
		Donations: DonationPrefs{PartyPreference: 0.3, AmountSensitivity: 0.2},
		Sustainability: SustainabilityPrefs{
			EnvironmentalWeight: 0.3,
			SocialWeight:        0.4,
			GovernanceWeight:    0.3,
			PreferHigh:          true,
			Importance:          0.7,
		},
		Leadership: LeadershipPrefs{
			PreferredLeanings:   []string{"liberal", "moderate", "conservative"},
			ConfidenceThreshold: 55,
		},
		News: NewsPrefs{SentimentPreference: 0.4, Importance: 0.6},
	},
	CapitalistNationalist: {
		Donations: DonationPrefs{PartyPreference: 0.2, AmountSensitivity: 0.3},
		Sustainability: SustainabilityPrefs{
			EnvironmentalWeight: 0.25,
			SocialWeight:        0.35,
			GovernanceWeight:    0.4,
			PreferHigh:          true,
			Importance:          0.5,
		},
		Leadership: LeadershipPrefs{
			PreferredLeanings:   []string{"moderate", "conservative", "libertarian"},
			ConfidenceThreshold: 60,
		},
		News: NewsPrefs{SentimentPreference: 0.3, Importance: 0.5},
	},
	ConservativeGlobalist: {
		Donations: DonationPrefs{PartyPreference: -0.8, AmountSensitivity: 0.2},
		Sustainability: SustainabilityPrefs{
			EnvironmentalWeight: 0.2,
			SocialWeight:        0.2,
			GovernanceWeight:    0.6,
			PreferHigh:          false,
			Importance:          0.4,
		},
		Leadership: LeadershipPrefs{
			PreferredLeanings:   []string{"conservative", "moderate", "libertarian"},
			ConfidenceThreshold: 60,
		},
		News: NewsPrefs{SentimentPreference: 0.2, Importance: 0.5},
	},
	ConservativeNationalist: {
		Donations: DonationPrefs{PartyPreference: -0.9, AmountSensitivity: 0.4},
		Sustainability: SustainabilityPrefs{
			EnvironmentalWeight: 0.15,
			SocialWeight:        0.25,
			GovernanceWeight:    0.6,
			PreferHigh:          false,
			Importance:          0.3,
		},
		Leadership: LeadershipPrefs{
			PreferredLeanings:   []string{"conservative", "moderate"},
			ConfidenceThreshold: 65,
		},
		News: NewsPrefs{SentimentPreference: 0.0, Importance: 0.4},
	},
}
