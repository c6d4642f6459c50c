// internal/scoring/sustainability.go
package scoring

import (
	"math"

	"alignment-engine/internal/persona"
	"alignment-engine/internal/sources"
)

// ScoreSustainability rates a sustainability record against a persona's
// sub-score weighting and ESG stance. A record with all three sub-scores
// missing is treated as missing data.
func ScoreSustainability(data *sources.SustainabilityRecord, archetype persona.Archetype, cfg persona.Config) SourceScore {
	if data == nil || (data.EnvironmentalScore == nil && data.SocialScore == nil && data.GovernanceScore == nil) {
		return NoData()
	}

	prefs := cfg.Sustainability

	env := valueOr(data.EnvironmentalScore, 50)
	soc := valueOr(data.SocialScore, 50)
	gov := valueOr(data.GovernanceScore, 50)

	totalWeight := prefs.EnvironmentalWeight + prefs.SocialWeight + prefs.GovernanceWeight
	weighted := (env*prefs.EnvironmentalWeight + soc*prefs.SocialWeight + gov*prefs.GovernanceWeight) / totalWeight

	if !prefs.PreferHigh {
		// Anti-mandate personas read high ESG as regulatory burden.
		weighted = 100 - weighted
	}
	score := weighted*prefs.Importance + 50*(1-prefs.Importance)

	if data.ProgressiveLeanScore != nil && (archetype.IsProgressive() || archetype.IsSocialist()) {
		score = score*0.7 + *data.ProgressiveLeanScore*0.3
	}

	// Reward out-performing the sector average, bounded tightly so the
	// relative signal never dominates the absolute one.
	if data.IndustryAverages != nil && data.IndustryAverages.OverallScore != nil &&
		*data.IndustryAverages.OverallScore != 0 && data.OverallScore != nil {
		industryAvg := *data.IndustryAverages.OverallScore
		relative := ((*data.OverallScore - industryAvg) / industryAvg) * 100
		bonus := math.Max(-5, math.Min(5, relative/4))
		if prefs.PreferHigh {
			score += bonus
		} else {
			score -= bonus
		}
	}

	return Score(clamp(score))
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
