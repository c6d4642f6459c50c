// internal/scoring/leadership.go
package scoring

import (
	"math"
	"strings"

	"alignment-engine/internal/persona"
	"alignment-engine/internal/sources"
)

// ScoreLeadership rates an executive-statement analysis against a persona's
// preferred leanings. An analysis below the persona's confidence threshold
// scores exactly neutral; that is a valid score, not missing data.
func ScoreLeadership(data *sources.LeadershipAnalysis, archetype persona.Archetype, cfg persona.Config) SourceScore {
	if data == nil || !data.HasStatements {
		return NoData()
	}

	prefs := cfg.Leadership

	if data.PoliticalStance.Confidence < prefs.ConfidenceThreshold {
		return Score(50)
	}

	leaning := strings.ToLower(data.PoliticalStance.OverallLeaning)
	matches := false
	for _, preferred := range prefs.PreferredLeanings {
		if strings.Contains(leaning, strings.ToLower(preferred)) {
			matches = true
			break
		}
	}

	score := valueOr(data.RecommendationScore, 50)

	if matches {
		score = math.Min(100, score+15)
	} else if leaning != "" && leaning != "moderate" {
		score = math.Max(0, score-15)
	}

	if data.Sentiment != nil {
		score += sentimentAdjustment(data.Sentiment, archetype)
	}

	if data.SocialResponsibility != nil {
		score += responsibilityAdjustment(data.SocialResponsibility, archetype)
	}

	return Score(clamp(score))
}

func sentimentAdjustment(s *sources.SentimentAnalysis, archetype persona.Archetype) float64 {
	adj := 0.0

	if s.ControversyLevel != nil {
		level := *s.ControversyLevel
		if archetype.IsSocialist() || archetype.IsNationalist() {
			// Anti-establishment personas read controversy favorably.
			adj += math.Min(5, level*0.5)
		} else if archetype == persona.CapitalistGlobalist {
			adj -= math.Min(8, level*0.8)
		}
	}

	switch strings.ToLower(s.PublicPerceptionRisk) {
	case "high":
		adj -= 5
	case "medium":
		adj -= 2
	}

	switch strings.ToLower(s.OverallSentiment) {
	case "positive":
		adj += 3
	case "negative":
		adj -= 3
	}

	return adj
}

func responsibilityAdjustment(r *sources.SocialResponsibility, archetype persona.Archetype) float64 {
	adj := 0.0

	if r.LaborPracticesScore != nil && (archetype.IsProgressive() || archetype.IsSocialist()) {
		adj += ((*r.LaborPracticesScore - 50) / 50) * 8
	}

	if r.CommunityEngagementScore != nil && archetype.IsNationalist() {
		adj += ((*r.CommunityEngagementScore - 50) / 50) * 6
	}

	if r.DiversityInclusionScore != nil {
		if archetype.IsProgressive() {
			adj += ((*r.DiversityInclusionScore - 50) / 50) * 10
		} else if archetype.IsConservative() {
			adj += ((*r.DiversityInclusionScore - 50) / 50) * -2
		}
	}

	return adj
}
