// internal/scoring/news.go
package scoring

import (
	"math"
	"strings"
	"time"

	"alignment-engine/internal/persona"
	"alignment-engine/internal/sources"
)

var controversialKeywords = []string{
	"lawsuit", "investigation", "scandal", "controversy", "violation",
	"fraud", "breach", "crisis", "protest", "strike", "layoff",
	"regulatory", "fine", "penalty", "allegation",
}

var positiveKeywords = []string{
	"innovation", "growth", "expansion", "profit", "success",
	"award", "breakthrough", "partnership", "achievement", "milestone",
	"sustainable", "ethical", "responsible",
}

var negativeKeywords = []string{
	"decline", "loss", "failure", "downgrade", "bankruptcy",
	"misconduct", "corruption", "harm", "damage", "risk",
}

// ScoreNews rates recent coverage of a company against a persona's sentiment
// preference. An empty article list is missing data.
func ScoreNews(articles []sources.NewsArticle, archetype persona.Archetype, cfg persona.Config) SourceScore {
	return scoreNewsAt(articles, archetype, cfg, time.Now())
}

func scoreNewsAt(articles []sources.NewsArticle, archetype persona.Archetype, cfg persona.Config, now time.Time) SourceScore {
	if len(articles) == 0 {
		return NoData()
	}

	prefs := cfg.News

	oneWeekAgo := now.Add(-7 * 24 * time.Hour)
	oneMonthAgo := now.Add(-30 * 24 * time.Hour)

	var recentCount, monthCount, olderCount int
	var controversialCount, positiveCount, negativeCount int

	for _, article := range articles {
		switch {
		case article.PublishedAt.After(oneWeekAgo):
			recentCount++
		case article.PublishedAt.After(oneMonthAgo):
			monthCount++
		default:
			olderCount++
		}

		content := strings.ToLower(article.Title + " " + article.Description)
		for _, kw := range controversialKeywords {
			if strings.Contains(content, kw) {
				controversialCount++
			}
		}
		for _, kw := range positiveKeywords {
			if strings.Contains(content, kw) {
				positiveCount++
			}
		}
		for _, kw := range negativeKeywords {
			if strings.Contains(content, kw) {
				negativeCount++
			}
		}
	}

	total := len(articles)
	recencyScore := float64(recentCount*100+monthCount*60+olderCount*30) / math.Max(1, float64(total))

	sentimentScore := 50.0
	totalKeywords := controversialCount + positiveCount + negativeCount
	if totalKeywords > 0 {
		positiveRatio := float64(positiveCount) / float64(totalKeywords)
		negativeRatio := float64(negativeCount) / float64(totalKeywords)
		controversialRatio := float64(controversialCount) / float64(totalKeywords)

		sentimentScore = 50 + (positiveRatio-negativeRatio)*50

		switch {
		case prefs.SentimentPreference > 0:
			sentimentScore += positiveRatio * 20
			sentimentScore -= controversialRatio * 10
		case prefs.SentimentPreference < 0:
			sentimentScore += controversialRatio * 15
			sentimentScore -= positiveRatio * 5
		default:
			// Neutral personas reward balanced coverage.
			balance := 1 - math.Abs(positiveRatio-negativeRatio)
			sentimentScore += balance * 10
		}
	}

	var volumeScore float64
	switch {
	case total < 5:
		volumeScore = 30
	case total < 10:
		volumeScore = 50
	case total < 20:
		volumeScore = 70
	default:
		volumeScore = 85
	}
	if archetype.IsGlobalist() {
		volumeScore *= 1.1
	} else if archetype.IsNationalist() {
		volumeScore *= 0.95
	}

	score := recencyScore*0.4 + sentimentScore*0.4 + volumeScore*0.2
	score = score*prefs.Importance + 50*(1-prefs.Importance)

	return Score(clamp(score))
}
