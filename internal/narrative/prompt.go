// internal/narrative/prompt.go
package narrative

import (
	"fmt"
	"strings"
)

// buildPrompt assembles the assessment prompt. With structured data present
// the model is asked to reason over the per-source summaries; with none it
// falls back to general knowledge about the company and says so.
func buildPrompt(req Request) string {
	if req.Sources.HasData {
		return buildDataPrompt(req)
	}
	return buildGeneralKnowledgePrompt(req)
}

func buildDataPrompt(req Request) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("You are analyzing %s (%s) for alignment with this political/values profile:", req.Name, req.Symbol))
	parts = append(parts, req.Description)
	parts = append(parts, "\nAvailable Data:")
	parts = append(parts, "- "+summaryOr(req.Sources.Donations, "Political Donations: No data"))
	parts = append(parts, "- "+summaryOr(req.Sources.Sustainability, "Sustainability Scores: No data"))
	parts = append(parts, "- "+summaryOr(req.Sources.Leadership, "Leadership Analysis: No statements"))
	parts = append(parts, "- "+summaryOr(req.Sources.News, "Recent News: No data"))
	parts = append(parts, `
Based on ALL the data above, provide a comprehensive alignment score (0-100) where:
- 100 = Perfectly aligned with the values profile
- 50 = Neutral or mixed signals
- 0 = Completely opposed to the values profile

Respond in this EXACT format:
SCORE: [0-100]
REASONING: [Brief 1-sentence explanation combining insights from the donation, sustainability, leadership, and news data]`)

	return strings.Join(parts, "\n")
}

func buildGeneralKnowledgePrompt(req Request) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("You are analyzing %s for alignment with this political/values profile:", req.Name))
	parts = append(parts, req.Description)
	parts = append(parts, `
NOTE: No structured data (political donations, sustainability scores, leadership statements, or recent news) is available for this company.
Please use your general knowledge about this company to provide an assessment.

Consider:
- The company's public reputation and known political/social stances
- Industry sector and typical practices
- Known controversies or positive initiatives
- Corporate culture and values (if publicly known)

Provide a comprehensive alignment score (0-100) where:
- 100 = Perfectly aligned with the values profile
- 50 = Neutral or unknown
- 0 = Completely opposed to the values profile

Respond in this EXACT format:
SCORE: [0-100]
REASONING: [Brief explanation based on general knowledge about this company]`)

	return strings.Join(parts, "\n")
}

func summaryOr(line, fallback string) string {
	if line == "" {
		return fallback
	}
	return line
}
