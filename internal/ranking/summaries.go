// internal/ranking/summaries.go
package ranking

import (
	"fmt"

	"alignment-engine/internal/narrative"
	"alignment-engine/internal/sources"
)

// buildSourceSummary renders the per-source one-liners embedded in the
// narrative prompt.
func buildSourceSummary(data *sources.CompanyData) narrative.SourceSummary {
	summary := narrative.SourceSummary{}

	if d := data.Donations; d != nil {
		summary.Donations = fmt.Sprintf(
			"Political Donations: Total $%.0f, Democrat: $%.0f, Republican: $%.0f",
			d.TotalUSD,
			d.PartyTotals["DEM"].TotalAmountUSD,
			d.PartyTotals["REP"].TotalAmountUSD,
		)
		summary.HasData = true
	}

	if s := data.Sustainability; s != nil {
		summary.Sustainability = fmt.Sprintf(
			"Sustainability Scores: Environmental: %s, Social: %s, Governance: %s",
			formatScore(s.EnvironmentalScore),
			formatScore(s.SocialScore),
			formatScore(s.GovernanceScore),
		)
		summary.HasData = true
	}

	if l := data.Leadership; l != nil && l.HasStatements {
		summary.Leadership = fmt.Sprintf(
			"Leadership Analysis: Political stance: %s, Confidence: %.0f%%",
			leaningOr(l.PoliticalStance.OverallLeaning),
			l.PoliticalStance.Confidence,
		)
		summary.HasData = true
	}

	if len(data.News) > 0 {
		summary.News = fmt.Sprintf("Recent News: %d articles available", len(data.News))
		summary.HasData = true
	}

	return summary
}

func formatScore(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.0f", *p)
}

func leaningOr(leaning string) string {
	if leaning == "" {
		return "unknown"
	}
	return leaning
}
