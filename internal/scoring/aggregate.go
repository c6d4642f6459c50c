// internal/scoring/aggregate.go
package scoring

// Aggregate blends the valid source scores by their redistributed weights.
// With no valid sources it returns the neutral 50 so the company keeps a
// well-defined numerical score.
func Aggregate(donations, sustainability, leadership, news SourceScore, w Weights) float64 {
	avail := Availability{
		Donations:      donations.Valid,
		Sustainability: sustainability.Valid,
		Leadership:     leadership.Valid,
		News:           news.Valid,
	}
	if avail.Count() == 0 {
		return 50
	}

	score := 0.0
	if donations.Valid {
		score += donations.Value * w.Donations
	}
	if sustainability.Valid {
		score += sustainability.Value * w.Sustainability
	}
	if leadership.Valid {
		score += leadership.Value * w.Leadership
	}
	if news.Valid {
		score += news.Value * w.News
	}
	return score
}

// Combine merges the numerical and narrative scores into the final score.
// With structured data present the two methods average evenly; with none the
// narrative score stands alone and the mode flags the result as
// inference-based.
func Combine(numerical float64, narrative *float64, dataSourceCount int) (float64, string) {
	if narrative == nil {
		return numerical, ModeHybrid
	}
	if dataSourceCount > 0 {
		return (numerical + *narrative) / 2, ModeHybrid
	}
	return *narrative, ModeNarrativeOnly
}
