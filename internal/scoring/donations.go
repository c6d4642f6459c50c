// internal/scoring/donations.go
package scoring

import (
	"math"

	"alignment-engine/internal/persona"
	"alignment-engine/internal/sources"
)

// ScoreDonations rates a company's donation record against a persona's party
// preference. A summary with no party totals or a zero total is treated as
// missing data, not a zero score.
func ScoreDonations(data *sources.DonationSummary, cfg persona.Config) SourceScore {
	if data == nil || len(data.PartyTotals) == 0 || data.TotalUSD == 0 {
		return NoData()
	}

	prefs := cfg.Donations

	demAmount := data.PartyTotals["DEM"].TotalAmountUSD
	repAmount := data.PartyTotals["REP"].TotalAmountUSD
	total := data.TotalUSD

	demRatio := demAmount / total
	repRatio := repAmount / total

	var alignment float64
	switch {
	case prefs.PartyPreference > 0:
		alignment = demRatio * 100 * prefs.PartyPreference
	case prefs.PartyPreference < 0:
		alignment = repRatio * 100 * math.Abs(prefs.PartyPreference)
	default:
		// Neutral personas reward balance between the two parties.
		alignment = 50 + math.Abs(demRatio-0.5)*100
	}

	// Large total donations read as establishment influence; penalty scales
	// with the persona's sensitivity and is capped.
	amountPenalty := math.Min(20, (total/1_000_000)*prefs.AmountSensitivity*10)

	score := alignment - amountPenalty + 20

	// Blend in the precomputed lean score when the collector produced one.
	// It runs -100 (strongly Republican) to +100 (strongly Democratic).
	if data.PoliticalLeanScore != nil {
		lean := *data.PoliticalLeanScore
		if prefs.PartyPreference > 0 {
			score = score*0.8 + ((lean+100)/2)*0.2
		} else if prefs.PartyPreference < 0 {
			score = score*0.8 + ((100-lean)/2)*0.2
		}
	}

	partyCount := len(data.PartyTotals)
	if math.Abs(prefs.PartyPreference) < 0.3 {
		score += math.Min(5, float64(partyCount)*2)
	} else if partyCount > 2 {
		score -= 3
	}

	return Score(clamp(score))
}
