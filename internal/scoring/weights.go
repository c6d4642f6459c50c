// internal/scoring/weights.go
package scoring

// Target weights when all four sources are present.
const (
	targetDonations      = 0.4
	targetSustainability = 0.3
	targetLeadership     = 0.2
	targetNews           = 0.1
)

// RedistributeWeights spreads the target weights proportionally across the
// available sources so they always sum to 1. With no sources available every
// weight is zero and the caller falls back to the neutral score.
func RedistributeWeights(avail Availability) Weights {
	total := 0.0
	if avail.Donations {
		total += targetDonations
	}
	if avail.Sustainability {
		total += targetSustainability
	}
	if avail.Leadership {
		total += targetLeadership
	}
	if avail.News {
		total += targetNews
	}

	if total == 0 {
		return Weights{}
	}

	var w Weights
	if avail.Donations {
		w.Donations = targetDonations / total
	}
	if avail.Sustainability {
		w.Sustainability = targetSustainability / total
	}
	if avail.Leadership {
		w.Leadership = targetLeadership / total
	}
	if avail.News {
		w.News = targetNews / total
	}
	return w
}
