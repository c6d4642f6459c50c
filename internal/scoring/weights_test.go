// internal/scoring/weights_test.go
package scoring

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedistributeWeights(t *testing.T) {
	tests := []struct {
		name  string
		avail Availability
		want  Weights
	}{
		{
			name:  "all sources available",
			avail: Availability{Donations: true, Sustainability: true, Leadership: true, News: true},
			want:  Weights{Donations: 0.4, Sustainability: 0.3, Leadership: 0.2, News: 0.1},
		},
		{
			name:  "donations only gets full weight",
			avail: Availability{Donations: true},
			want:  Weights{Donations: 1.0},
		},
		{
			name:  "news only gets full weight",
			avail: Availability{News: true},
			want:  Weights{News: 1.0},
		},
		{
			name:  "no sources yields zero weights",
			avail: Availability{},
			want:  Weights{},
		},
		{
			name:  "donations and sustainability",
			avail: Availability{Donations: true, Sustainability: true},
			want:  Weights{Donations: 0.4 / 0.7, Sustainability: 0.3 / 0.7},
		},
		{
			name:  "leadership and news",
			avail: Availability{Leadership: true, News: true},
			want:  Weights{Leadership: 0.2 / 0.3, News: 0.1 / 0.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RedistributeWeights(tt.avail)
			assert.InDelta(t, tt.want.Donations, got.Donations, 1e-9)
			assert.InDelta(t, tt.want.Sustainability, got.Sustainability, 1e-9)
			assert.InDelta(t, tt.want.Leadership, got.Leadership, 1e-9)
			assert.InDelta(t, tt.want.News, got.News, 1e-9)
		})
	}
}

func TestRedistributeWeightsSumsToOne(t *testing.T) {
	// Every non-empty availability subset must redistribute to a unit sum.
	for mask := 0; mask < 16; mask++ {
		avail := Availability{
			Donations:      mask&1 != 0,
			Sustainability: mask&2 != 0,
			Leadership:     mask&4 != 0,
			News:           mask&8 != 0,
		}
		t.Run(fmt.Sprintf("mask_%04b", mask), func(t *testing.T) {
			w := RedistributeWeights(avail)
			sum := w.Donations + w.Sustainability + w.Leadership + w.News
			if avail.Count() == 0 {
				assert.Zero(t, sum)
			} else {
				assert.True(t, math.Abs(sum-1) < 1e-5, "sum = %f", sum)
			}
		})
	}
}

func TestRedistributeWeightsPreservesRatios(t *testing.T) {
	w := RedistributeWeights(Availability{Donations: true, News: true})
	// 0.4 : 0.1 ratio must survive redistribution.
	assert.InDelta(t, 4.0, w.Donations/w.News, 1e-9)
}
