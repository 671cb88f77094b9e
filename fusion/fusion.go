package fusion

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/hupe1980/rankfuse/model"
)

// DefaultK is the standard RRF dampening constant (Cormack et al. 2009).
// Larger values flatten the score differences between ranks.
const DefaultK = 60

// WeightTolerance is the accepted deviation of a weight sum from 1.0. The
// boundary is inclusive: |sum - 1.0| <= WeightTolerance passes. The exact
// boundary semantics are implementation-defined, not a contract to rely on.
const WeightTolerance = 0.01

// ErrInvalidK is returned when the RRF constant is not positive.
var ErrInvalidK = errors.New("rrf k must be positive")

// ErrWeightCount indicates a rankings/weights length mismatch passed to
// Weighted.
type ErrWeightCount struct {
	Rankings int
	Weights  int
}

func (e *ErrWeightCount) Error() string {
	return fmt.Sprintf("weight count mismatch: %d rankings, %d weights", e.Rankings, e.Weights)
}

// ErrWeightSum indicates weights that do not sum to 1.0 within
// WeightTolerance.
type ErrWeightSum struct {
	Sum float64
}

func (e *ErrWeightSum) Error() string {
	return fmt.Sprintf("weights must sum to 1.0 (±%g), got %g", WeightTolerance, e.Sum)
}

// fused accumulates one id's contributions across rankings. item keeps the
// payload and metadata of the first sighting; firstRank is the 1-indexed rank
// of that sighting and breaks score ties.
type fused struct {
	item      model.RankedItem
	score     float64
	firstRank int
}

// ReciprocalRank merges rankings with Reciprocal Rank Fusion: each entry at
// 1-indexed rank r contributes 1/(k+r) to its id's fused score, summed across
// all rankings. Payload and metadata come from the first ranking (in input
// order) containing the id. Empty rankings are ignored; if all rankings are
// empty the result is empty. Inputs are not mutated.
func ReciprocalRank(rankings []model.Ranking, k int) (model.Ranking, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	acc := make(map[string]*fused)
	for _, ranking := range rankings {
		for i, item := range ranking {
			rank := i + 1
			f, ok := acc[item.ID]
			if !ok {
				f = &fused{item: item, firstRank: rank}
				acc[item.ID] = f
			}
			f.score += 1.0 / float64(k+rank)
		}
	}

	return collect(acc), nil
}

// Weighted merges rankings with a weighted sum of per-ranking max-normalized
// scores. weights must be parallel to rankings and sum to 1.0 within
// WeightTolerance; both are checked before any computation. A ranking whose
// maximum score is 0 contributes its raw (all-zero) scores rather than
// dividing by zero. Ids absent from a ranking contribute 0 for that ranking.
// Payload and first-seen rules match ReciprocalRank. Inputs are not mutated.
func Weighted(rankings []model.Ranking, weights []float64) (model.Ranking, error) {
	if len(rankings) != len(weights) {
		return nil, &ErrWeightCount{Rankings: len(rankings), Weights: len(weights)}
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return nil, &ErrWeightSum{Sum: sum}
	}

	acc := make(map[string]*fused)
	for ri, ranking := range rankings {
		var max float64
		for _, item := range ranking {
			if item.Score > max {
				max = item.Score
			}
		}

		for i, item := range ranking {
			norm := item.Score
			if max > 0 {
				norm = item.Score / max
			}

			f, ok := acc[item.ID]
			if !ok {
				f = &fused{item: item, firstRank: i + 1}
				acc[item.ID] = f
			}
			f.score += weights[ri] * norm
		}
	}

	return collect(acc), nil
}

// collect sorts fused entries into the output ranking. The order is a total
// one — descending fused score, then ascending first-seen rank, then
// ascending id — so the result never depends on map iteration order.
func collect(acc map[string]*fused) model.Ranking {
	entries := make([]*fused, 0, len(acc))
	for _, f := range acc {
		entries = append(entries, f)
	}

	slices.SortFunc(entries, func(a, b *fused) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		if a.firstRank != b.firstRank {
			return a.firstRank - b.firstRank
		}
		return strings.Compare(a.item.ID, b.item.ID)
	})

	out := make(model.Ranking, 0, len(entries))
	for _, f := range entries {
		item := f.item
		item.Score = f.score
		out = append(out, item)
	}

	return out
}
