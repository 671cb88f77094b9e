package fusion

import (
	"math"
	"testing"

	"github.com/hupe1980/rankfuse/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranking(entries ...model.RankedItem) model.Ranking {
	return model.Ranking(entries)
}

func item(id string, score float64) model.RankedItem {
	return model.RankedItem{ID: id, Score: score}
}

func TestReciprocalRank_Consensus(t *testing.T) {
	// Vector ranking: A, B, C. Lexical ranking: B, D, A.
	// B: rank 2 + rank 1 -> 1/62 + 1/61 = 0.032522
	// A: rank 1 + rank 3 -> 1/61 + 1/63 = 0.032266
	// D: rank 2 only     -> 1/62       = 0.016129
	// C: rank 3 only     -> 1/63       = 0.015873
	// B appears in both lists and must beat A despite A's rank-1 spot.
	r1 := ranking(item("A", 0.9), item("B", 0.8), item("C", 0.7))
	r2 := ranking(item("B", 5.2), item("D", 4.8), item("A", 4.5))

	out, err := ReciprocalRank([]model.Ranking{r1, r2}, 60)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "B", out[0].ID)
	assert.Equal(t, "A", out[1].ID)
	assert.Equal(t, "D", out[2].ID)
	assert.Equal(t, "C", out[3].ID)

	assert.InDelta(t, 1.0/62+1.0/61, out[0].Score, 1e-12)
	assert.InDelta(t, 1.0/61+1.0/63, out[1].Score, 1e-12)
	assert.InDelta(t, 1.0/62, out[2].Score, 1e-12)
	assert.InDelta(t, 1.0/63, out[3].Score, 1e-12)
}

func TestReciprocalRank_Sortedness(t *testing.T) {
	r1 := ranking(item("A", 3), item("B", 2), item("C", 1))
	r2 := ranking(item("C", 9), item("D", 8), item("A", 7), item("E", 6))

	out, err := ReciprocalRank([]model.Ranking{r1, r2}, DefaultK)
	require.NoError(t, err)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score)
	}
}

func TestReciprocalRank_TieBreak(t *testing.T) {
	// A and B each appear once at rank 1, so both score 1/61.
	// The tie resolves lexicographically by id.
	r1 := ranking(item("zzz", 1))
	r2 := ranking(item("aaa", 1))

	out, err := ReciprocalRank([]model.Ranking{r1, r2}, 60)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "aaa", out[0].ID)
	assert.Equal(t, "zzz", out[1].ID)
	assert.InDelta(t, out[0].Score, out[1].Score, 1e-15)
}

func TestReciprocalRank_FirstSeenPayload(t *testing.T) {
	first := model.RankedItem{
		ID:       "A",
		Payload:  model.LexicalPayload{Result: model.LexicalResult{ID: "A", Text: "first"}},
		Score:    2,
		Metadata: map[string]any{"origin": "first"},
	}
	second := model.RankedItem{
		ID:       "A",
		Payload:  model.LexicalPayload{Result: model.LexicalResult{ID: "A", Text: "second"}},
		Score:    9,
		Metadata: map[string]any{"origin": "second"},
	}

	out, err := ReciprocalRank([]model.Ranking{ranking(first), ranking(second)}, 60)
	require.NoError(t, err)
	require.Len(t, out, 1)

	payload, ok := out[0].Payload.(model.LexicalPayload)
	require.True(t, ok)
	assert.Equal(t, "first", payload.Result.Text)
	assert.Equal(t, map[string]any{"origin": "first"}, out[0].Metadata)
}

func TestReciprocalRank_EmptyRankings(t *testing.T) {
	out, err := ReciprocalRank([]model.Ranking{{}, {}}, 60)
	require.NoError(t, err)
	assert.Empty(t, out)

	// Empty rankings are ignored, non-empty ones still fuse.
	out, err = ReciprocalRank([]model.Ranking{{}, ranking(item("A", 1))}, 60)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].ID)

	out, err = ReciprocalRank(nil, 60)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestReciprocalRank_InvalidK(t *testing.T) {
	_, err := ReciprocalRank([]model.Ranking{ranking(item("A", 1))}, 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = ReciprocalRank([]model.Ranking{ranking(item("A", 1))}, -5)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestWeighted_Basic(t *testing.T) {
	// R1 max 2.0: A -> 1.0, B -> 0.5. R2 max 10: B -> 1.0, C -> 0.5.
	// A = 0.6*1.0 = 0.6
	// B = 0.6*0.5 + 0.4*1.0 = 0.7
	// C = 0.4*0.5 = 0.2
	r1 := ranking(item("A", 2.0), item("B", 1.0))
	r2 := ranking(item("B", 10), item("C", 5))

	out, err := Weighted([]model.Ranking{r1, r2}, []float64{0.6, 0.4})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "B", out[0].ID)
	assert.Equal(t, "A", out[1].ID)
	assert.Equal(t, "C", out[2].ID)

	assert.InDelta(t, 0.7, out[0].Score, 1e-12)
	assert.InDelta(t, 0.6, out[1].Score, 1e-12)
	assert.InDelta(t, 0.2, out[2].Score, 1e-12)
}

func TestWeighted_CountMismatch(t *testing.T) {
	r := ranking(item("A", 1))

	_, err := Weighted([]model.Ranking{r}, []float64{0.5, 0.5})

	var wantErr *ErrWeightCount
	require.ErrorAs(t, err, &wantErr)
	assert.Equal(t, 1, wantErr.Rankings)
	assert.Equal(t, 2, wantErr.Weights)
}

func TestWeighted_SumOutOfTolerance(t *testing.T) {
	r1 := ranking(item("A", 1))
	r2 := ranking(item("B", 1))

	_, err := Weighted([]model.Ranking{r1, r2}, []float64{0.3, 0.3})

	var wantErr *ErrWeightSum
	require.ErrorAs(t, err, &wantErr)
	assert.InDelta(t, 0.6, wantErr.Sum, 1e-12)
}

func TestWeighted_SumWithinTolerance(t *testing.T) {
	r1 := ranking(item("A", 1))
	r2 := ranking(item("B", 1))

	// 1.005 deviates by 0.005, inside the tolerance.
	_, err := Weighted([]model.Ranking{r1, r2}, []float64{0.6, 0.405})
	assert.NoError(t, err)
}

func TestWeighted_ZeroMaxRanking(t *testing.T) {
	// R1's maximum is 0: its scores stay as-is instead of dividing by zero.
	r1 := ranking(item("A", 0), item("B", 0))
	r2 := ranking(item("B", 4))

	out, err := Weighted([]model.Ranking{r1, r2}, []float64{0.5, 0.5})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "B", out[0].ID)
	assert.InDelta(t, 0.5, out[0].Score, 1e-12)
	assert.InDelta(t, 0.0, out[1].Score, 1e-12)

	for _, it := range out {
		assert.False(t, math.IsNaN(it.Score))
		assert.False(t, math.IsInf(it.Score, 0))
	}
}

func TestFusion_DoesNotMutateInputs(t *testing.T) {
	r1 := ranking(item("A", 3), item("B", 2))
	r2 := ranking(item("B", 7), item("C", 6))

	want1 := append(model.Ranking(nil), r1...)
	want2 := append(model.Ranking(nil), r2...)

	_, err := ReciprocalRank([]model.Ranking{r1, r2}, 60)
	require.NoError(t, err)
	_, err = Weighted([]model.Ranking{r1, r2}, []float64{0.5, 0.5})
	require.NoError(t, err)

	assert.Equal(t, want1, r1)
	assert.Equal(t, want2, r2)
}
