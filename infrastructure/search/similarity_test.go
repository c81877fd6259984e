package search

import (
	"testing"

	"github.com/seekr-labs/vecstore/domain/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float64{1, 0, 0},
			b:        []float64{1, 0, 0},
			expected: 1.0,
		},
		{
			name:     "opposite vectors",
			a:        []float64{1, 0, 0},
			b:        []float64{-1, 0, 0},
			expected: -1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float64{1, 0, 0},
			b:        []float64{0, 1, 0},
			expected: 0.0,
		},
		{
			name:     "zero vector a",
			a:        []float64{0, 0, 0},
			b:        []float64{1, 0, 0},
			expected: 0.0,
		},
		{
			name:     "zero vector b",
			a:        []float64{1, 0, 0},
			b:        []float64{0, 0, 0},
			expected: 0.0,
		},
		{
			name:     "both zero vectors",
			a:        []float64{0, 0, 0},
			b:        []float64{0, 0, 0},
			expected: 0.0,
		},
		{
			name:     "empty vectors",
			a:        []float64{},
			b:        []float64{},
			expected: 0.0,
		},
		{
			name:     "mismatched lengths",
			a:        []float64{1, 0},
			b:        []float64{1, 0, 0},
			expected: 0.0,
		},
		{
			name:     "scaled vectors keep similarity 1",
			a:        []float64{1, 2, 3},
			b:        []float64{2, 4, 6},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarity_RangeBound(t *testing.T) {
	vectors := [][]float64{
		{0.3, -0.7, 0.2},
		{-1.5, 2.5, 0.1},
		{10, 10, 10},
		{0.001, 0, -0.001},
	}
	for _, a := range vectors {
		for _, b := range vectors {
			s := CosineSimilarity(a, b)
			assert.GreaterOrEqual(t, s, -1.0-1e-9)
			assert.LessOrEqual(t, s, 1.0+1e-9)
		}
	}
}

func candidate(chunkID string, embedding []float64) vector.Record {
	return vector.NewRecord("doc-1", chunkID, 0, "content of "+chunkID, embedding, nil)
}

func TestRank_ThresholdDiscardsLowScores(t *testing.T) {
	query := []float64{1, 0, 0}
	candidates := []vector.Record{
		candidate("close", []float64{1, 0.1, 0}),
		candidate("orthogonal", []float64{0, 1, 0}),
		candidate("opposite", []float64{-1, 0, 0}),
	}

	results := Rank(query, candidates, 0.7, 10)

	require.Len(t, results, 1)
	assert.Equal(t, "close", results[0].Record().ChunkID())
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Similarity(), 0.7)
	}
}

func TestRank_SortsDescendingAndTruncates(t *testing.T) {
	query := []float64{1, 0, 0}
	candidates := []vector.Record{
		candidate("far", []float64{1, 2, 0}),
		candidate("exact", []float64{2, 0, 0}),
		candidate("near", []float64{1, 0.5, 0}),
	}

	results := Rank(query, candidates, 0.0, 2)

	require.Len(t, results, 2)
	assert.Equal(t, "exact", results[0].Record().ChunkID())
	assert.Equal(t, "near", results[1].Record().ChunkID())
	assert.GreaterOrEqual(t, results[0].Similarity(), results[1].Similarity())
}

func TestRank_TiesKeepRetrievalOrder(t *testing.T) {
	query := []float64{1, 0, 0}
	// All candidates are parallel to the query, so every score is exactly 1.
	candidates := []vector.Record{
		candidate("first", []float64{1, 0, 0}),
		candidate("second", []float64{2, 0, 0}),
		candidate("third", []float64{3, 0, 0}),
	}

	results := Rank(query, candidates, 0.5, 10)

	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Record().ChunkID())
	assert.Equal(t, "second", results[1].Record().ChunkID())
	assert.Equal(t, "third", results[2].Record().ChunkID())
}

func TestRank_EmptyInputs(t *testing.T) {
	assert.Empty(t, Rank([]float64{1, 0}, nil, 0, 10))
	assert.Empty(t, Rank([]float64{1, 0}, []vector.Record{candidate("a", []float64{1, 0})}, 0, 0))
}
