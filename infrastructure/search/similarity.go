// Package search implements cosine similarity scoring and ranking of
// embedding records.
package search

import (
	"math"
	"sort"

	"github.com/seekr-labs/vecstore/domain/vector"
)

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 (opposite) and 1 (identical).
// Returns 0 if either vector has zero magnitude or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, magA, magB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Rank scores every candidate against the query, discards scores below the
// threshold, sorts the rest by similarity descending, and truncates to limit.
// The sort is stable: candidates with equal similarity keep their retrieval
// order, so ranking is deterministic without a secondary key.
func Rank(query []float64, candidates []vector.Record, threshold float64, limit int) []vector.ScoredRecord {
	if len(candidates) == 0 || limit <= 0 {
		return []vector.ScoredRecord{}
	}

	scored := make([]vector.ScoredRecord, 0, len(candidates))
	for _, c := range candidates {
		similarity := CosineSimilarity(query, c.Embedding())
		if similarity < threshold {
			continue
		}
		scored = append(scored, vector.NewScoredRecord(c, similarity))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity() > scored[j].Similarity()
	})

	if limit < len(scored) {
		scored = scored[:limit]
	}
	return scored
}
