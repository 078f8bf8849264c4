// Package similarity compares documents by their weighted term vectors (cosine)
// and by their vocabularies (Jaccard). Both scores lie in [0,1] and are rounded
// to 4 decimal places.
package similarity

import (
	"maps"
	"math"
	"slices"

	"github.com/chriscorrea/textmetrics/internal/round"
	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// Precision is the number of decimal places similarity scores are rounded to.
const Precision = 4

// Cosine computes the cosine similarity of two sparse vectors over the union of
// their keys. It returns 0 when the union is empty or either vector has zero
// magnitude. Vectors are expected to carry non-negative weights; the result is
// clamped to [0,1] regardless.
func Cosine(v1, v2 map[string]float64) float64 {
	if len(v1) == 0 && len(v2) == 0 {
		return 0.0
	}

	// sum in key order so repeated calls give bit-identical results;
	// terms outside the intersection add exactly zero to the dot product
	var dotProduct, norm1, norm2 float64
	for _, term := range slices.Sorted(maps.Keys(v1)) {
		x := v1[term]
		dotProduct += x * v2[term]
		norm1 += x * x
	}
	for _, term := range slices.Sorted(maps.Keys(v2)) {
		y := v2[term]
		norm2 += y * y
	}

	if norm1 == 0 || norm2 == 0 {
		return 0.0
	}

	sim := dotProduct / (math.Sqrt(norm1) * math.Sqrt(norm2))
	return round.To(clamp(sim), Precision)
}

// Jaccard computes |A ∩ B| / |A ∪ B| over the lowercased term sets of two texts.
// When either text has no terms the result is 0.
func Jaccard(text1, text2 string) float64 {
	return JaccardSets(
		tokenize.TermSet(text1, tokenize.Options{}),
		tokenize.TermSet(text2, tokenize.Options{}),
	)
}

// JaccardSets computes the Jaccard similarity of two prepared term sets.
func JaccardSets(set1, set2 map[string]struct{}) float64 {
	if len(set1) == 0 || len(set2) == 0 {
		return 0.0
	}

	// iterate the smaller set
	if len(set1) > len(set2) {
		set1, set2 = set2, set1
	}

	intersection := 0
	for term := range set1 {
		if _, ok := set2[term]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection

	return round.To(float64(intersection)/float64(union), Precision)
}

func clamp(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
