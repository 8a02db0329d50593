// Package vector implements the similarity arithmetic the matching engine
// is built on. Vectors are stored as []float32 (wire/storage format) but
// all similarity math runs in float64.
package vector

import "math"

// Cosine returns the cosine similarity of two vectors in [-1, 1].
// A nil, empty, zero-magnitude, or dimension-mismatched pair scores 0:
// a malformed embedding must never fail a recommendation request.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
