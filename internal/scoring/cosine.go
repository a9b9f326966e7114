package scoring

import "math"

// CosineSimilarity returns dot(a,b)/(|a||b|) clamped to [0,1]. Nil, empty or
// mismatched vectors and zero norms yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 || math.IsNaN(denom) {
		return 0
	}

	return math.Max(0, math.Min(1, dot/denom))
}
