package catalog

import (
	"errors"
	"math"
)

var (
	ErrZeroVector        = errors.New("catalog: zero-norm vector")
	ErrDimensionMismatch = errors.New("catalog: vector dimensions differ")
)

// Cosine returns the cosine of the angle between a and b.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
