package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSymmetricAndSelf(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{-0.5, 0.25, 8},
		{0.001, 0, -4},
	}
	for _, a := range vectors {
		self, err := Cosine(a, a)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, self, 1e-9)

		for _, b := range vectors {
			ab, err := Cosine(a, b)
			require.NoError(t, err)
			ba, err := Cosine(b, a)
			require.NoError(t, err)
			assert.Equal(t, ab, ba)
		}
	}
}

func TestCosineKnownValues(t *testing.T) {
	orth, err := Cosine([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0, orth, 1e-12)

	opp, err := Cosine([]float32{1, 1}, []float32{-1, -1})
	require.NoError(t, err)
	assert.InDelta(t, -1, opp, 1e-12)

	diag, err := Cosine([]float32{1, 0}, []float32{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt2, diag, 1e-7)
}

func TestCosineGuards(t *testing.T) {
	_, err := Cosine([]float32{0, 0}, []float32{1, 0})
	assert.ErrorIs(t, err, ErrZeroVector)

	_, err = Cosine([]float32{1, 0}, []float32{0, 0})
	assert.ErrorIs(t, err, ErrZeroVector)

	_, err = Cosine([]float32{1}, []float32{1, 0})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
