package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiply_ColumnMajorProduct(t *testing.T) {
	// A = [1 3 5; 2 4 6] (2×3), B = [1 0; 0 1; 1 1] (3×2), column-major.
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{1, 0, 1, 0, 1, 1}
	c := []float64{10, 20, 30, 40}

	multiply(2, a, b, 1, c, 2)

	// A·B = [6 8; 8 10]
	assert.Equal(t, []float64{10 + 12, 20 + 16, 30 + 16, 40 + 20}, c)
}

func TestMultiply_BetaZeroOverwrites(t *testing.T) {
	a := []float64{2}
	b := []float64{3, 4}
	c := []float64{100, 100}

	multiply(1, a, b, 0, c, 1)

	assert.Equal(t, []float64{6, 8}, c)
}

func TestMultiply_MismatchedShapes_Panics(t *testing.T) {
	assert.Panics(t, func() { multiply(1, make([]float64, 3), nil, 0, make([]float64, 2), 2) })
	assert.Panics(t, func() { multiply(1, make([]float64, 4), make([]float64, 3), 0, make([]float64, 4), 2) })
}
