package tensor

import (
	"math"
	"slices"

	"github.com/pkg/errors"
)

// shapeElemCount returns the number of elements a shape holds.
func shapeElemCount(shape []int64) (int, error) {
	total := int64(1)

	for i, d := range shape {
		if d < 0 {
			return 0, errors.Errorf("tensor: shape %v has negative dimension at %d", shape, i)
		}

		if d != 0 && total > math.MaxInt/d {
			return 0, errors.Errorf("tensor: shape %v overflows int", shape)
		}

		total *= d
	}

	return int(total), nil
}

func equalShape(a, b []int64) bool {
	return slices.Equal(a, b)
}

// dotF32 computes the dot product of two equal-length float32 slices.
func dotF32(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum
}
