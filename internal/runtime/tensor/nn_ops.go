package tensor

import (
	"math"

	"github.com/pkg/errors"
)

// Softmax normalizes each row along the last axis into a probability
// distribution.
func Softmax(x *Tensor) (*Tensor, error) {
	if x == nil {
		return nil, errors.New("tensor: softmax on nil tensor")
	}

	if x.Rank() == 0 {
		return nil, errors.New("tensor: softmax requires rank >= 1")
	}

	width := int(x.shape[x.Rank()-1])
	if width <= 0 {
		return nil, errors.Errorf("tensor: softmax over empty last axis in shape %v", x.shape)
	}

	out := x.Clone()

	for lo := 0; lo < len(out.data); lo += width {
		row := out.data[lo : lo+width]

		peak := row[0]
		for _, v := range row[1:] {
			peak = max(peak, v)
		}

		var sum float64
		for i, v := range row {
			e := math.Exp(float64(v - peak))
			row[i] = float32(e)
			sum += e
		}

		inv := float32(1 / sum)
		for i := range row {
			row[i] *= inv
		}
	}

	return out, nil
}

// Linear applies y = x * W^T + b where weight shape is [out, in].
// Rows of x are split across the worker pool (see SetWorkers).
func Linear(x, weight, bias *Tensor) (*Tensor, error) {
	if x == nil || weight == nil {
		return nil, errors.New("tensor: linear requires non-nil x and weight")
	}

	if x.Rank() < 1 {
		return nil, errors.New("tensor: linear requires x rank >= 1")
	}

	if weight.Rank() != 2 {
		return nil, errors.Errorf("tensor: linear weight must be rank 2, got %d", weight.Rank())
	}

	in := int(x.shape[x.Rank()-1])
	out := int(weight.shape[0])

	if int(weight.shape[1]) != in {
		return nil, errors.Errorf("tensor: linear mismatch: x last dim %d, weight in dim %d", in, weight.shape[1])
	}

	if bias != nil && (bias.Rank() != 1 || int(bias.shape[0]) != out) {
		return nil, errors.Errorf("tensor: linear bias shape %v does not match out dim %d", bias.shape, out)
	}

	rows := 0
	if in > 0 {
		rows = len(x.data) / in
	}

	y := make([]float32, rows*out)

	forRows(rows, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			xr := x.data[r*in : (r+1)*in]
			yr := y[r*out : (r+1)*out]

			for o := range yr {
				yr[o] = dotF32(xr, weight.data[o*in:(o+1)*in])
				if bias != nil {
					yr[o] += bias.data[o]
				}
			}
		}
	})

	shape := append([]int64(nil), x.shape...)
	shape[len(shape)-1] = int64(out)

	return wrap(y, shape), nil
}

// Add returns the element-wise sum of two tensors with identical shapes.
func Add(a, b *Tensor) (*Tensor, error) {
	if a == nil || b == nil {
		return nil, errors.New("tensor: add requires non-nil inputs")
	}

	if !equalShape(a.shape, b.shape) {
		return nil, errors.Errorf("tensor: add shape mismatch %v vs %v", a.shape, b.shape)
	}

	sum := make([]float32, len(a.data))
	for i := range sum {
		sum[i] = a.data[i] + b.data[i]
	}

	return wrap(sum, append([]int64(nil), a.shape...)), nil
}

// ArgMax returns the index of the largest element of v, or -1 for empty v.
// Ties resolve to the lowest index.
func ArgMax(v []float32) int {
	best := -1

	for i, x := range v {
		if best < 0 || x > v[best] {
			best = i
		}
	}

	return best
}
