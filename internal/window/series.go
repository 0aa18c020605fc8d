package window

import (
	"fmt"

	"github.com/example/go-rnn-prep/internal/runtime/tensor"
)

// SeriesPairs holds regression inputs and their single-step targets.
// X[i] is a window of the source series and Y[i] is a one-element row
// holding the value that follows it.
type SeriesPairs struct {
	X [][]float64
	Y [][]float64
}

// Len returns the number of input/target pairs.
func (p SeriesPairs) Len() int {
	return len(p.X)
}

// WindowSize returns the column count of X, or 0 when p is empty.
func (p SeriesPairs) WindowSize() int {
	if len(p.X) == 0 {
		return 0
	}

	return len(p.X[0])
}

// Series windows series with stride 1. It produces len(series)-size pairs
// where X[i] = series[i:i+size] and Y[i] = [series[i+size]].
func Series(series []float64, size int) (SeriesPairs, error) {
	if size < 1 || size >= len(series) {
		return SeriesPairs{}, fmt.Errorf("%w: window size %d must be in [1, %d)", ErrInvalidConfig, size, len(series))
	}

	n := len(series) - size
	x := make([][]float64, n)
	y := make([][]float64, n)

	for i := range n {
		x[i] = append([]float64(nil), series[i:i+size]...)
		y[i] = []float64{series[i+size]}
	}

	return SeriesPairs{X: x, Y: y}, nil
}

// Tensors converts the pairs to float32 tensors: X with shape [n, size] and
// Y with shape [n, 1].
func (p SeriesPairs) Tensors() (*tensor.Tensor, *tensor.Tensor, error) {
	n := p.Len()
	if n == 0 {
		return nil, nil, fmt.Errorf("%w: no pairs to convert", ErrInvalidConfig)
	}

	size := p.WindowSize()
	xData := make([]float32, 0, n*size)
	yData := make([]float32, 0, n)

	for i, row := range p.X {
		if len(row) != size {
			return nil, nil, fmt.Errorf("window: row %d has %d columns, want %d", i, len(row), size)
		}

		for _, v := range row {
			xData = append(xData, float32(v))
		}

		yData = append(yData, float32(p.Y[i][0]))
	}

	x, err := tensor.New(xData, []int64{int64(n), int64(size)})
	if err != nil {
		return nil, nil, fmt.Errorf("window: build X tensor: %w", err)
	}

	y, err := tensor.New(yData, []int64{int64(n), 1})
	if err != nil {
		return nil, nil, fmt.Errorf("window: build Y tensor: %w", err)
	}

	return x, y, nil
}
