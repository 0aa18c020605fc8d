package tensor

import (
	"github.com/pkg/errors"
)

// Tensor is a dense, row-major float32 tensor. It carries windowed datasets
// to the exporter and activations through the native network layers.
type Tensor struct {
	shape []int64
	data  []float32
}

// New creates a tensor from a copy of data.
func New(data []float32, shape []int64) (*Tensor, error) {
	total, err := shapeElemCount(shape)
	if err != nil {
		return nil, err
	}

	if len(data) != total {
		return nil, errors.Errorf("tensor: %d values do not fill shape %v (%d elements)", len(data), shape, total)
	}

	return wrap(append([]float32(nil), data...), append([]int64(nil), shape...)), nil
}

// wrap adopts data and shape without copying.
func wrap(data []float32, shape []int64) *Tensor {
	return &Tensor{shape: shape, data: data}
}

// Zeros creates a zero-initialized tensor.
func Zeros(shape []int64) (*Tensor, error) {
	total, err := shapeElemCount(shape)
	if err != nil {
		return nil, err
	}

	return wrap(make([]float32, total), append([]int64(nil), shape...)), nil
}

func (t *Tensor) Shape() []int64 {
	if t == nil {
		return nil
	}

	return append([]int64(nil), t.shape...)
}

// Data returns a copy of the values.
func (t *Tensor) Data() []float32 {
	if t == nil {
		return nil
	}

	return append([]float32(nil), t.data...)
}

// RawData returns the backing slice. Callers that do not own the tensor
// must not write to it.
func (t *Tensor) RawData() []float32 {
	if t == nil {
		return nil
	}

	return t.data
}

func (t *Tensor) ElemCount() int {
	if t == nil {
		return 0
	}

	return len(t.data)
}

func (t *Tensor) Rank() int {
	if t == nil {
		return 0
	}

	return len(t.shape)
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	if t == nil {
		return nil
	}

	return wrap(append([]float32(nil), t.data...), append([]int64(nil), t.shape...))
}

// Reshape returns a copy of t viewed with a new shape of equal size.
func (t *Tensor) Reshape(shape []int64) (*Tensor, error) {
	if t == nil {
		return nil, errors.New("tensor: reshape on nil tensor")
	}

	total, err := shapeElemCount(shape)
	if err != nil {
		return nil, err
	}

	if total != len(t.data) {
		return nil, errors.Errorf("tensor: cannot reshape %v (%d elements) to %v (%d elements)", t.shape, len(t.data), shape, total)
	}

	return wrap(append([]float32(nil), t.data...), append([]int64(nil), shape...)), nil
}

// Step returns time step s of a [batch, steps, features] sequence as a
// [batch, features] matrix.
func (t *Tensor) Step(s int64) (*Tensor, error) {
	if t.Rank() != 3 {
		return nil, errors.Errorf("tensor: step requires a [batch, steps, features] tensor, got rank %d", t.Rank())
	}

	batch, steps, features := t.shape[0], t.shape[1], t.shape[2]
	if s < 0 || s >= steps {
		return nil, errors.Errorf("tensor: step %d out of range [0, %d)", s, steps)
	}

	out := make([]float32, batch*features)
	for b := range batch {
		src := (b*steps + s) * features
		copy(out[b*features:(b+1)*features], t.data[src:src+features])
	}

	return wrap(out, []int64{batch, features}), nil
}
