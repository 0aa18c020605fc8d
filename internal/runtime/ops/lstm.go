package ops

import (
	"math"

	"github.com/example/go-rnn-prep/internal/runtime/tensor"
	"github.com/pkg/errors"
)

// LSTMWeights holds the parameters of one LSTM layer. Gates are stacked in
// input, forget, cell, output order along the first dimension:
//
//	Kernel    [4*units, features]
//	Recurrent [4*units, units]
//	Bias      [4*units]
type LSTMWeights struct {
	Kernel    *tensor.Tensor
	Recurrent *tensor.Tensor
	Bias      *tensor.Tensor
}

// Units returns the hidden width implied by the recurrent kernel.
func (w LSTMWeights) Units() int {
	if w.Recurrent == nil || w.Recurrent.Rank() != 2 {
		return 0
	}

	return int(w.Recurrent.Shape()[1])
}

// LSTMStep advances the recurrence by one time step. x is [batch, features];
// h and c are [batch, units]. It returns the next hidden and cell states.
func LSTMStep(x, h, c *tensor.Tensor, w LSTMWeights) (*tensor.Tensor, *tensor.Tensor, error) {
	if x == nil || h == nil || c == nil {
		return nil, nil, errors.New("ops: lstm step requires non-nil x, h and c")
	}

	units := w.Units()
	if units == 0 {
		return nil, nil, errors.New("ops: lstm recurrent kernel must be rank 2")
	}

	zx, err := tensor.Linear(x, w.Kernel, w.Bias)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ops: lstm input projection")
	}

	zh, err := tensor.Linear(h, w.Recurrent, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ops: lstm recurrent projection")
	}

	z, err := tensor.Add(zx, zh)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ops: lstm gate sum")
	}

	batch := int(h.Shape()[0])
	if c.ElemCount() != batch*units {
		return nil, nil, errors.Errorf("ops: lstm cell state has %d elements, want %d", c.ElemCount(), batch*units)
	}

	gates := z.RawData()
	cPrev := c.RawData()
	hNext := make([]float32, batch*units)
	cNext := make([]float32, batch*units)

	for b := range batch {
		row := gates[b*4*units : (b+1)*4*units]
		in := Sigmoid(row[0:units])
		forget := Sigmoid(row[units : 2*units])
		cell := Tanh(row[2*units : 3*units])
		out := Sigmoid(row[3*units : 4*units])

		for u := range units {
			i := b*units + u
			cNext[i] = forget[u]*cPrev[i] + in[u]*cell[u]
			hNext[i] = out[u] * float32(math.Tanh(float64(cNext[i])))
		}
	}

	shape := []int64{int64(batch), int64(units)}

	hT, err := tensor.New(hNext, shape)
	if err != nil {
		return nil, nil, err
	}

	cT, err := tensor.New(cNext, shape)
	if err != nil {
		return nil, nil, err
	}

	return hT, cT, nil
}

// LSTM runs the layer over a [batch, steps, features] sequence from zero
// state and returns the final hidden state, shape [batch, units].
func LSTM(x *tensor.Tensor, w LSTMWeights) (*tensor.Tensor, error) {
	if x.Rank() != 3 {
		return nil, errors.Errorf("ops: lstm input must be [batch, steps, features], got shape %v", x.Shape())
	}

	shape := x.Shape()
	units := w.Units()

	h, err := tensor.Zeros([]int64{shape[0], int64(units)})
	if err != nil {
		return nil, err
	}

	c, err := tensor.Zeros([]int64{shape[0], int64(units)})
	if err != nil {
		return nil, err
	}

	for s := range shape[1] {
		xs, err := x.Step(s)
		if err != nil {
			return nil, errors.Wrapf(err, "ops: lstm step %d", s)
		}

		h, c, err = LSTMStep(xs, h, c, w)
		if err != nil {
			return nil, errors.Wrapf(err, "ops: lstm step %d", s)
		}
	}

	return h, nil
}
