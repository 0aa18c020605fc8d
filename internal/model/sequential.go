package model

import (
	"github.com/example/go-rnn-prep/internal/runtime/ops"
	"github.com/example/go-rnn-prep/internal/runtime/tensor"
	"github.com/pkg/errors"
)

// Model is an untrained layered network.
type Model interface {
	// Forward maps x of shape [batch, window, features] to [batch, out].
	Forward(x *tensor.Tensor) (*tensor.Tensor, error)
	// InputShape is [window, features], without the batch dimension.
	InputShape() []int64
	// OutputShape is [out], without the batch dimension.
	OutputShape() []int64
	Layers() []LayerInfo
}

// LayerInfo describes one layer for summaries.
type LayerInfo struct {
	Name        string
	OutputShape []int64
	Params      int
}

type layer interface {
	name() string
	forward(x *tensor.Tensor) (*tensor.Tensor, error)
	outputShape(in []int64) []int64
	params() int
}

// Sequential applies its layers in order.
type Sequential struct {
	input  []int64
	layers []layer
}

func newSequential(input []int64, layers ...layer) *Sequential {
	return &Sequential{input: input, layers: layers}
}

func (s *Sequential) InputShape() []int64 {
	return append([]int64(nil), s.input...)
}

func (s *Sequential) OutputShape() []int64 {
	shape := s.InputShape()
	for _, l := range s.layers {
		shape = l.outputShape(shape)
	}

	return shape
}

func (s *Sequential) Layers() []LayerInfo {
	infos := make([]LayerInfo, 0, len(s.layers))
	shape := s.InputShape()

	for _, l := range s.layers {
		shape = l.outputShape(shape)
		infos = append(infos, LayerInfo{
			Name:        l.name(),
			OutputShape: append([]int64(nil), shape...),
			Params:      l.params(),
		})
	}

	return infos
}

// Forward runs x through every layer.
func (s *Sequential) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	shape := x.Shape()
	if len(shape) != 3 || shape[1] != s.input[0] || shape[2] != s.input[1] {
		return nil, errors.Errorf("model: input shape %v does not match [batch %d %d]", shape, s.input[0], s.input[1])
	}

	out := x
	for i, l := range s.layers {
		next, err := l.forward(out)
		if err != nil {
			return nil, errors.Wrapf(err, "model: layer %d (%s)", i, l.name())
		}

		out = next
	}

	return out, nil
}

type lstmLayer struct {
	w ops.LSTMWeights
}

func (l *lstmLayer) name() string { return "lstm" }

func (l *lstmLayer) forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	return ops.LSTM(x, l.w)
}

func (l *lstmLayer) outputShape(_ []int64) []int64 {
	return []int64{int64(l.w.Units())}
}

func (l *lstmLayer) params() int {
	return l.w.Kernel.ElemCount() + l.w.Recurrent.ElemCount() + l.w.Bias.ElemCount()
}

type denseLayer struct {
	weight *tensor.Tensor
	bias   *tensor.Tensor
}

func (d *denseLayer) name() string { return "dense" }

func (d *denseLayer) forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.Linear(x, d.weight, d.bias)
}

func (d *denseLayer) outputShape(_ []int64) []int64 {
	return []int64{d.weight.Shape()[0]}
}

func (d *denseLayer) params() int {
	return d.weight.ElemCount() + d.bias.ElemCount()
}

type softmaxLayer struct{}

func (softmaxLayer) name() string { return "softmax" }

func (softmaxLayer) forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.Softmax(x)
}

func (softmaxLayer) outputShape(in []int64) []int64 { return in }

func (softmaxLayer) params() int { return 0 }
