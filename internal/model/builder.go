// Package model builds untrained recurrent networks for windowed series and
// one-hot character data.
package model

import (
	"math"
	"math/rand/v2"

	"github.com/example/go-rnn-prep/internal/runtime/ops"
	"github.com/example/go-rnn-prep/internal/runtime/tensor"
	"github.com/example/go-rnn-prep/internal/window"
	"github.com/pkg/errors"
)

// Builder produces untrained networks for windowed data. Fitting the
// returned models is left to an external training framework.
type Builder interface {
	// Regression returns a network mapping a [window, 1] sequence to one
	// scalar.
	Regression(windowSize int) (Model, error)
	// Classifier returns a network mapping a [window, vocab] one-hot
	// sequence to a probability distribution over vocab.
	Classifier(windowSize, vocabSize int) (Model, error)
}

// Options configures NativeBuilder.
type Options struct {
	SeriesUnits int
	TextUnits   int
	Seed        uint64
}

// DefaultOptions returns the layer widths used for the series (5) and
// text (200) networks.
func DefaultOptions() Options {
	return Options{SeriesUnits: 5, TextUnits: 200, Seed: 1}
}

// NativeBuilder builds Sequential networks on the in-process tensor runtime.
type NativeBuilder struct {
	opts Options
}

var _ Builder = (*NativeBuilder)(nil)

// NewNativeBuilder returns a builder; non-positive unit counts fall back to
// DefaultOptions.
func NewNativeBuilder(opts Options) *NativeBuilder {
	def := DefaultOptions()
	if opts.SeriesUnits < 1 {
		opts.SeriesUnits = def.SeriesUnits
	}

	if opts.TextUnits < 1 {
		opts.TextUnits = def.TextUnits
	}

	return &NativeBuilder{opts: opts}
}

// Regression builds LSTM(SeriesUnits) -> Dense(1).
func (b *NativeBuilder) Regression(windowSize int) (Model, error) {
	if windowSize < 1 {
		return nil, errors.Wrapf(window.ErrInvalidConfig, "model: window size %d must be >= 1", windowSize)
	}

	rng := b.rng()
	units := b.opts.SeriesUnits

	return newSequential([]int64{int64(windowSize), 1},
		newLSTM(rng, 1, units),
		newDense(rng, units, 1),
	), nil
}

// Classifier builds LSTM(TextUnits) -> Dense(vocab) -> Softmax.
func (b *NativeBuilder) Classifier(windowSize, vocabSize int) (Model, error) {
	if windowSize < 1 {
		return nil, errors.Wrapf(window.ErrInvalidConfig, "model: window size %d must be >= 1", windowSize)
	}

	if vocabSize < 1 {
		return nil, errors.Wrapf(window.ErrInvalidConfig, "model: vocabulary size %d must be >= 1", vocabSize)
	}

	rng := b.rng()
	units := b.opts.TextUnits

	return newSequential([]int64{int64(windowSize), int64(vocabSize)},
		newLSTM(rng, vocabSize, units),
		newDense(rng, units, vocabSize),
		softmaxLayer{},
	), nil
}

func (b *NativeBuilder) rng() *rand.Rand {
	return rand.New(rand.NewPCG(b.opts.Seed, b.opts.Seed^0x9e3779b97f4a7c15))
}

// glorot fills a [fanOut, fanIn] kernel from U(-l, l), l = sqrt(6/(in+out)).
func glorot(rng *rand.Rand, fanOut, fanIn int) *tensor.Tensor {
	limit := math.Sqrt(6 / float64(fanIn+fanOut))
	data := make([]float32, fanOut*fanIn)

	for i := range data {
		data[i] = float32((rng.Float64()*2 - 1) * limit)
	}

	t, _ := tensor.New(data, []int64{int64(fanOut), int64(fanIn)})

	return t
}

func newLSTM(rng *rand.Rand, features, units int) *lstmLayer {
	bias := make([]float32, 4*units)
	for i := units; i < 2*units; i++ {
		bias[i] = 1 // forget gate
	}

	b, _ := tensor.New(bias, []int64{int64(4 * units)})

	return &lstmLayer{w: ops.LSTMWeights{
		Kernel:    glorot(rng, 4*units, features),
		Recurrent: glorot(rng, 4*units, units),
		Bias:      b,
	}}
}

func newDense(rng *rand.Rand, in, out int) *denseLayer {
	b, _ := tensor.Zeros([]int64{int64(out)})

	return &denseLayer{weight: glorot(rng, out, in), bias: b}
}
