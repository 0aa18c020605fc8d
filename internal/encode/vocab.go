// Package encode turns windowed pairs into numeric model inputs: one-hot
// character tensors for the classifier and min-max scaled series for the
// regressor.
package encode

import (
	"errors"
	"fmt"
	"sort"

	"github.com/example/go-rnn-prep/internal/runtime/tensor"
	"github.com/example/go-rnn-prep/internal/window"
)

// ErrUnknownChar is returned when a character is not in the vocabulary.
var ErrUnknownChar = errors.New("encode: character not in vocabulary")

// Vocabulary maps the distinct characters of a corpus to dense indices in
// code point order.
type Vocabulary struct {
	chars []rune
	index map[rune]int
}

// NewVocabulary collects the distinct characters of text.
func NewVocabulary(text string) *Vocabulary {
	index := make(map[rune]int)
	for _, r := range text {
		index[r] = 0
	}

	chars := make([]rune, 0, len(index))
	for r := range index {
		chars = append(chars, r)
	}

	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	for i, r := range chars {
		index[r] = i
	}

	return &Vocabulary{chars: chars, index: index}
}

// Size returns the number of distinct characters.
func (v *Vocabulary) Size() int {
	return len(v.chars)
}

// Index returns the position of r.
func (v *Vocabulary) Index(r rune) (int, error) {
	i, ok := v.index[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownChar, r)
	}

	return i, nil
}

// Char returns the character at position i.
func (v *Vocabulary) Char(i int) (rune, error) {
	if i < 0 || i >= len(v.chars) {
		return 0, fmt.Errorf("encode: index %d out of range for vocabulary of %d", i, len(v.chars))
	}

	return v.chars[i], nil
}

// Chars returns a copy of the vocabulary in index order.
func (v *Vocabulary) Chars() []rune {
	return append([]rune(nil), v.chars...)
}

// OneHot encodes text pairs as x [n, window, V] and y [n, V].
func (v *Vocabulary) OneHot(p window.TextPairs) (*tensor.Tensor, *tensor.Tensor, error) {
	n := p.Len()
	if n == 0 {
		return nil, nil, errors.New("encode: no pairs to encode")
	}

	if len(p.Outputs) != n {
		return nil, nil, fmt.Errorf("encode: %d inputs but %d outputs", n, len(p.Outputs))
	}

	size := len([]rune(p.Inputs[0]))
	vs := v.Size()
	xData := make([]float32, n*size*vs)
	yData := make([]float32, n*vs)

	for k, in := range p.Inputs {
		runes := []rune(in)
		if len(runes) != size {
			return nil, nil, fmt.Errorf("encode: input %d has %d characters, want %d", k, len(runes), size)
		}

		for s, r := range runes {
			i, err := v.Index(r)
			if err != nil {
				return nil, nil, fmt.Errorf("encode: input %d: %w", k, err)
			}

			xData[(k*size+s)*vs+i] = 1
		}

		out := []rune(p.Outputs[k])
		if len(out) != 1 {
			return nil, nil, fmt.Errorf("encode: output %d must be a single character, got %q", k, p.Outputs[k])
		}

		i, err := v.Index(out[0])
		if err != nil {
			return nil, nil, fmt.Errorf("encode: output %d: %w", k, err)
		}

		yData[k*vs+i] = 1
	}

	x, err := tensor.New(xData, []int64{int64(n), int64(size), int64(vs)})
	if err != nil {
		return nil, nil, err
	}

	y, err := tensor.New(yData, []int64{int64(n), int64(vs)})
	if err != nil {
		return nil, nil, err
	}

	return x, y, nil
}

// Decode returns the character with the highest probability.
func (v *Vocabulary) Decode(probs []float32) (rune, error) {
	if len(probs) != v.Size() {
		return 0, fmt.Errorf("encode: got %d probabilities for vocabulary of %d", len(probs), v.Size())
	}

	return v.Char(tensor.ArgMax(probs))
}
