package window

import "fmt"

// TextPairs holds character-level classification inputs. Outputs[k] is the
// single character that follows Inputs[k] in the source text.
type TextPairs struct {
	Inputs  []string
	Outputs []string
}

// Len returns the number of input/output pairs.
func (p TextPairs) Len() int {
	return len(p.Inputs)
}

// Text windows text by character with the given stride. Start offsets are
// 0, step, 2*step, ... strictly below len(text)-size, so the result holds
// ceil((len(text)-size)/step) pairs.
func Text(text string, size, step int) (TextPairs, error) {
	runes := []rune(text)

	if size < 1 || size >= len(runes) {
		return TextPairs{}, fmt.Errorf("%w: window size %d must be in [1, %d)", ErrInvalidConfig, size, len(runes))
	}

	if step < 1 {
		return TextPairs{}, fmt.Errorf("%w: step size %d must be >= 1", ErrInvalidConfig, step)
	}

	last := len(runes) - size
	n := (last-1)/step + 1
	inputs := make([]string, 0, n)
	outputs := make([]string, 0, n)

	for i := 0; i < last; i += step {
		inputs = append(inputs, string(runes[i:i+size]))
		outputs = append(outputs, string(runes[i+size]))
	}

	return TextPairs{Inputs: inputs, Outputs: outputs}, nil
}
