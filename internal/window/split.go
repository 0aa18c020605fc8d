package window

import (
	"fmt"
	"math"
)

// SplitSeries splits p in order: the first floor(n*trainFraction) pairs go
// to train and the remainder to test. No shuffling is done so the test set
// always follows the training set in time.
func SplitSeries(p SeriesPairs, trainFraction float64) (SeriesPairs, SeriesPairs, error) {
	cut, err := splitPoint(p.Len(), trainFraction)
	if err != nil {
		return SeriesPairs{}, SeriesPairs{}, err
	}

	train := SeriesPairs{X: p.X[:cut:cut], Y: p.Y[:cut:cut]}
	test := SeriesPairs{X: p.X[cut:], Y: p.Y[cut:]}

	return train, test, nil
}

// SplitText is SplitSeries for character pairs.
func SplitText(p TextPairs, trainFraction float64) (TextPairs, TextPairs, error) {
	cut, err := splitPoint(p.Len(), trainFraction)
	if err != nil {
		return TextPairs{}, TextPairs{}, err
	}

	train := TextPairs{Inputs: p.Inputs[:cut:cut], Outputs: p.Outputs[:cut:cut]}
	test := TextPairs{Inputs: p.Inputs[cut:], Outputs: p.Outputs[cut:]}

	return train, test, nil
}

func splitPoint(n int, fraction float64) (int, error) {
	if math.IsNaN(fraction) || fraction <= 0 || fraction > 1 {
		return 0, fmt.Errorf("%w: train fraction %v must be in (0, 1]", ErrInvalidConfig, fraction)
	}

	return int(math.Floor(float64(n) * fraction)), nil
}
