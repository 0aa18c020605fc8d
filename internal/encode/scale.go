package encode

import (
	"errors"

	"github.com/sartorproj/goarima/timeseries"
)

// MinMaxScaler maps values linearly from [min, max] of the fitted series
// onto [-1, 1].
type MinMaxScaler struct {
	Min float64
	Max float64
}

// FitMinMax records the range of series.
func FitMinMax(series []float64) (MinMaxScaler, error) {
	if len(series) == 0 {
		return MinMaxScaler{}, errors.New("encode: cannot fit scaler on empty series")
	}

	ts := timeseries.New(series)

	return MinMaxScaler{Min: ts.Min(), Max: ts.Max()}, nil
}

// Transform returns a scaled copy of values. A constant fitted series maps
// every value to 0.
func (s MinMaxScaler) Transform(values []float64) []float64 {
	out := make([]float64, len(values))

	span := s.Max - s.Min
	if span == 0 {
		return out
	}

	for i, v := range values {
		out[i] = 2*(v-s.Min)/span - 1
	}

	return out
}

// Inverse undoes Transform.
func (s MinMaxScaler) Inverse(values []float64) []float64 {
	out := make([]float64, len(values))
	span := s.Max - s.Min

	for i, v := range values {
		out[i] = (v+1)/2*span + s.Min
	}

	return out
}
