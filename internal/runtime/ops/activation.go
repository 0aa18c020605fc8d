package ops

import "math"

// Sigmoid applies the logistic function in place and returns v.
func Sigmoid(v []float32) []float32 {
	for i, x := range v {
		v[i] = sigmoid(x)
	}

	return v
}

// Tanh applies the hyperbolic tangent in place and returns v.
func Tanh(v []float32) []float32 {
	for i, x := range v {
		v[i] = float32(math.Tanh(float64(x)))
	}

	return v
}

func sigmoid(x float32) float32 {
	return 1 / (1 + float32(math.Exp(float64(-x))))
}
