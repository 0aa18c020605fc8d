package encode

import (
	"math"
	"testing"
)

func TestMinMaxScaler_RoundTrip(t *testing.T) {
	series := []float64{10, 15, 20, 12.5}

	s, err := FitMinMax(series)
	if err != nil {
		t.Fatalf("FitMinMax: %v", err)
	}

	scaled := s.Transform(series)
	want := []float64{-1, 0, 1, -0.5}

	for i := range want {
		if math.Abs(scaled[i]-want[i]) > 1e-12 {
			t.Fatalf("Transform = %v, want %v", scaled, want)
		}
	}

	back := s.Inverse(scaled)
	for i := range series {
		if math.Abs(back[i]-series[i]) > 1e-9 {
			t.Fatalf("Inverse = %v, want %v", back, series)
		}
	}

	if series[0] != 10 {
		t.Fatal("Transform mutated its input")
	}
}

func TestMinMaxScaler_ConstantSeries(t *testing.T) {
	s, err := FitMinMax([]float64{3, 3, 3})
	if err != nil {
		t.Fatalf("FitMinMax: %v", err)
	}

	for _, v := range s.Transform([]float64{3, 3}) {
		if v != 0 {
			t.Fatalf("constant series scaled to %v, want 0", v)
		}
	}
}

func TestFitMinMax_Empty(t *testing.T) {
	if _, err := FitMinMax(nil); err == nil {
		t.Fatal("expected error for empty series")
	}
}
