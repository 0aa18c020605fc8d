package bench_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/example/go-rnn-prep/internal/bench"
)

// ---------------------------------------------------------------------------
// Aggregation
// ---------------------------------------------------------------------------

func TestStats_MinMaxMean(t *testing.T) {
	durations := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	}
	s := bench.ComputeStats(durations)

	if s.Min != 100*time.Millisecond {
		t.Errorf("want min=100ms, got %v", s.Min)
	}

	if s.Max != 300*time.Millisecond {
		t.Errorf("want max=300ms, got %v", s.Max)
	}

	if s.Mean != 200*time.Millisecond {
		t.Errorf("want mean=200ms, got %v", s.Mean)
	}
}

func TestStats_SingleRun(t *testing.T) {
	s := bench.ComputeStats([]time.Duration{150 * time.Millisecond})
	if s.Min != s.Max || s.Min != s.Mean {
		t.Errorf("single run: min/max/mean should all be equal, got min=%v max=%v mean=%v", s.Min, s.Max, s.Mean)
	}
}

func TestStats_Empty(t *testing.T) {
	if s := bench.ComputeStats(nil); s != (bench.Stats{}) {
		t.Errorf("want zero stats, got %+v", s)
	}
}

func TestDurations(t *testing.T) {
	runs := []bench.RunResult{{Duration: time.Second}, {Duration: 2 * time.Second}}

	got := bench.Durations(runs)
	if len(got) != 2 || got[0] != time.Second || got[1] != 2*time.Second {
		t.Errorf("Durations = %v", got)
	}
}

// ---------------------------------------------------------------------------
// Throughput
// ---------------------------------------------------------------------------

func TestThroughput_Calculation(t *testing.T) {
	// 64 rows in 500ms -> 128 rows/s
	got := bench.CalcThroughput(64, 500*time.Millisecond)
	if got < 127.999 || got > 128.001 {
		t.Errorf("want throughput≈128, got %.4f", got)
	}
}

func TestThroughput_ZeroDuration(t *testing.T) {
	if got := bench.CalcThroughput(64, 0); got != 0 {
		t.Errorf("want 0 for zero duration, got %.4f", got)
	}
}

func TestMeanThroughput_SkipsColdRun(t *testing.T) {
	runs := []bench.RunResult{
		{Index: 0, Cold: true, Throughput: 10},
		{Index: 1, Throughput: 100},
		{Index: 2, Throughput: 200},
	}
	if got := bench.MeanThroughput(runs); got != 150 {
		t.Errorf("want mean 150, got %v", got)
	}

	single := []bench.RunResult{{Cold: true, Throughput: 42}}
	if got := bench.MeanThroughput(single); got != 42 {
		t.Errorf("single cold run: want 42, got %v", got)
	}
}

// ---------------------------------------------------------------------------
// Throughput floor gate
// ---------------------------------------------------------------------------

func TestThroughputFloor(t *testing.T) {
	tests := []struct {
		name    string
		mean    float64
		floor   float64
		wantErr bool
	}{
		{name: "below floor", mean: 50, floor: 100, wantErr: true},
		{name: "above floor", mean: 150, floor: 100},
		{name: "exactly at floor", mean: 100, floor: 100},
		{name: "disabled", mean: 0, floor: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bench.CheckThroughputFloor(tt.mean, tt.floor)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckThroughputFloor(%v, %v) error = %v, wantErr %v", tt.mean, tt.floor, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Output formatting
// ---------------------------------------------------------------------------

func TestFormatTable_ContainsHeaders(t *testing.T) {
	runs := []bench.RunResult{
		{Index: 0, Cold: true, Duration: 800 * time.Millisecond, Rows: 32, Throughput: 40},
		{Index: 1, Cold: false, Duration: 500 * time.Millisecond, Rows: 32, Throughput: 64},
	}
	stats := bench.ComputeStats(bench.Durations(runs))

	var buf strings.Builder
	bench.FormatTable(runs, stats, &buf)
	out := buf.String()

	for _, want := range []string{"run", "cold", "ms", "rows/s", "(mean)"} {
		if !strings.Contains(strings.ToLower(out), want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON_IsValidJSON(t *testing.T) {
	runs := []bench.RunResult{
		{Index: 0, Cold: true, Duration: 800 * time.Millisecond, Rows: 16, Throughput: 20},
	}
	stats := bench.ComputeStats(bench.Durations(runs))

	var buf bytes.Buffer
	if err := bench.FormatJSON(runs, stats, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var out struct {
		Runs []struct {
			Rows int `json:"rows"`
		} `json:"runs"`
		Stats struct {
			MeanMS float64 `json:"mean_ms"`
		} `json:"stats"`
	}

	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v\n%s", err, buf.String())
	}

	if len(out.Runs) != 1 || out.Runs[0].Rows != 16 || out.Stats.MeanMS != 800 {
		t.Errorf("unexpected report: %+v", out)
	}
}
