package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/go-rnn-prep/internal/bench"
	"github.com/example/go-rnn-prep/internal/model"
	"github.com/example/go-rnn-prep/internal/runtime/tensor"
	"github.com/spf13/cobra"
)

func newModelBenchCmd() *cobra.Command {
	var (
		kind          string
		vocab         int
		batch         int
		runs          int
		format        string
		minThroughput float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark forward-pass latency of an untrained network",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if batch < 1 {
				return fmt.Errorf("--batch must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			var m model.Model
			switch kind {
			case "regression":
				m, err = newBuilder(cfg).Regression(cfg.Window.Size)
			case "classifier":
				m, err = newBuilder(cfg).Classifier(cfg.Window.Size, vocab)
			default:
				return fmt.Errorf("--kind must be 'regression' or 'classifier'")
			}
			if err != nil {
				return err
			}

			results, err := runBench(cmd.Context(), m, batch, runs)
			if err != nil {
				return err
			}

			stats := bench.ComputeStats(bench.Durations(results))

			switch format {
			case "json":
				if err := bench.FormatJSON(results, stats, cmd.OutOrStdout()); err != nil {
					return err
				}
			default:
				bench.FormatTable(results, stats, cmd.OutOrStdout())
			}

			return bench.CheckThroughputFloor(bench.MeanThroughput(results), minThroughput)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "regression", "Network to benchmark: regression|classifier")
	cmd.Flags().IntVar(&vocab, "vocab", 33, "Vocabulary size for the classifier")
	cmd.Flags().IntVar(&batch, "batch", 32, "Rows per forward pass")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of forward passes")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&minThroughput, "min-throughput", 0, "Exit non-zero if mean rows/s falls below this value (0 = disabled)")

	return cmd
}

func runBench(ctx context.Context, m model.Model, batch, runs int) ([]bench.RunResult, error) {
	input := m.InputShape()

	x, err := tensor.Zeros([]int64{int64(batch), input[0], input[1]})
	if err != nil {
		return nil, err
	}

	results := make([]bench.RunResult, 0, runs)

	for i := range runs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		if _, err := m.Forward(x); err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}
		dur := time.Since(start)

		results = append(results, bench.RunResult{
			Index:      i,
			Cold:       i == 0,
			Duration:   dur,
			Rows:       batch,
			Throughput: bench.CalcThroughput(batch, dur),
		})
		slog.Debug("bench run", "run", i+1, "duration", dur)
	}

	return results, nil
}
