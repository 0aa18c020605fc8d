package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/example/go-rnn-prep/internal/config"
	"github.com/example/go-rnn-prep/internal/model"
	"github.com/example/go-rnn-prep/internal/runtime/tensor"
	"github.com/example/go-rnn-prep/internal/safetensors"
	"github.com/spf13/cobra"
)

func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Build untrained networks and print their layout",
	}

	cmd.AddCommand(newModelRegressionCmd())
	cmd.AddCommand(newModelClassifierCmd())
	cmd.AddCommand(newModelBenchCmd())
	return cmd
}

func newModelRegressionCmd() *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "regression",
		Short: "LSTM regression network over a series window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			m, err := newBuilder(cfg).Regression(cfg.Window.Size)
			if err != nil {
				return err
			}

			return describeModel(cmd.OutOrStdout(), m, dataset)
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", "", "Run a forward pass over the x tensor of an exported dataset")
	return cmd
}

func newModelClassifierCmd() *cobra.Command {
	var vocab int
	var dataset string

	cmd := &cobra.Command{
		Use:   "classifier",
		Short: "LSTM softmax network over a one-hot character window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			m, err := newBuilder(cfg).Classifier(cfg.Window.Size, vocab)
			if err != nil {
				return err
			}

			return describeModel(cmd.OutOrStdout(), m, dataset)
		},
	}

	cmd.Flags().IntVar(&vocab, "vocab", 33, "Vocabulary size (number of distinct characters)")
	cmd.Flags().StringVar(&dataset, "dataset", "", "Run a forward pass over the x tensor of an exported dataset")
	return cmd
}

func newBuilder(cfg config.Config) model.Builder {
	return model.NewNativeBuilder(model.Options{
		SeriesUnits: cfg.Model.SeriesUnits,
		TextUnits:   cfg.Model.TextUnits,
		Seed:        cfg.Model.Seed,
	})
}

func describeModel(w io.Writer, m model.Model, dataset string) error {
	if _, err := io.WriteString(w, model.Summary(m)); err != nil {
		return err
	}
	if dataset == "" {
		return nil
	}

	x, _, err := safetensors.ReadDataset(dataset)
	if err != nil {
		return err
	}

	x, err = asSequence(x, m.InputShape())
	if err != nil {
		return err
	}

	out, err := m.Forward(x)
	if err != nil {
		return err
	}
	slog.Info("forward", "path", dataset, "input", x.Shape(), "output", out.Shape())

	_, err = fmt.Fprintf(w, "forward: input %v -> output %v\n", x.Shape(), out.Shape())
	return err
}

// asSequence lifts a [n, window] series matrix to [n, window, 1] so it
// matches the regression input layout; rank-3 tensors pass through.
func asSequence(x *tensor.Tensor, input []int64) (*tensor.Tensor, error) {
	shape := x.Shape()
	switch {
	case len(shape) == 3:
		return x, nil
	case len(shape) == 2 && len(input) == 2 && input[1] == 1:
		return x.Reshape([]int64{shape[0], shape[1], 1})
	default:
		return nil, fmt.Errorf("dataset x shape %v does not fit model input %v", shape, input)
	}
}
