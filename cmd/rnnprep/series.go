package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/example/go-rnn-prep/internal/encode"
	"github.com/example/go-rnn-prep/internal/safetensors"
	"github.com/example/go-rnn-prep/internal/series"
	"github.com/example/go-rnn-prep/internal/window"
	"github.com/spf13/cobra"
)

func newSeriesCmd() *cobra.Command {
	var in string
	var column string
	var noHeader bool
	var scale bool
	var out string
	var testOut string

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Window a numeric CSV column into regression pairs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			opts := series.DefaultCSVOptions()
			opts.Column = column
			opts.HasHeader = !noHeader

			var values []float64
			if in == "" || in == "-" {
				values, err = series.LoadCSV(cmd.InOrStdin(), opts)
			} else {
				values, err = series.LoadFile(in, opts)
			}
			if err != nil {
				return err
			}
			slog.Info("loaded", "path", in, "samples", len(values))

			meta := map[string]string{
				"kind":        "series",
				"window_size": strconv.Itoa(cfg.Window.Size),
			}

			if scale {
				scaler, err := encode.FitMinMax(values)
				if err != nil {
					return err
				}
				values = scaler.Transform(values)
				meta["scale_min"] = strconv.FormatFloat(scaler.Min, 'g', -1, 64)
				meta["scale_max"] = strconv.FormatFloat(scaler.Max, 'g', -1, 64)
			}

			pairs, err := window.Series(values, cfg.Window.Size)
			if err != nil {
				return err
			}

			train, test, err := window.SplitSeries(pairs, cfg.Window.TrainFraction)
			if err != nil {
				return err
			}
			slog.Info("windowed", "pairs", pairs.Len(), "train", train.Len(), "test", test.Len())

			if out != "" {
				if err := exportSeries(out, train, meta); err != nil {
					return err
				}
			}
			if testOut != "" && test.Len() > 0 {
				if err := exportSeries(testOut, test, meta); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "pairs=%d train=%d test=%d window=%d\n",
				pairs.Len(), train.Len(), test.Len(), cfg.Window.Size)
			return err
		},
	}

	cmd.Flags().StringVar(&in, "in", "-", "Input CSV file ('-' for stdin)")
	cmd.Flags().StringVar(&column, "column", "", "Value column header (default: last column)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Input has no header row")
	cmd.Flags().BoolVar(&scale, "scale", false, "Min-max scale the series to [-1, 1] before windowing")
	cmd.Flags().StringVar(&out, "out", "", "Write training pairs to this .safetensors file")
	cmd.Flags().StringVar(&testOut, "test-out", "", "Write held-out pairs to this .safetensors file")

	return cmd
}

func exportSeries(path string, p window.SeriesPairs, meta map[string]string) error {
	x, y, err := p.Tensors()
	if err != nil {
		return err
	}

	if err := safetensors.WriteDataset(path, x, y, meta); err != nil {
		return err
	}
	slog.Info("exported", "path", path, "x", x.Shape(), "y", y.Shape())
	return nil
}
