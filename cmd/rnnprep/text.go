package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/example/go-rnn-prep/internal/encode"
	"github.com/example/go-rnn-prep/internal/safetensors"
	"github.com/example/go-rnn-prep/internal/window"
	"github.com/spf13/cobra"
)

func newTextCmd() *cobra.Command {
	var in string
	var out string
	var testOut string

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Clean a corpus and window it into next-character pairs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			raw, err := readInput(in, cmd.InOrStdin())
			if err != nil {
				return err
			}

			cleaned, err := prepareCorpus(raw, cfg.Text)
			if err != nil {
				return err
			}

			vocab := encode.NewVocabulary(cleaned)
			slog.Info("loaded", "path", in, "chars", len([]rune(cleaned)), "vocab", vocab.Size())

			pairs, err := window.Text(cleaned, cfg.Window.Size, cfg.Window.Step)
			if err != nil {
				return err
			}

			train, test, err := window.SplitText(pairs, cfg.Window.TrainFraction)
			if err != nil {
				return err
			}
			slog.Info("windowed", "pairs", pairs.Len(), "train", train.Len(), "test", test.Len())

			meta := map[string]string{
				"kind":        "text",
				"window_size": strconv.Itoa(cfg.Window.Size),
				"step_size":   strconv.Itoa(cfg.Window.Step),
				"vocabulary":  string(vocab.Chars()),
			}

			if out != "" {
				if err := exportText(out, vocab, train, meta); err != nil {
					return err
				}
			}
			if testOut != "" && test.Len() > 0 {
				if err := exportText(testOut, vocab, test, meta); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "pairs=%d train=%d test=%d window=%d step=%d vocab=%q\n",
				pairs.Len(), train.Len(), test.Len(), cfg.Window.Size, cfg.Window.Step, string(vocab.Chars()))
			return err
		},
	}

	cmd.Flags().StringVar(&in, "in", "-", "Input text file ('-' for stdin)")
	cmd.Flags().StringVar(&out, "out", "", "Write one-hot training pairs to this .safetensors file")
	cmd.Flags().StringVar(&testOut, "test-out", "", "Write one-hot held-out pairs to this .safetensors file")

	return cmd
}

func exportText(path string, vocab *encode.Vocabulary, p window.TextPairs, meta map[string]string) error {
	if p.Len() == 0 {
		return fmt.Errorf("no pairs to export to %s", path)
	}

	x, y, err := vocab.OneHot(p)
	if err != nil {
		return err
	}

	if err := safetensors.WriteDataset(path, x, y, meta); err != nil {
		return err
	}
	slog.Info("exported", "path", path, "x", x.Shape(), "y", y.Shape())
	return nil
}
