package main

import (
	"errors"
	"log/slog"

	"github.com/example/go-rnn-prep/internal/config"
	textpkg "github.com/example/go-rnn-prep/internal/text"
	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	var in string
	var out string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Restrict a corpus to the cleaning alphabet",
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
			if errors.Is(err, textpkg.ErrEmptyText) {
				// Blank input cleans to blanks.
				cleaned, err = corpusAlphabet(cfg.Text).Clean(raw), nil
			}
			if err != nil {
				return err
			}

			return writeOutput(out, []byte(cleaned), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&in, "in", "-", "Input text file ('-' for stdin)")
	cmd.Flags().StringVar(&out, "out", "-", "Output file ('-' for stdout)")

	return cmd
}

// prepareCorpus normalizes and cleans raw text according to cfg.
func prepareCorpus(raw string, cfg config.TextConfig) (string, error) {
	prepared, err := textpkg.Prepare(raw, textpkg.PrepareOptions{
		Lowercase: cfg.Lowercase,
		Fold:      cfg.Fold,
	})
	if err != nil {
		return "", err
	}

	alphabet := corpusAlphabet(cfg)
	cleaned := alphabet.Clean(prepared)
	slog.Debug("cleaned corpus", "chars", len([]rune(cleaned)), "alphabet", alphabet.String())

	return cleaned, nil
}

func corpusAlphabet(cfg config.TextConfig) textpkg.Alphabet {
	if cfg.Alphabet != "" {
		return textpkg.NewAlphabet(cfg.Alphabet)
	}
	return textpkg.DefaultAlphabet()
}
