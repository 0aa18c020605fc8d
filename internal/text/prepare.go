package text

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// PrepareOptions controls the corpus normalization applied before cleaning.
type PrepareOptions struct {
	// Lowercase maps letters to lower case so they survive cleaning.
	Lowercase bool
	// Fold strips diacritics ("é" -> "e") via canonical decomposition.
	Fold bool
}

// Prepare normalizes a raw corpus: line endings become \n, then the optional
// fold and lowercase steps run. Empty or whitespace-only input is rejected.
func Prepare(s string, opts PrepareOptions) (string, error) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	if strings.TrimSpace(s) == "" {
		return "", ErrEmptyText
	}

	if opts.Fold {
		folded, err := fold(s)
		if err != nil {
			return "", err
		}

		s = folded
	}

	if opts.Lowercase {
		s = strings.ToLower(s)
	}

	return s, nil
}

func fold(s string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		return "", fmt.Errorf("text: fold diacritics: %w", err)
	}

	return out, nil
}
