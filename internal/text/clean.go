// Package text prepares raw corpora for character-level windowing.
package text

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Punctuation is the punctuation kept by the default alphabet.
const Punctuation = "!,.:;?"

const lowercase = "abcdefghijklmnopqrstuvwxyz"

// Alphabet is the set of characters allowed in cleaned text. Space is
// always a member because it is the replacement character.
type Alphabet struct {
	allowed map[rune]struct{}
}

// DefaultAlphabet returns lowercase ASCII letters, Punctuation and space.
func DefaultAlphabet() Alphabet {
	return NewAlphabet(lowercase + Punctuation)
}

// NewAlphabet builds an alphabet from the characters in chars plus space.
func NewAlphabet(chars string) Alphabet {
	allowed := make(map[rune]struct{}, len(chars)+1)
	for _, r := range chars {
		allowed[r] = struct{}{}
	}

	allowed[' '] = struct{}{}

	return Alphabet{allowed: allowed}
}

// Contains reports whether r is allowed.
func (a Alphabet) Contains(r rune) bool {
	_, ok := a.allowed[r]
	return ok
}

// String returns the members of the alphabet in code point order.
func (a Alphabet) String() string {
	runes := make([]rune, 0, len(a.allowed))
	for r := range a.allowed {
		runes = append(runes, r)
	}

	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	return string(runes)
}

// Clean replaces every occurrence of each distinct character of s that is
// not in the alphabet with a single space. The character count of s is
// preserved and the result is a fixed point of Clean.
//
// Uppercase letters are not folded: they are outside the default alphabet
// and become spaces like any other foreign character.
func (a Alphabet) Clean(s string) string {
	if a.allowed == nil {
		a = DefaultAlphabet()
	}

	if !utf8.ValidString(s) {
		// Each invalid byte becomes U+FFFD so it is replaced like any other
		// foreign character.
		s = strings.Map(func(r rune) rune { return r }, s)
	}

	seen := make(map[rune]struct{})
	pairs := make([]string, 0)

	for _, r := range s {
		if _, ok := seen[r]; ok {
			continue
		}

		seen[r] = struct{}{}
		if !a.Contains(r) {
			pairs = append(pairs, string(r), " ")
		}
	}

	if len(pairs) == 0 {
		return s
	}

	return strings.NewReplacer(pairs...).Replace(s)
}

// Clean cleans s against the default alphabet.
func Clean(s string) string {
	return DefaultAlphabet().Clean(s)
}
