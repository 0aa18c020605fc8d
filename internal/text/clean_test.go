package text

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "uppercase and digits become spaces",
			input: "Hi there! 123",
			want:  " i there!    ",
		},
		{
			name:  "allowed text passes through",
			input: "hello, world. what? yes! a: b;",
			want:  "hello, world. what? yes! a: b;",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "every occurrence of a foreign character is replaced",
			input: "a-b-c-d",
			want:  "a b c d",
		},
		{
			name:  "newlines and tabs are replaced",
			input: "one\ntwo\tthree",
			want:  "one two three",
		},
		{
			name:  "quotes and brackets are replaced",
			input: `"quoted" (paren)`,
			want:  ` quoted   paren `,
		},
		{
			name:  "non-ascii characters are replaced one for one",
			input: "café über",
			want:  "caf   ber",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Properties(t *testing.T) {
	inputs := []string{
		"",
		"Hi there! 123",
		"THE END.",
		"naïve résumé — “quotes”",
		"tabs\tand\r\nnewlines",
		"already clean text: yes; no? ok!",
		"\xff\xfeinvalid bytes",
	}

	alphabet := DefaultAlphabet()

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)

		if twice != once {
			t.Errorf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}

		if utf8.RuneCountInString(once) != utf8.RuneCountInString(in) {
			t.Errorf("Clean(%q) changed length: %d -> %d", in, utf8.RuneCountInString(in), utf8.RuneCountInString(once))
		}

		for _, r := range once {
			if !alphabet.Contains(r) {
				t.Errorf("Clean(%q) = %q contains %q outside the alphabet", in, once, r)
			}
		}
	}
}

func TestNewAlphabet_Custom(t *testing.T) {
	a := NewAlphabet("abc")

	if got := a.Clean("abcd cab!"); got != "abc  cab " {
		t.Errorf("Clean = %q, want %q", got, "abc  cab ")
	}

	if !a.Contains(' ') {
		t.Error("custom alphabet must contain space")
	}

	if got := a.String(); got != " abc" {
		t.Errorf("String() = %q, want %q", got, " abc")
	}
}

func TestAlphabet_ZeroValueUsesDefault(t *testing.T) {
	var a Alphabet

	if got := a.Clean("Ab1"); got != " b " {
		t.Errorf("zero Alphabet Clean = %q, want %q", got, " b ")
	}
}

func TestDefaultAlphabet_Members(t *testing.T) {
	got := DefaultAlphabet().String()
	want := " !,.:;?abcdefghijklmnopqrstuvwxyz"

	if got != want {
		t.Errorf("DefaultAlphabet() = %q, want %q", got, want)
	}

	if strings.ContainsAny(got, "ABZ0'\"-") {
		t.Errorf("DefaultAlphabet() contains unexpected characters: %q", got)
	}
}
