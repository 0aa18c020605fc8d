package encode

import (
	"errors"
	"testing"

	"github.com/example/go-rnn-prep/internal/window"
)

func TestNewVocabulary_SortedDistinct(t *testing.T) {
	v := NewVocabulary("hello world")

	want := " dehlorw"
	if got := string(v.Chars()); got != want {
		t.Fatalf("Chars() = %q, want %q", got, want)
	}

	if v.Size() != len(want) {
		t.Fatalf("Size() = %d, want %d", v.Size(), len(want))
	}

	i, err := v.Index('l')
	if err != nil || i != 4 {
		t.Fatalf("Index('l') = %d, %v; want 4", i, err)
	}

	if _, err := v.Index('z'); !errors.Is(err, ErrUnknownChar) {
		t.Fatalf("Index('z') error = %v, want ErrUnknownChar", err)
	}

	if _, err := v.Char(99); err == nil {
		t.Fatal("Char(99) should fail")
	}
}

func TestOneHot(t *testing.T) {
	text := "abcdefg"
	v := NewVocabulary(text)

	p, err := window.Text(text, 3, 2)
	if err != nil {
		t.Fatalf("window.Text: %v", err)
	}

	x, y, err := v.OneHot(p)
	if err != nil {
		t.Fatalf("OneHot: %v", err)
	}

	if got := x.Shape(); len(got) != 3 || got[0] != 2 || got[1] != 3 || got[2] != 7 {
		t.Fatalf("x shape = %v, want [2 3 7]", got)
	}

	if got := y.Shape(); len(got) != 2 || got[0] != 2 || got[1] != 7 {
		t.Fatalf("y shape = %v, want [2 7]", got)
	}

	xd := x.RawData()
	for row := 0; row < len(xd); row += 7 {
		var sum float32
		for _, val := range xd[row : row+7] {
			sum += val
		}

		if sum != 1 {
			t.Fatalf("x row at %d sums to %v, want 1", row, sum)
		}
	}

	// second pair is "cde" -> "f"
	if xd[(1*3+0)*7+2] != 1 || xd[(1*3+2)*7+4] != 1 {
		t.Fatalf("x pair 1 not encoded as c,d,e: %v", xd[21:])
	}

	yd := y.RawData()
	if yd[0*7+3] != 1 || yd[1*7+5] != 1 {
		t.Fatalf("y = %v, want d and f hot", yd)
	}
}

func TestOneHot_UnknownCharacter(t *testing.T) {
	v := NewVocabulary("abc")

	_, _, err := v.OneHot(window.TextPairs{Inputs: []string{"ab"}, Outputs: []string{"z"}})
	if !errors.Is(err, ErrUnknownChar) {
		t.Fatalf("OneHot error = %v, want ErrUnknownChar", err)
	}
}

func TestOneHot_Empty(t *testing.T) {
	if _, _, err := NewVocabulary("abc").OneHot(window.TextPairs{}); err == nil {
		t.Fatal("expected error for empty pairs")
	}
}

func TestDecode(t *testing.T) {
	v := NewVocabulary("abc")

	r, err := v.Decode([]float32{0.1, 0.2, 0.7})
	if err != nil || r != 'c' {
		t.Fatalf("Decode = %q, %v; want 'c'", r, err)
	}

	if _, err := v.Decode([]float32{1}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
