package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-rnn-prep/internal/safetensors"
	"github.com/example/go-rnn-prep/internal/window"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	return path
}

func TestSeriesCmd_ExportsTrainAndTest(t *testing.T) {
	in := writeFixture(t, "series.csv", "t,y\n0,1\n1,2\n2,3\n3,4\n4,5\n5,6\n")
	dir := t.TempDir()
	train := filepath.Join(dir, "train.safetensors")
	test := filepath.Join(dir, "test.safetensors")

	out, err := runRoot(t, "", "series",
		"--in", in,
		"--window-size=2",
		"--window-train-fraction=0.5",
		"--out", train,
		"--test-out", test,
	)
	if err != nil {
		t.Fatalf("series: %v", err)
	}

	if !strings.Contains(out, "pairs=4 train=2 test=2 window=2") {
		t.Fatalf("unexpected summary: %q", out)
	}

	x, y, err := safetensors.ReadDataset(train)
	if err != nil {
		t.Fatalf("ReadDataset(train): %v", err)
	}

	if s := x.Shape(); len(s) != 2 || s[0] != 2 || s[1] != 2 {
		t.Fatalf("train x shape = %v, want [2 2]", s)
	}

	if got := y.Data(); len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("train y = %v, want [3 4]", got)
	}

	_, yTest, err := safetensors.ReadDataset(test)
	if err != nil {
		t.Fatalf("ReadDataset(test): %v", err)
	}

	if got := yTest.Data(); len(got) != 2 || got[0] != 5 || got[1] != 6 {
		t.Fatalf("test y = %v, want [5 6]", got)
	}
}

func TestSeriesCmd_ScaleRecordsRange(t *testing.T) {
	in := writeFixture(t, "series.csv", "y\n10\n20\n30\n")
	out := filepath.Join(t.TempDir(), "scaled.safetensors")

	if _, err := runRoot(t, "", "series", "--in", in, "--window-size=1", "--window-train-fraction=1", "--scale", "--out", out); err != nil {
		t.Fatalf("series: %v", err)
	}

	store, err := safetensors.OpenStore(out)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}

	meta := store.Metadata()
	if meta["scale_min"] != "10" || meta["scale_max"] != "30" {
		t.Fatalf("metadata = %v, want scale 10..30", meta)
	}

	x, err := store.Tensor(safetensors.InputsName)
	if err != nil {
		t.Fatalf("Tensor(x): %v", err)
	}

	if x.Data[0] != -1 || x.Data[1] != 0 {
		t.Fatalf("scaled x = %v, want [-1 0]", x.Data)
	}
}

func TestSeriesCmd_WindowTooLarge(t *testing.T) {
	_, err := runRoot(t, "y\n1\n2\n", "series", "--window-size=2")
	if !errors.Is(err, window.ErrInvalidConfig) {
		t.Fatalf("series error = %v, want ErrInvalidConfig", err)
	}
}
