package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	got, err := readInput("-", strings.NewReader("from stdin"))
	if err != nil || got != "from stdin" {
		t.Fatalf("readInput(-) = %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("from file"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err = readInput(path, nil)
	if err != nil || got != "from file" {
		t.Fatalf("readInput(file) = %q, %v", got, err)
	}

	if _, err := readInput(filepath.Join(t.TempDir(), "missing.txt"), nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOutput("", []byte("abc"), &buf); err != nil || buf.String() != "abc" {
		t.Fatalf("writeOutput(stdout) = %q, %v", buf.String(), err)
	}

	if err := writeOutput("-", []byte("abc"), nil); err == nil {
		t.Fatal("expected error for nil stdout")
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	if err := writeOutput(path, []byte("xyz"), nil); err != nil {
		t.Fatalf("writeOutput(file): %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil || string(got) != "xyz" {
		t.Fatalf("file content = %q, %v", got, err)
	}
}
