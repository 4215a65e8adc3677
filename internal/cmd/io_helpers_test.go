package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salmonumbrella/tbl-cli/internal/iocontext"
)

func TestReadInputFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.md")
	if err := os.WriteFile(path, []byte(markdownFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readInput(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("readInput() error: %v", err)
	}
	if got != markdownFixture {
		t.Errorf("readInput() = %q, want fixture", got)
	}
}

func TestReadInputFromStdin(t *testing.T) {
	for _, args := range [][]string{nil, {"-"}} {
		ctx := iocontext.WithStdin(context.Background(), strings.NewReader("piped"))
		got, err := readInput(ctx, args)
		if err != nil {
			t.Fatalf("readInput(%v) error: %v", args, err)
		}
		if got != "piped" {
			t.Errorf("readInput(%v) = %q, want %q", args, got, "piped")
		}
	}
}

func TestReadInputMissingFile(t *testing.T) {
	_, err := readInput(context.Background(), []string{filepath.Join(t.TempDir(), "nope.md")})
	if err == nil {
		t.Fatal("expected missing file to fail")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("err = %v", err)
	}
}

func TestReadQueryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.jq")
	if err := os.WriteFile(path, []byte("  .rows | length\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readQueryFile(path)
	if err != nil {
		t.Fatalf("readQueryFile() error: %v", err)
	}
	if got != ".rows | length" {
		t.Errorf("readQueryFile() = %q, want trimmed expression", got)
	}

	if _, err := readQueryFile(filepath.Join(t.TempDir(), "absent.jq")); err == nil {
		t.Error("expected missing query file to fail")
	}
}
