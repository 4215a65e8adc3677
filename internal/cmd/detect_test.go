package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
)

func TestDetectMarkdownFromStdin(t *testing.T) {
	isolateHome(t)

	stdout, stderr, err := runCommand(t, markdownFixture, "detect", "-o", "json")
	if err != nil {
		t.Fatalf("detect failed: %v\nstderr=%s", err, stderr)
	}

	var got detection
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	if got.Format != "markdown" {
		t.Errorf("Format = %q, want %q", got.Format, "markdown")
	}
}

func TestDetectHTMLFromFile(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "page.html")
	html := "<p>intro</p>\n<table><tr><th>A</th></tr><tr><td>1</td></tr></table>\n"
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := runCommand(t, "", "detect", path, "-o", "json")
	if err != nil {
		t.Fatalf("detect failed: %v\nstderr=%s", err, stderr)
	}

	var got detection
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	if got.Format != "html" {
		t.Errorf("Format = %q, want %q", got.Format, "html")
	}
}

func TestDetectTextOutput(t *testing.T) {
	isolateHome(t)

	stdout, _, err := runCommand(t, markdownFixture, "detect", "-o", "text")
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if stdout != "format: markdown\n" {
		t.Errorf("stdout = %q, want %q", stdout, "format: markdown\n")
	}
}

func TestDetectUnrecognized(t *testing.T) {
	isolateHome(t)

	stdout, _, err := runCommand(t, "just a sentence with no table", "detect")
	if err == nil {
		t.Fatal("expected detection to fail")
	}
	if !clierrors.IsParseError(err) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	if got := ExitCode(err); got != ExitUser {
		t.Errorf("ExitCode = %d, want %d", got, ExitUser)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty on failure, got %q", stdout)
	}
}

func TestDetectQuiet(t *testing.T) {
	isolateHome(t)

	stdout, _, err := runCommand(t, markdownFixture, "detect", "--quiet")
	if err != nil {
		t.Fatalf("detect --quiet failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty with --quiet", stdout)
	}

	_, _, err = runCommand(t, "no table here", "detect", "--quiet")
	if err == nil {
		t.Fatal("exit code must still signal failure under --quiet")
	}
	if got := ExitCode(err); got != ExitUser {
		t.Errorf("ExitCode = %d, want %d", got, ExitUser)
	}
}

func TestDetectPrefersHTMLOverPipes(t *testing.T) {
	isolateHome(t)

	mixed := "| not | a separator |\n<table><tr><td>x</td></tr></table>\n| --- | --- |\n"
	stdout, _, err := runCommand(t, mixed, "detect", "-o", "text")
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if !strings.Contains(stdout, "html") {
		t.Errorf("stdout = %q, want html detection", stdout)
	}
}
