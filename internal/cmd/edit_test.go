package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
)

func TestEditOpsRunInOrder(t *testing.T) {
	isolateHome(t)

	stdout, stderr, err := runCommand(t, markdownFixture,
		"edit", "--op", "add-row", "--op", "set=2:0:Review")
	if err != nil {
		t.Fatalf("edit failed: %v\nstderr=%s", err, stderr)
	}

	want := "| Task | Done |\n| :--- | :---: |\n| Write | ✅ |\n| Ship | ❌ |\n| Review |  |\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestEditKeepsSourceFormat(t *testing.T) {
	isolateHome(t)

	html := "<table><tr><th>A</th></tr><tr><td>1</td></tr></table>"
	stdout, stderr, err := runCommand(t, html, "edit", "--op", "add-row")
	if err != nil {
		t.Fatalf("edit failed: %v\nstderr=%s", err, stderr)
	}
	if !strings.HasPrefix(stdout, "<table>") {
		t.Errorf("HTML input should render HTML, got %q", stdout)
	}
	if !strings.Contains(stdout, "<td></td>") {
		t.Errorf("appended row missing from output: %q", stdout)
	}
}

func TestEditExplicitTarget(t *testing.T) {
	isolateHome(t)

	stdout, _, err := runCommand(t, markdownFixture, "edit", "--op", "sort", "--to", "html")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "<table>") {
		t.Errorf("expected HTML output, got %q", stdout)
	}
}

func TestEditFailedOpPrintsNothing(t *testing.T) {
	isolateHome(t)

	stdout, _, err := runCommand(t, markdownFixture, "edit", "--op", "remove-row=99")
	if err == nil {
		t.Fatal("expected out-of-range removal to fail")
	}
	if !clierrors.IsEditError(err) {
		t.Fatalf("expected EditError, got %T: %v", err, err)
	}
	if got := ExitCode(err); got != ExitUser {
		t.Errorf("ExitCode = %d, want %d", got, ExitUser)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty on failure, got %q", stdout)
	}
}

func TestEditRequiresOps(t *testing.T) {
	isolateHome(t)

	_, _, err := runCommand(t, markdownFixture, "edit")
	if err == nil {
		t.Fatal("expected edit without operations to fail")
	}
	if !strings.Contains(err.Error(), "no operations given") {
		t.Errorf("err = %v, want no-operations message", err)
	}
}

func TestEditWriteBack(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "tasks.md")
	if err := os.WriteFile(path, []byte(markdownFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCommand(t, "", "edit", path, "--op", "sort", "--write")
	if err != nil {
		t.Fatalf("edit --write failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty with --write, got %q", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "| Task | Done |\n| :--- | :---: |\n| Ship | ❌ |\n| Write | ✅ |\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", string(data), want)
	}
}

func TestEditWriteLeavesFileOnFailure(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "tasks.md")
	if err := os.WriteFile(path, []byte(markdownFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCommand(t, "", "edit", path, "--op", "remove-row=99", "--write")
	if err == nil {
		t.Fatal("expected edit to fail")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != markdownFixture {
		t.Errorf("failed edit must not touch the file, got %q", string(data))
	}
}

func TestEditOpsFile(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "tasks.md")
	if err := os.WriteFile(input, []byte(markdownFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "cleanup.ops")
	scriptText := "# fill in a review row\nadd-row\nset=2:0:Review\n"
	if err := os.WriteFile(script, []byte(scriptText), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := runCommand(t, "", "edit", input, "--ops-file", script, "--op", "sort")
	if err != nil {
		t.Fatalf("edit --ops-file failed: %v\nstderr=%s", err, stderr)
	}

	// Script operations run first, so sort sees the new row.
	want := "| Task | Done |\n| :--- | :---: |\n| Review |  |\n| Ship | ❌ |\n| Write | ✅ |\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestEditOpsFileMissing(t *testing.T) {
	isolateHome(t)

	_, _, err := runCommand(t, markdownFixture,
		"edit", "--ops-file", filepath.Join(t.TempDir(), "nope.ops"))
	if err == nil {
		t.Fatal("expected missing ops file to fail")
	}
	if !clierrors.IsUserError(err) {
		t.Fatalf("expected UserError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "cannot read operations file") {
		t.Errorf("err = %v, want operations-file message", err)
	}
}

func TestEditTableOutput(t *testing.T) {
	isolateHome(t)

	stdout, _, err := runCommand(t, markdownFixture, "edit", "--op", "sort", "-o", "table")
	if err != nil {
		t.Fatalf("edit -o table failed: %v", err)
	}
	if strings.Contains(stdout, "|") {
		t.Errorf("table output should not be markdown, got %q", stdout)
	}
	if !strings.Contains(stdout, "Task") || !strings.Contains(stdout, "Ship") {
		t.Errorf("table output missing cells: %q", stdout)
	}
	if strings.Index(stdout, "Ship") > strings.Index(stdout, "Write") {
		t.Errorf("rows not sorted: %q", stdout)
	}
}

func TestEditUnknownOp(t *testing.T) {
	isolateHome(t)

	_, _, err := runCommand(t, markdownFixture, "edit", "--op", "explode")
	if err == nil {
		t.Fatal("expected unknown op to fail")
	}
	if !strings.Contains(err.Error(), `unknown operation "explode"`) {
		t.Errorf("err = %v, want unknown-operation message", err)
	}
}
