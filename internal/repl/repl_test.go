package repl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
	"github.com/salmonumbrella/tbl-cli/internal/ui"
)

const sampleTable = "| Name | Done |\n| --- | --- |\n| Task1 | yes |\n| Task2 | no |\n"

func newTestREPL() (*REPL, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, ui.New(ui.ColorNever), "", ""), &buf
}

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.md")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOneShotLoad(t *testing.T) {
	r, buf := newTestREPL()
	path := writeSample(t, sampleTable)

	if err := r.OneShot("load " + path); err != nil {
		t.Fatalf("load error: %v", err)
	}

	if !strings.Contains(buf.String(), "loaded 2 rows, 2 columns") {
		t.Errorf("expected load report, got: %s", buf.String())
	}

	m := r.Session().Model()
	wantRows := [][]string{{"Task1", "✅"}, {"Task2", "❌"}}
	if !reflect.DeepEqual(m.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", m.Rows, wantRows)
	}
}

func TestOneShotLoadBadArgs(t *testing.T) {
	r, _ := newTestREPL()

	err := r.OneShot("load")
	var replErr *Error
	if !errors.As(err, &replErr) || replErr.Code != BadArgsErr {
		t.Errorf("expected bad args error, got %v", err)
	}
}

func TestOneShotPaste(t *testing.T) {
	r, buf := newTestREPL()

	if err := r.OneShot("paste"); err != nil {
		t.Fatalf("paste error: %v", err)
	}
	for _, line := range []string{"| A | B |", "|---|---|", "| x | z |"} {
		if err := r.OneShot(line); err != nil {
			t.Fatalf("buffered line error: %v", err)
		}
	}
	if err := r.OneShot(""); err != nil {
		t.Fatalf("finish paste error: %v", err)
	}

	m := r.Session().Model()
	if !reflect.DeepEqual(m.Headers, []string{"A", "B"}) {
		t.Errorf("headers = %v, want [A B]", m.Headers)
	}
	if !strings.Contains(buf.String(), "loaded 1 rows, 2 columns") {
		t.Errorf("expected load report, got: %s", buf.String())
	}
}

func TestOneShotPasteNothing(t *testing.T) {
	r, buf := newTestREPL()

	_ = r.OneShot("paste")
	if err := r.OneShot(""); err != nil {
		t.Fatalf("empty paste should not error, got %v", err)
	}
	if !strings.Contains(buf.String(), "nothing pasted") {
		t.Errorf("expected nothing pasted notice, got: %s", buf.String())
	}
	if r.pasting {
		t.Error("paste mode should be off after the blank line")
	}
}

func TestOneShotPasteParseError(t *testing.T) {
	r, _ := newTestREPL()

	_ = r.OneShot("paste")
	_ = r.OneShot("not a table")
	err := r.OneShot("")
	if err == nil {
		t.Fatal("expected parse error from pasted garbage")
	}
	if r.pasting {
		t.Error("paste mode should be off after a failed parse")
	}
}

func TestOneShotMutationsAndUndo(t *testing.T) {
	r, _ := newTestREPL()

	if err := r.OneShot("add-col"); err != nil {
		t.Fatalf("add-col: %v", err)
	}
	if err := r.OneShot("add-row"); err != nil {
		t.Fatalf("add-row: %v", err)
	}
	if err := r.OneShot("set 0 0 hello"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if got := r.Session().Model().Rows[0][0]; got != "hello" {
		t.Errorf("cell = %q, want %q", got, "hello")
	}

	if err := r.OneShot("undo"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := r.Session().Model().Rows[0][0]; got != "" {
		t.Errorf("cell after undo = %q, want empty", got)
	}

	if err := r.OneShot("redo"); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if got := r.Session().Model().Rows[0][0]; got != "hello" {
		t.Errorf("cell after redo = %q, want %q", got, "hello")
	}
}

func TestOneShotSetJoinsValue(t *testing.T) {
	r, _ := newTestREPL()
	_ = r.OneShot("add-col")
	_ = r.OneShot("add-row")

	if err := r.OneShot("set 0 0 hello world"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := r.Session().Model().Rows[0][0]; got != "hello world" {
		t.Errorf("cell = %q, want %q", got, "hello world")
	}
}

func TestOneShotSort(t *testing.T) {
	r, _ := newTestREPL()
	path := writeSample(t, "| Item | N |\n| --- | --- |\n| Item 10 | a |\n| Item 2 | b |\n| Item 1 | c |\n")
	if err := r.OneShot("load " + path); err != nil {
		t.Fatal(err)
	}

	if err := r.OneShot("sort"); err != nil {
		t.Fatalf("sort: %v", err)
	}

	m := r.Session().Model()
	got := []string{m.Rows[0][0], m.Rows[1][0], m.Rows[2][0]}
	want := []string{"Item 1", "Item 2", "Item 10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted first cells = %v, want %v", got, want)
	}
}

func TestOneShotRemoveDefaultsToLast(t *testing.T) {
	r, _ := newTestREPL()
	path := writeSample(t, sampleTable)
	_ = r.OneShot("load " + path)

	if err := r.OneShot("rm-row"); err != nil {
		t.Fatalf("rm-row: %v", err)
	}
	m := r.Session().Model()
	if len(m.Rows) != 1 || m.Rows[0][0] != "Task1" {
		t.Errorf("rows after rm-row = %v, want only Task1", m.Rows)
	}
}

func TestOneShotEditErrorPassesThrough(t *testing.T) {
	r, _ := newTestREPL()

	err := r.OneShot("rm-col")
	if !clierrors.IsEditError(err) {
		t.Errorf("expected an edit error on an empty table, got %v", err)
	}
}

func TestOneShotShow(t *testing.T) {
	r, buf := newTestREPL()
	path := writeSample(t, sampleTable)
	_ = r.OneShot("load " + path)
	buf.Reset()

	if err := r.OneShot("show"); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(buf.String(), "| Name | Done |") {
		t.Errorf("show output = %q, want markdown header row", buf.String())
	}

	buf.Reset()
	if err := r.OneShot("show json"); err != nil {
		t.Fatalf("show json: %v", err)
	}
	if !strings.Contains(buf.String(), `"Task1"`) {
		t.Errorf("show json output = %q, want JSON keys", buf.String())
	}
}

func TestOneShotShowEmpty(t *testing.T) {
	r, buf := newTestREPL()

	if err := r.OneShot("show"); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(buf.String(), "no table loaded") {
		t.Errorf("expected no-table notice, got: %s", buf.String())
	}
}

func TestOneShotFormat(t *testing.T) {
	r, buf := newTestREPL()

	if err := r.OneShot("format json"); err != nil {
		t.Fatalf("format json: %v", err)
	}
	buf.Reset()
	if err := r.OneShot("format"); err != nil {
		t.Fatalf("format: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "json" {
		t.Errorf("format output = %q, want json", buf.String())
	}

	err := r.OneShot("format csv")
	var replErr *Error
	if !errors.As(err, &replErr) || replErr.Code != BadArgsErr {
		t.Errorf("expected bad args for unknown format, got %v", err)
	}
}

func TestOneShotStatsAndSummary(t *testing.T) {
	r, buf := newTestREPL()
	path := writeSample(t, sampleTable)
	_ = r.OneShot("load " + path)
	buf.Reset()

	if err := r.OneShot("stats"); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(buf.String(), "COLUMN") {
		t.Errorf("stats output = %q, want COLUMN header", buf.String())
	}

	buf.Reset()
	if err := r.OneShot("summary"); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(buf.String(), "| **Total** = 2 | 1/2 |") {
		t.Errorf("summary output = %q, want totals line", buf.String())
	}
}

func TestOneShotUnknownCommand(t *testing.T) {
	r, _ := newTestREPL()

	err := r.OneShot("frobnicate")
	var replErr *Error
	if !errors.As(err, &replErr) || replErr.Code != UnknownCommandErr {
		t.Errorf("expected unknown command error, got %v", err)
	}
}

func TestOneShotEmptyLine(t *testing.T) {
	r, buf := newTestREPL()

	if err := r.OneShot("   "); err != nil {
		t.Fatalf("blank line should be a no-op, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("blank line should print nothing, got: %s", buf.String())
	}
}

func TestOneShotExit(t *testing.T) {
	r, _ := newTestREPL()

	err := r.OneShot("exit")
	if _, ok := err.(stop); !ok {
		t.Errorf("exit should return stop, got %v", err)
	}
}

func TestOneShotCaseInsensitiveCommand(t *testing.T) {
	r, buf := newTestREPL()

	if err := r.OneShot("SHOW"); err != nil {
		t.Fatalf("SHOW: %v", err)
	}
	if !strings.Contains(buf.String(), "no table loaded") {
		t.Errorf("uppercase command should dispatch, got: %s", buf.String())
	}
}

func TestOneShotMoveBadArgs(t *testing.T) {
	r, _ := newTestREPL()

	for _, line := range []string{"move-row 1", "move-col", "dup", "dup x", "insert", "set 0", "set a 0 v"} {
		err := r.OneShot(line)
		var replErr *Error
		if !errors.As(err, &replErr) || replErr.Code != BadArgsErr {
			t.Errorf("OneShot(%q) = %v, want bad args error", line, err)
		}
	}
}

func TestOneShotClear(t *testing.T) {
	r, _ := newTestREPL()
	path := writeSample(t, sampleTable)
	_ = r.OneShot("load " + path)

	if err := r.OneShot("clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !r.Session().Model().IsEmpty() {
		t.Error("model should be empty after clear")
	}

	_ = r.OneShot("undo")
	if r.Session().Model().IsEmpty() {
		t.Error("undo after clear should restore the table")
	}
}

func TestOneShotHelp(t *testing.T) {
	r, buf := newTestREPL()

	if err := r.OneShot("help"); err != nil {
		t.Fatalf("help: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Examples", "Commands", "show [format]", "exit"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestComplete(t *testing.T) {
	r, _ := newTestREPL()

	got := r.complete("mo")
	want := []string{"move-row", "move-col"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("complete(mo) = %v, want %v", got, want)
	}

	if got := r.complete("zzz"); got != nil {
		t.Errorf("complete(zzz) = %v, want nil", got)
	}
}
