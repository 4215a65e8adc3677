// Package repl implements a Read-Eval-Print-Loop for editing one table
// interactively.
//
// The REPL is typically started from the command line (`tbl repl`), but it
// can also be driven as a library through OneShot.
package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/salmonumbrella/tbl-cli/internal/convert"
	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
	"github.com/salmonumbrella/tbl-cli/internal/logging"
	"github.com/salmonumbrella/tbl-cli/internal/output"
	"github.com/salmonumbrella/tbl-cli/internal/table"
	"github.com/salmonumbrella/tbl-cli/internal/ui"
)

// REPL represents an instance of the interactive shell. It owns exactly one
// editing session for its lifetime.
type REPL struct {
	output  io.Writer
	ui      *ui.UI
	session *table.Session
	logger  *slog.Logger

	format  convert.Format
	buffer  []string
	pasting bool

	historyPath string
	initPrompt  string
	pastePrompt string
	banner      string
}

// New returns a new instance of the REPL. Data output (tables, stats) goes
// to output; feedback and errors render through u. historyPath names the
// liner history file and may be empty to disable persistence.
func New(output io.Writer, u *ui.UI, historyPath, banner string) *REPL {
	return &REPL{
		output:      output,
		ui:          u,
		session:     table.NewSession(),
		logger:      logging.Component("repl"),
		format:      convert.FormatMarkdown,
		historyPath: historyPath,
		initPrompt:  "tbl> ",
		pastePrompt: "... ",
		banner:      banner,
	}
}

// Session exposes the underlying editing session.
func (r *REPL) Session() *table.Session {
	return r.session
}

// LoadFile parses the table in the named file into the session.
func (r *REPL) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	m, err := convert.Parse(string(data))
	if err != nil {
		return err
	}
	r.session.Replace(m)
	r.logger.Debug("loaded table", "path", path, "rows", len(m.Rows), "columns", len(m.Headers))
	r.reportLoaded(m)
	return nil
}

// Loop runs until the user enters "exit", Ctrl+C, or Ctrl+D. It returns
// only on a fatal terminal error.
func (r *REPL) Loop() error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()
	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(true)
	r.loadHistory(line)

	if len(r.banner) > 0 {
		fmt.Fprintln(r.output, r.banner)
	}

	line.SetCompleter(r.complete)

	for {
		input, err := line.Prompt(r.getPrompt())
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Fprintln(r.output, "Exiting")
			break
		}
		if err != nil {
			return fmt.Errorf("terminal error: %w", err)
		}

		err = r.OneShot(input)
		if _, done := err.(stop); done {
			break
		}
		if err != nil {
			r.ui.Error("%v", err)
			if s := clierrors.UserSuggestion(err); s != "" {
				r.ui.Hint("%s", s)
			}
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
	}

	r.saveHistory(line)
	return nil
}

// OneShot evaluates a single input line. Errors are returned for the caller
// to display; a core error never terminates the shell.
func (r *REPL) OneShot(line string) error {
	if r.pasting {
		if strings.TrimSpace(line) == "" {
			return r.finishPaste()
		}
		r.buffer = append(r.buffer, line)
		return nil
	}

	cmd := newCommand(line)
	if cmd == nil {
		if fields := strings.Fields(line); len(fields) > 0 {
			return newUnknownCommandErr(fields[0])
		}
		return nil
	}

	switch cmd.op {
	case "show":
		return r.cmdShow(cmd.args)
	case "load":
		return r.cmdLoad(cmd.args)
	case "paste":
		return r.cmdPaste()
	case "add-row":
		return r.session.AddRow()
	case "add-col":
		r.session.AddColumn()
		return nil
	case "rm-row":
		return r.cmdRemove(cmd.args, r.session.RemoveRow)
	case "rm-col":
		return r.cmdRemove(cmd.args, r.session.RemoveColumn)
	case "move-row":
		return r.cmdMove(cmd.args, r.session.MoveRow)
	case "move-col":
		return r.cmdMove(cmd.args, r.session.MoveColumn)
	case "sort":
		return r.session.SortRows()
	case "dup":
		return r.cmdIndexed(cmd.args, "dup", r.session.DuplicateRow)
	case "insert":
		return r.cmdIndexed(cmd.args, "insert", r.session.InsertRowAfter)
	case "set":
		return r.cmdSet(cmd.args)
	case "undo":
		if !r.session.Undo() {
			fmt.Fprintln(r.output, "nothing to undo")
		}
		return nil
	case "redo":
		if !r.session.Redo() {
			fmt.Fprintln(r.output, "nothing to redo")
		}
		return nil
	case "stats":
		return r.cmdStats()
	case "summary":
		return r.cmdSummary()
	case "format":
		return r.cmdFormat(cmd.args)
	case "clear":
		r.session.Clear()
		return nil
	case "help":
		return r.cmdHelp()
	case "exit":
		return stop{}
	}
	return nil
}

func (r *REPL) getPrompt() string {
	if r.pasting {
		return r.pastePrompt
	}
	return r.initPrompt
}

func (r *REPL) complete(line string) (c []string) {
	prefix := strings.ToLower(line)
	for _, cd := range builtin {
		if strings.HasPrefix(cd.name, prefix) {
			c = append(c, cd.name)
		}
	}
	return c
}

func (r *REPL) cmdShow(args []string) error {
	format := r.format
	if len(args) > 0 {
		f, err := convert.ParseFormat(args[0])
		if err != nil {
			return newBadArgsErr("show: %v", err)
		}
		format = f
	}

	m := r.session.Model()
	if m.IsEmpty() {
		fmt.Fprintln(r.output, "no table loaded; use load or paste")
		return nil
	}

	text, err := convert.Serialize(m, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.output, text)
	return nil
}

func (r *REPL) cmdLoad(args []string) error {
	if len(args) != 1 {
		return newBadArgsErr("load <file>: expects exactly one argument")
	}
	return r.LoadFile(args[0])
}

func (r *REPL) cmdPaste() error {
	r.pasting = true
	r.buffer = nil
	fmt.Fprintln(r.output, "Paste the table, then finish with a blank line.")
	return nil
}

func (r *REPL) finishPaste() error {
	text := strings.Join(r.buffer, "\n")
	r.buffer = nil
	r.pasting = false

	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(r.output, "nothing pasted")
		return nil
	}

	m, err := convert.Parse(text)
	if err != nil {
		return err
	}
	r.session.Replace(m)
	r.logger.Debug("pasted table", "rows", len(m.Rows), "columns", len(m.Headers))
	r.reportLoaded(m)
	return nil
}

func (r *REPL) cmdRemove(args []string, remove func(int) error) error {
	index := -1
	if len(args) > 0 {
		n, err := parseIndex(args[0])
		if err != nil {
			return newBadArgsErr("%v", err)
		}
		index = n
	}
	return remove(index)
}

func (r *REPL) cmdMove(args []string, move func(int, int) error) error {
	if len(args) != 2 {
		return newBadArgsErr("move <from> <to>: expects two indices")
	}
	from, err := parseIndex(args[0])
	if err != nil {
		return newBadArgsErr("%v", err)
	}
	to, err := parseIndex(args[1])
	if err != nil {
		return newBadArgsErr("%v", err)
	}
	return move(from, to)
}

func (r *REPL) cmdIndexed(args []string, name string, op func(int) error) error {
	if len(args) != 1 {
		return newBadArgsErr("%s <i>: expects exactly one index", name)
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return newBadArgsErr("%v", err)
	}
	return op(index)
}

func (r *REPL) cmdSet(args []string) error {
	if len(args) < 3 {
		return newBadArgsErr("set <row> <col> <value>: expects a row, a column, and a value")
	}
	row, err := parseIndex(args[0])
	if err != nil {
		return newBadArgsErr("%v", err)
	}
	col, err := parseIndex(args[1])
	if err != nil {
		return newBadArgsErr("%v", err)
	}
	return r.session.SetCell(row, col, strings.Join(args[2:], " "))
}

func (r *REPL) cmdStats() error {
	m := r.session.Model()
	if m.IsEmpty() {
		fmt.Fprintln(r.output, "no table loaded; use load or paste")
		return nil
	}
	stats := table.AllColumnStats(m)
	printer := output.NewPrinter(r.output, output.FormatTable)
	return printer.Print(context.Background(), stats)
}

func (r *REPL) cmdSummary() error {
	m := r.session.Model()
	if m.IsEmpty() {
		fmt.Fprintln(r.output, "no table loaded; use load or paste")
		return nil
	}
	fmt.Fprintln(r.output, table.Summary(m))
	return nil
}

func (r *REPL) cmdFormat(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(r.output, string(r.format))
		return nil
	}
	f, err := convert.ParseFormat(args[0])
	if err != nil {
		return newBadArgsErr("format: %v", err)
	}
	r.format = f
	return nil
}

func (r *REPL) cmdHelp() error {
	fmt.Fprintln(r.output, "")
	printHelpExamples(r.output, r.initPrompt)
	printHelpCommands(r.output)
	return nil
}

func (r *REPL) reportLoaded(m table.Model) {
	fmt.Fprintf(r.output, "loaded %d rows, %d columns\n", len(m.Rows), len(m.Headers))
}

func (r *REPL) loadHistory(prompt *liner.State) {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Open(r.historyPath); err == nil {
		_, _ = prompt.ReadHistory(f)
		_ = f.Close()
	}
}

func (r *REPL) saveHistory(prompt *liner.State) {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Create(r.historyPath); err == nil {
		_, _ = prompt.WriteHistory(f)
		_ = f.Close()
	}
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

type commandDesc struct {
	name string
	args []string
	help string
}

func (c commandDesc) syntax() string {
	if len(c.args) > 0 {
		return fmt.Sprintf("%v %v", c.name, strings.Join(c.args, " "))
	}
	return c.name
}

type exampleDesc struct {
	example string
	comment string
}

var examples = [...]exampleDesc{
	{"load tasks.md", "parse a Markdown or HTML table from a file"},
	{"set 0 1 yes", "check the first row's second column"},
	{"show json", "print the table as JSON"},
}

var builtin = [...]commandDesc{
	{"show", []string{"[format]"}, "print the table (markdown, json, html)"},
	{"load", []string{"<file>"}, "parse a table from a file"},
	{"paste", []string{}, "read table text until a blank line"},
	{"add-row", []string{}, "append an empty row"},
	{"add-col", []string{}, "append a new column"},
	{"rm-row", []string{"[i]"}, "remove row i (last when omitted)"},
	{"rm-col", []string{"[i]"}, "remove column i (last when omitted)"},
	{"move-row", []string{"<from>", "<to>"}, "move a row to a new position"},
	{"move-col", []string{"<from>", "<to>"}, "move a column to a new position"},
	{"sort", []string{}, "sort rows by the first column"},
	{"dup", []string{"<i>"}, "duplicate row i"},
	{"insert", []string{"<i>"}, "insert an empty row after row i"},
	{"set", []string{"<row>", "<col>", "<value>"}, "set a cell value"},
	{"undo", []string{}, "revert the last change"},
	{"redo", []string{}, "reapply an undone change"},
	{"stats", []string{}, "show per-column statistics"},
	{"summary", []string{}, "show the checkbox summary line"},
	{"format", []string{"[f]"}, "show or set the default show format"},
	{"clear", []string{}, "discard the table"},
	{"help", []string{}, "print this message"},
	{"exit", []string{}, "exit back to shell (or ctrl+c, ctrl+d)"},
}

type command struct {
	op   string
	args []string
}

// newCommand matches the first word against the built-in command table.
// Arguments keep their original case; file paths and cell values must not
// be folded.
func newCommand(line string) *command {
	p := strings.Fields(strings.TrimSpace(line))
	if len(p) == 0 {
		return nil
	}
	op := strings.ToLower(p[0])
	for _, c := range builtin {
		if c.name == op {
			return &command{
				op:   op,
				args: p[1:],
			}
		}
	}
	return nil
}

func printHelpExamples(output io.Writer, promptSymbol string) {
	fmt.Fprintln(output, "Examples")
	fmt.Fprintln(output, "========")
	fmt.Fprintln(output, "")

	maxLength := 0
	for _, ex := range examples {
		if len(ex.example) > maxLength {
			maxLength = len(ex.example)
		}
	}

	f := fmt.Sprintf("%v%%-%dv # %%v\n", promptSymbol, maxLength+1)

	for _, ex := range examples {
		fmt.Fprintf(output, f, ex.example, ex.comment)
	}

	fmt.Fprintln(output, "")
}

func printHelpCommands(output io.Writer) {
	fmt.Fprintln(output, "Commands")
	fmt.Fprintln(output, "========")
	fmt.Fprintln(output, "")

	maxLength := 0
	for _, c := range builtin {
		if length := len(c.syntax()); length > maxLength {
			maxLength = length
		}
	}

	f := fmt.Sprintf("%%%dv : %%v\n", maxLength)

	for _, c := range builtin {
		fmt.Fprintf(output, f, c.syntax(), c.help)
	}

	fmt.Fprintln(output, "")
}
