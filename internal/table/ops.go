package table

import (
	"fmt"
	"strconv"
	"strings"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
)

// opGrammar lists the accepted operation forms for error suggestions.
const opGrammar = "add-row, add-column, remove-row[=i], remove-column[=i], " +
	"move-row=from:to, move-column=from:to, sort, duplicate-row=i, " +
	"insert-after=i, set=row:col:value"

// ApplyOps applies operation specs in order and stops at the first failure.
// Operations already applied stay applied; each one is individually
// undoable.
func ApplyOps(s *Session, specs []string) error {
	for _, spec := range specs {
		if err := ApplyOp(s, spec); err != nil {
			return err
		}
	}
	return nil
}

// ApplyOp parses and applies one operation spec in the edit grammar shared
// by the CLI and the MCP tools. Short verb aliases (add-col, rm-row, dup,
// insert) are accepted alongside the long forms.
func ApplyOp(s *Session, spec string) error {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(spec), "=")
	name = strings.ToLower(strings.TrimSpace(name))

	switch name {
	case "add-row":
		if hasArg {
			return opArgErr(spec, "add-row takes no argument")
		}
		return s.AddRow()
	case "add-column", "add-col":
		if hasArg {
			return opArgErr(spec, "add-column takes no argument")
		}
		s.AddColumn()
		return nil
	case "remove-row", "rm-row":
		index := -1
		if hasArg {
			n, err := opIndex(spec, arg)
			if err != nil {
				return err
			}
			index = n
		}
		return s.RemoveRow(index)
	case "remove-column", "rm-col":
		index := -1
		if hasArg {
			n, err := opIndex(spec, arg)
			if err != nil {
				return err
			}
			index = n
		}
		return s.RemoveColumn(index)
	case "move-row":
		from, to, err := opPair(spec, arg, hasArg)
		if err != nil {
			return err
		}
		return s.MoveRow(from, to)
	case "move-column", "move-col":
		from, to, err := opPair(spec, arg, hasArg)
		if err != nil {
			return err
		}
		return s.MoveColumn(from, to)
	case "sort":
		if hasArg {
			return opArgErr(spec, "sort takes no argument")
		}
		return s.SortRows()
	case "duplicate-row", "dup":
		if !hasArg {
			return opArgErr(spec, "expected duplicate-row=i")
		}
		n, err := opIndex(spec, arg)
		if err != nil {
			return err
		}
		return s.DuplicateRow(n)
	case "insert-after", "insert":
		if !hasArg {
			return opArgErr(spec, "expected insert-after=i")
		}
		n, err := opIndex(spec, arg)
		if err != nil {
			return err
		}
		return s.InsertRowAfter(n)
	case "set":
		if !hasArg {
			return opArgErr(spec, "expected set=row:col:value")
		}
		parts := strings.SplitN(arg, ":", 3)
		if len(parts) != 3 {
			return opArgErr(spec, "expected set=row:col:value")
		}
		row, err := opIndex(spec, parts[0])
		if err != nil {
			return err
		}
		col, err := opIndex(spec, parts[1])
		if err != nil {
			return err
		}
		return s.SetCell(row, col, parts[2])
	default:
		return clierrors.NewUserError(
			fmt.Sprintf("unknown operation %q", name),
			"Operations: "+opGrammar)
	}
}

func opArgErr(spec, msg string) error {
	return clierrors.NewUserError(
		fmt.Sprintf("invalid operation %q: %s", spec, msg),
		"Operations: "+opGrammar)
}

func opIndex(spec, arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, opArgErr(spec, fmt.Sprintf("%q is not an index", arg))
	}
	return n, nil
}

func opPair(spec, arg string, hasArg bool) (int, int, error) {
	if !hasArg {
		return 0, 0, opArgErr(spec, "expected from:to")
	}
	left, right, found := strings.Cut(arg, ":")
	if !found {
		return 0, 0, opArgErr(spec, "expected from:to")
	}
	from, err := opIndex(spec, left)
	if err != nil {
		return 0, 0, err
	}
	to, err := opIndex(spec, right)
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
