package repl

import "fmt"

// Error is the error type returned by built-in REPL commands.
type Error struct {
	Code    string
	Message string
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v: %v", err.Code, err.Message)
}

const (
	// BadArgsErr indicates bad arguments were provided to a built-in
	// REPL command.
	BadArgsErr string = "bad arguments"
	// UnknownCommandErr indicates the input line is not a REPL command.
	UnknownCommandErr string = "unknown command"
)

func newBadArgsErr(f string, a ...any) *Error {
	return &Error{
		Code:    BadArgsErr,
		Message: fmt.Sprintf(f, a...),
	}
}

func newUnknownCommandErr(name string) *Error {
	return &Error{
		Code:    UnknownCommandErr,
		Message: fmt.Sprintf("%q is not a command; type help for the command list", name),
	}
}

// stop is returned by the 'exit' command to indicate to the REPL that it
// should break and return.
type stop struct{}

func (stop) Error() string {
	return "<stop>"
}
