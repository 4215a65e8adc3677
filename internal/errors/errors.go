package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents an input validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// UserError represents an error caused by user input or configuration.
// Suggestion can provide a concrete fix for the user.
type UserError struct {
	Message    string
	Suggestion string
	Err        error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError with a message and optional suggestion.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

// WrapUserError wraps an underlying error with a user-facing message and suggestion.
func WrapUserError(err error, message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion, Err: err}
}

// ParseKind classifies why input text could not be parsed into a table.
// The string values are stable and appear in JSON error envelopes.
type ParseKind string

const (
	ParseEmptyInput          ParseKind = "empty_input"
	ParseFormatNotRecognized ParseKind = "format_not_recognized"
	ParseMalformedTable      ParseKind = "malformed_table"
	ParseColumnCountMismatch ParseKind = "column_count_mismatch"
	ParseNoTableFound        ParseKind = "no_table_found"
	ParseNoHeaderRow         ParseKind = "no_header_row"
	ParseNoHeadersFound      ParseKind = "no_headers_found"
	ParseHTML                ParseKind = "html_parse_error"
)

// ParseError represents a detection or parse failure. Parsing is
// all-or-nothing: a ParseError means no partial table was produced.
type ParseError struct {
	Kind       ParseKind
	Message    string
	Suggestion string
	Err        error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError with a message and optional suggestion.
func NewParseError(kind ParseKind, message, suggestion string) *ParseError {
	return &ParseError{Kind: kind, Message: message, Suggestion: suggestion}
}

// WrapParseError wraps an underlying cause, used for failures inside the
// HTML traversal where the inner message matters.
func WrapParseError(err error, kind ParseKind, message, suggestion string) *ParseError {
	return &ParseError{Kind: kind, Message: message, Suggestion: suggestion, Err: err}
}

// EditKind classifies a rejected structural mutation. A rejected mutation
// leaves the table and its history untouched.
type EditKind string

const (
	EditNoColumnsDefined       EditKind = "no_columns_defined"
	EditCannotRemoveLastColumn EditKind = "cannot_remove_last_column"
	EditInvalidIndex           EditKind = "invalid_index"
	EditNoRowsToRemove         EditKind = "no_rows_to_remove"
	EditInsufficientRows       EditKind = "insufficient_rows"
)

// EditError represents a mutation operation the table rejected.
type EditError struct {
	Kind       EditKind
	Message    string
	Suggestion string
}

func (e *EditError) Error() string {
	return e.Message
}

// NewEditError creates an EditError with a message and optional suggestion.
func NewEditError(kind EditKind, message, suggestion string) *EditError {
	return &EditError{Kind: kind, Message: message, Suggestion: suggestion}
}

// Type checkers
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

func IsEditError(err error) bool {
	var e *EditError
	return errors.As(err, &e)
}

// ParseKindOf extracts the parse kind from an error chain.
func ParseKindOf(err error) (ParseKind, bool) {
	var e *ParseError
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// EditKindOf extracts the edit kind from an error chain.
func EditKindOf(err error) (EditKind, bool) {
	var e *EditError
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// ErrorCode returns the stable kind string for classified errors, or ""
// for everything else. Used by the JSON/YAML error envelopes.
func ErrorCode(err error) string {
	if kind, ok := ParseKindOf(err); ok {
		return string(kind)
	}
	if kind, ok := EditKindOf(err); ok {
		return string(kind)
	}
	return ""
}

// UserSuggestion returns a suggestion string if the error carries one.
func UserSuggestion(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Suggestion
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Suggestion
	}
	var ee *EditError
	if errors.As(err, &ee) {
		return ee.Suggestion
	}
	return ""
}
