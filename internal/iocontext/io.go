// Package iocontext carries process I/O streams through context so
// commands can be exercised against buffers in tests.
package iocontext

import (
	"context"
	"io"
)

type ctxKey int

const (
	stdinKey ctxKey = iota
	stdoutKey
	stderrKey
)

// WithIO injects stdout and stderr writers into context.
func WithIO(ctx context.Context, stdout, stderr io.Writer) context.Context {
	ctx = context.WithValue(ctx, stdoutKey, stdout)
	ctx = context.WithValue(ctx, stderrKey, stderr)
	return ctx
}

// WithStdin injects a reader used in place of os.Stdin. Commands that
// accept table text on standard input read it through this.
func WithStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey, r)
}

// Stdin returns the stdin reader from context, or nil if not set.
func Stdin(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey).(io.Reader); ok {
		return r
	}
	return nil
}

// Stdout returns the stdout writer from context, or nil if not set.
func Stdout(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey).(io.Writer); ok {
		return w
	}
	return nil
}

// Stderr returns the stderr writer from context, or nil if not set.
func Stderr(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stderrKey).(io.Writer); ok {
		return w
	}
	return nil
}

// StdinOrDefault returns stdin from context or the provided default.
func StdinOrDefault(ctx context.Context, def io.Reader) io.Reader {
	if r := Stdin(ctx); r != nil {
		return r
	}
	return def
}

// StdoutOrDefault returns stdout from context or the provided default.
func StdoutOrDefault(ctx context.Context, def io.Writer) io.Writer {
	if w := Stdout(ctx); w != nil {
		return w
	}
	return def
}

// StderrOrDefault returns stderr from context or the provided default.
func StderrOrDefault(ctx context.Context, def io.Writer) io.Writer {
	if w := Stderr(ctx); w != nil {
		return w
	}
	return def
}
