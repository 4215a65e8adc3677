// Package debug provides an HTTP transport that dumps requests and
// responses to a writer. It backs --debug tracing of release update
// checks.
package debug

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	maxRequestBody  = 500
	maxResponseBody = 1000
)

// DebugTransport wraps an http.RoundTripper and logs each request and
// response to Output.
type DebugTransport struct {
	Transport http.RoundTripper
	Output    io.Writer
}

// NewDebugTransport creates a DebugTransport with the given base transport.
// A nil base defaults to http.DefaultTransport; a nil output defaults to
// os.Stderr.
func NewDebugTransport(base http.RoundTripper, output io.Writer) *DebugTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if output == nil {
		output = os.Stderr
	}
	return &DebugTransport{Transport: base, Output: output}
}

// RoundTrip implements http.RoundTripper.
func (t *DebugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	t.dumpRequest(req)

	resp, err := t.Transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		_, _ = fmt.Fprintf(t.Output, "<-- ERROR: %v (%s)\n\n", err, duration)
		return resp, err
	}

	t.dumpResponse(resp, duration)
	return resp, nil
}

func (t *DebugTransport) dumpRequest(req *http.Request) {
	_, _ = fmt.Fprintf(t.Output, "\n--> %s %s\n", req.Method, req.URL)

	for key, values := range req.Header {
		if key == "Authorization" {
			_, _ = fmt.Fprintf(t.Output, "    %s: %s\n", key, redactToken(values[0]))
			continue
		}
		_, _ = fmt.Fprintf(t.Output, "    %s: %s\n", key, strings.Join(values, ", "))
	}

	if req.Body == nil {
		return
	}
	bodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		_, _ = fmt.Fprintf(t.Output, "    [ERROR reading request body: %v]\n", err)
		return
	}
	// Restore the body for the actual request.
	req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	if len(bodyBytes) > 0 {
		_, _ = fmt.Fprintf(t.Output, "    Body: %s\n", truncate(string(bodyBytes), maxRequestBody))
	}
}

func (t *DebugTransport) dumpResponse(resp *http.Response, duration time.Duration) {
	_, _ = fmt.Fprintf(t.Output, "<-- %d %s (%s)\n", resp.StatusCode, resp.Status, duration)

	// GitHub reports API quota via X-RateLimit headers, with the reset
	// time as a Unix timestamp.
	if rl := resp.Header.Get("X-RateLimit-Remaining"); rl != "" {
		limit := resp.Header.Get("X-RateLimit-Limit")
		resetStr := ""
		if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
			if ts, err := strconv.ParseInt(reset, 10, 64); err == nil {
				if remaining := time.Until(time.Unix(ts, 0)); remaining > 0 {
					resetStr = fmt.Sprintf(" (resets in %ds)", int(remaining.Seconds()))
				}
			}
		}
		_, _ = fmt.Fprintf(t.Output, "    Rate-Limit: %s/%s remaining%s\n", rl, limit, resetStr)
	}

	for key, values := range resp.Header {
		_, _ = fmt.Fprintf(t.Output, "    %s: %s\n", key, strings.Join(values, ", "))
	}

	if resp.Body != nil {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			_, _ = fmt.Fprintf(t.Output, "    [ERROR reading response body: %v]\n\n", err)
			return
		}
		// Restore the body for the caller.
		resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		if len(bodyBytes) > 0 {
			_, _ = fmt.Fprintf(t.Output, "    Body: %s\n", truncate(string(bodyBytes), maxResponseBody))
		}
	}

	_, _ = fmt.Fprintln(t.Output)
}

// redactToken keeps only the last 4 characters of a bearer token.
func redactToken(val string) string {
	if strings.HasPrefix(val, "Bearer ") {
		token := strings.TrimPrefix(val, "Bearer ")
		if len(token) > 10 {
			return "Bearer ..." + token[len(token)-4:]
		}
	}
	return val
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + "... [truncated]"
	}
	return s
}
