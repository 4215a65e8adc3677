// Package testutil provides shared test helpers, including a mock of the
// GitHub releases API used by update-check tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ReleaseServer is a test HTTP server that mimics the GitHub REST API
// endpoints the update checker talks to.
type ReleaseServer struct {
	server   *httptest.Server
	handlers map[string]http.HandlerFunc
	mu       sync.RWMutex
}

// NewReleaseServer creates a new mock server with no stubs registered.
// Unstubbed paths return 404.
func NewReleaseServer() *ReleaseServer {
	rs := &ReleaseServer{
		handlers: make(map[string]http.HandlerFunc),
	}

	rs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		rs.mu.RLock()
		handler, ok := rs.handlers[key]
		rs.mu.RUnlock()

		if ok {
			handler(w, r)
			return
		}

		http.NotFound(w, r)
	}))

	return rs
}

// URL returns the server's base URL.
func (rs *ReleaseServer) URL() string {
	return rs.server.URL
}

// Close shuts down the server.
func (rs *ReleaseServer) Close() {
	rs.server.Close()
}

// Handle registers a custom handler for a method+path.
func (rs *ReleaseServer) Handle(method, path string, handler http.HandlerFunc) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.handlers[method+" "+path] = handler
}

// HandleJSON registers a handler that returns JSON with the given status.
func (rs *ReleaseServer) HandleJSON(method, path string, status int, response interface{}) {
	rs.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(response)
	})
}

// StubLatestRelease registers the latest-release endpoint for a repo slug
// with the given tag, matching the GitHub response shape.
func (rs *ReleaseServer) StubLatestRelease(repo, tag string) {
	rs.HandleJSON("GET", "/repos/"+repo+"/releases/latest", http.StatusOK, map[string]interface{}{
		"tag_name": tag,
		"name":     tag,
	})
}

// HandleError registers a handler that returns a GitHub API error.
func (rs *ReleaseServer) HandleError(method, path string, status int, message string) {
	rs.HandleJSON(method, path, status, map[string]interface{}{
		"message":           message,
		"documentation_url": "https://docs.github.com/rest",
	})
}

// HandleRateLimit registers an exhausted-quota response with the
// X-RateLimit headers GitHub sends alongside it.
func (rs *ReleaseServer) HandleRateLimit(method, path string, retryAfter int) {
	rs.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message":           "API rate limit exceeded",
			"documentation_url": "https://docs.github.com/rest/overview/rate-limits-for-the-rest-api",
		})
	})
}

// Reset clears all registered handlers.
func (rs *ReleaseServer) Reset() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.handlers = make(map[string]http.HandlerFunc)
}
