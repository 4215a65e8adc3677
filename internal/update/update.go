// Package update provides non-blocking update checking for the CLI.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// checkInterval is the minimum time between update checks.
	checkInterval = 24 * time.Hour
	// githubRepo is the repository to check for releases.
	githubRepo = "salmonumbrella/tbl-cli"
	// githubAPI is the base URL of the GitHub REST API.
	githubAPI = "https://api.github.com"
)

// HTTPDoer abstracts an HTTP client for testability.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Checker polls GitHub for a newer release, at most once per interval,
// remembering the last answer in a small cache file.
type Checker struct {
	client    HTTPDoer
	cachePath string
	interval  time.Duration
	now       func() time.Time
	writeFile func(string, []byte, os.FileMode) error
	repo      string
	baseURL   string
	logger    *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// NewChecker creates a Checker with defaults and applies options.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:    http.DefaultClient,
		interval:  checkInterval,
		now:       time.Now,
		writeFile: os.WriteFile,
		repo:      githubRepo,
		baseURL:   githubAPI,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Checker) {
		if client != nil {
			c.client = client
		}
	}
}

// WithCachePath overrides the full cache path.
func WithCachePath(path string) Option {
	return func(c *Checker) {
		c.cachePath = path
	}
}

// WithNow overrides the clock.
func WithNow(fn func() time.Time) Option {
	return func(c *Checker) {
		if fn != nil {
			c.now = fn
		}
	}
}

// WithCheckInterval overrides the check interval.
func WithCheckInterval(interval time.Duration) Option {
	return func(c *Checker) {
		if interval > 0 {
			c.interval = interval
		}
	}
}

// WithRepo overrides the GitHub repo slug.
func WithRepo(repo string) Option {
	return func(c *Checker) {
		if strings.TrimSpace(repo) != "" {
			c.repo = repo
		}
	}
}

// WithBaseURL overrides the GitHub API base URL, for tests.
func WithBaseURL(url string) Option {
	return func(c *Checker) {
		if strings.TrimSpace(url) != "" {
			c.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// state is the on-disk record of the last check.
type state struct {
	LastCheck     time.Time `json:"last_check"`
	LatestVersion string    `json:"latest_version"`
}

// UpdateError wraps update-check failures with context.
type UpdateError struct {
	Op  string
	Err error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update check %s: %v", e.Op, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

// Check checks for updates and returns a message if a newer version exists.
// This is non-blocking and logs failures at debug level.
func Check(ctx context.Context, currentVersion string, opts ...Option) string {
	checker := NewChecker(opts...)
	msg, err := checker.Check(ctx, currentVersion)
	if err != nil {
		checker.logger.Debug("update check failed", "error", err)
	}
	return msg
}

// CheckWithOptions runs an update check with custom options.
func CheckWithOptions(ctx context.Context, currentVersion string, opts ...Option) (string, error) {
	checker := NewChecker(opts...)
	return checker.Check(ctx, currentVersion)
}

// Check checks for updates and returns a message if a newer version exists.
func (c *Checker) Check(ctx context.Context, currentVersion string) (string, error) {
	path, err := c.resolveCachePath()
	if err != nil {
		return "", &UpdateError{Op: "cache path", Err: err}
	}

	cached, err := loadState(path)
	if err != nil {
		return "", &UpdateError{Op: "load cache", Err: err}
	}

	if !c.shouldCheck(cached.LatestVersion, cached.LastCheck) {
		if isNewer(currentVersion, cached.LatestVersion) {
			return updateMessage(cached.LatestVersion, currentVersion, c.repo), nil
		}
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	latest, err := c.fetchLatestRelease(ctx)
	if err != nil {
		return "", &UpdateError{Op: "fetch latest release", Err: err}
	}

	saveErr := c.saveState(path, state{
		LastCheck:     c.now(),
		LatestVersion: latest,
	})
	if saveErr != nil {
		return updateMessage(latest, currentVersion, c.repo), &UpdateError{Op: "save cache", Err: saveErr}
	}

	if isNewer(currentVersion, latest) {
		return updateMessage(latest, currentVersion, c.repo), nil
	}

	return "", nil
}

func (c *Checker) resolveCachePath() (string, error) {
	if strings.TrimSpace(c.cachePath) != "" {
		return c.cachePath, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tbl", "update-check.json"), nil
}

func loadState(path string) (state, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return state{}, nil
		}
		return state{}, err
	}
	var parsed state
	if err := json.Unmarshal(data, &parsed); err != nil {
		return state{}, err
	}
	return parsed, nil
}

func (c *Checker) saveState(path string, value state) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.writeFile(path, data, 0o644)
}

func (c *Checker) shouldCheck(cachedVersion string, lastCheck time.Time) bool {
	if cachedVersion == "" || lastCheck.IsZero() {
		return true
	}
	return c.now().Sub(lastCheck) > c.interval
}

func (c *Checker) fetchLatestRelease(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, c.repo)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	return parseVersion(release.TagName), nil
}

func updateMessage(latest, current, repo string) string {
	return fmt.Sprintf("A new version is available: %s (current: %s)\nRun: go install github.com/%s/cmd/tbl@latest", latest, current, repo)
}

func parseVersion(v string) string {
	return strings.TrimPrefix(v, "v")
}

func isNewer(current, latest string) bool {
	// Skip check for dev versions
	if current == "dev" || current == "unknown" || current == "" {
		return false
	}

	currentParts := strings.Split(current, ".")
	latestParts := strings.Split(latest, ".")

	for i := 0; i < len(currentParts) && i < len(latestParts); i++ {
		c, _ := strconv.Atoi(currentParts[i])
		l, _ := strconv.Atoi(latestParts[i])
		if l > c {
			return true
		}
		if l < c {
			return false
		}
	}

	return len(latestParts) > len(currentParts)
}
