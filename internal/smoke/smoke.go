// Package smoke runs a fixed list of requests against a running API server
// and reports the status code and body text of each.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Check is one request and the status it must return
type Check struct {
	Name   string
	Method string
	Path   string
	Body   interface{}
	Expect int
}

// DefaultChecks exercises every public route once, plus the auth gate on
// league import.
var DefaultChecks = []Check{
	{Name: "health", Method: http.MethodGet, Path: "/health", Expect: http.StatusOK},
	{Name: "players", Method: http.MethodGet, Path: "/api/v1/players?limit=5", Expect: http.StatusOK},
	{Name: "players by position", Method: http.MethodGet, Path: "/api/v1/players?position=QB&limit=3", Expect: http.StatusOK},
	{Name: "player search", Method: http.MethodGet, Path: "/api/v1/players/search?name=Justin+Jefferson", Expect: http.StatusOK},
	{Name: "ai ask", Method: http.MethodPost, Path: "/api/v1/ai/ask", Body: map[string]string{"question": "Who is ADP #1?"}, Expect: http.StatusOK},
	{Name: "ai help", Method: http.MethodPost, Path: "/api/v1/ai/ask", Body: map[string]string{"question": "help"}, Expect: http.StatusOK},
	{Name: "draft analyze", Method: http.MethodPost, Path: "/api/v1/draft/analyze", Body: map[string]interface{}{
		"label": "smoke test",
		"picks": []map[string]interface{}{
			{"player_name": "Bijan Robinson", "adp_value": 1, "projection_value": 3, "projection": map[string]float64{"projection_pts": 290}},
			{"player_name": "Derrick Henry", "adp_value": -1, "projection_value": 0, "projection": map[string]float64{"projection_pts": 240}},
		},
	}, Expect: http.StatusCreated},
	{Name: "leagues", Method: http.MethodGet, Path: "/api/v1/leagues", Expect: http.StatusOK},
	{Name: "league import requires auth", Method: http.MethodPost, Path: "/api/v1/leagues/import", Body: map[string]string{"platform": "sleeper"}, Expect: http.StatusUnauthorized},
}

// maxBodySnippet bounds the response text kept on a Result
const maxBodySnippet = 200

type Result struct {
	Check    Check
	Status   int
	Body     string
	Duration time.Duration
	Err      error
}

func (r Result) Passed() bool {
	return r.Err == nil && r.Status == r.Check.Expect
}

func (r Result) String() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("FAIL %-30s %s %s: %v", r.Check.Name, r.Check.Method, r.Check.Path, r.Err)
	case !r.Passed():
		return fmt.Sprintf("FAIL %-30s %s %s: status %d, want %d: %s", r.Check.Name, r.Check.Method, r.Check.Path, r.Status, r.Check.Expect, r.Body)
	default:
		return fmt.Sprintf("ok   %-30s %s %s: %d (%s)", r.Check.Name, r.Check.Method, r.Check.Path, r.Status, r.Duration.Round(time.Millisecond))
	}
}

type Report struct {
	Results []Result
}

func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed() {
			failed = append(failed, res)
		}
	}
	return failed
}

func (r Report) OK() bool {
	return len(r.Failed()) == 0
}

type Runner struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewRunner(baseURL string, timeout time.Duration, logger *logrus.Logger) *Runner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Run issues every check in order. A failed check does not stop the rest.
func (r *Runner) Run(ctx context.Context, checks []Check) Report {
	report := Report{Results: make([]Result, 0, len(checks))}
	for _, check := range checks {
		res := r.run(ctx, check)

		entry := r.logger.WithFields(logrus.Fields{
			"check":    check.Name,
			"method":   check.Method,
			"path":     check.Path,
			"status":   res.Status,
			"duration": res.Duration,
		})
		switch {
		case res.Err != nil:
			entry.WithError(res.Err).Error("Smoke check failed")
		case !res.Passed():
			entry.WithFields(logrus.Fields{
				"expected": check.Expect,
				"body":     res.Body,
			}).Error("Smoke check failed")
		default:
			entry.Info("Smoke check passed")
		}

		report.Results = append(report.Results, res)
	}
	return report
}

func (r *Runner) run(ctx context.Context, check Check) (res Result) {
	res.Check = check
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	var body io.Reader
	if check.Body != nil {
		raw, err := json.Marshal(check.Body)
		if err != nil {
			res.Err = fmt.Errorf("failed to encode body: %w", err)
			return res
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, check.Method, r.baseURL+check.Path, body)
	if err != nil {
		res.Err = fmt.Errorf("failed to create request: %w", err)
		return res
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		res.Err = fmt.Errorf("request failed: %w", err)
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippet+1))
	if err != nil {
		res.Err = fmt.Errorf("failed to read body: %w", err)
		return res
	}
	res.Body = snippet(raw)
	_, _ = io.Copy(io.Discard, resp.Body)
	return res
}

func snippet(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(raw) > maxBodySnippet {
		text = strings.TrimSpace(string(raw[:maxBodySnippet])) + "..."
	}
	return text
}
