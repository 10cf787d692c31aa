package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jstittsworth/draft-diagnostics/internal/fantasy"
)

const maxAttempts = 3

// Executor runs fn behind a circuit breaker for the named service
type Executor interface {
	Execute(service string, fn func() (interface{}, error)) (interface{}, error)
}

// ClientOptions tunes the HTTP behaviour shared by every connector
type ClientOptions struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	RetryBackoff      time.Duration // first wait; doubles per attempt
}

func (o ClientOptions) withDefaults(baseURL string) ClientOptions {
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.RequestsPerSecond <= 0 {
		o.RequestsPerSecond = 5
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = time.Second
	}
	return o
}

// jsonClient issues GET requests with rate limiting, bounded retries and an
// optional circuit breaker.
type jsonClient struct {
	service    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    Executor
	backoff    time.Duration
	cookies    []*http.Cookie
	logger     *logrus.Logger
}

func newJSONClient(service string, opts ClientOptions, breaker Executor, logger *logrus.Logger) *jsonClient {
	return &jsonClient{
		service: service,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		breaker: breaker,
		backoff: opts.RetryBackoff,
		logger:  logger,
	}
}

// getJSON decodes the response body of url into target.
func (c *jsonClient) getJSON(ctx context.Context, url string, target interface{}) error {
	if c.breaker == nil {
		return c.fetch(ctx, url, target)
	}
	_, err := c.breaker.Execute(c.service, func() (interface{}, error) {
		return nil, c.fetch(ctx, url, target)
	})
	return err
}

func (c *jsonClient) fetch(ctx context.Context, url string, target interface{}) error {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			waitTime := time.Duration(math.Pow(2, float64(attempt-1))) * c.backoff
			c.logger.WithFields(logrus.Fields{
				"service": c.service,
				"attempt": attempt,
				"wait":    waitTime.String(),
			}).WithError(lastErr).Warn("Request failed, retrying")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitTime):
			}
		}

		err := c.do(ctx, url, target)
		if err == nil {
			return nil
		}
		lastErr = err

		// the platform answered definitively; retrying changes nothing
		if errors.Is(err, fantasy.ErrLeagueNotFound) || errors.Is(err, fantasy.ErrPrivateLeague) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("request failed after retries: %w", lastErr)
}

func (c *jsonClient) do(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fantasy.ErrLeagueNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fantasy.ErrPrivateLeague
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", c.service, err)
	}
	return nil
}
