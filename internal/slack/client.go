// Package slack delivers notification payloads to Slack incoming webhooks
// with validation, timeout, and retry semantics.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"golang.org/x/time/rate"

	"github.com/herald-hq/herald/internal/message"
)

// Policy configures delivery timeouts and retries.
type Policy struct {
	// Timeout bounds each individual attempt.
	Timeout time.Duration
	// RetryDelay is the base backoff; retry n waits RetryDelay * 2^(n-1).
	RetryDelay time.Duration
	// Retries is the number of additional attempts after the first.
	Retries int
}

// DefaultPolicy matches Slack's recommended client behavior.
var DefaultPolicy = Policy{
	Timeout:    10 * time.Second,
	Retries:    2,
	RetryDelay: time.Second,
}

// webhookURLPattern is the fixed shape of a Slack incoming webhook: scheme,
// host, and three alphanumeric path segments.
var webhookURLPattern = regexp.MustCompile(`^https://hooks\.slack\.com/services/[A-Za-z0-9]+/[A-Za-z0-9]+/[A-Za-z0-9]+$`)

// Client posts messages to one validated webhook URL. It is safe for
// concurrent use; retry state is local to each SendMessage call.
type Client struct {
	httpClient *http.Client
	sleep      func(ctx context.Context, d time.Duration) error
	limiter    *rate.Limiter
	webhookURL string
	policy     Policy
}

// NewClient validates the webhook URL and returns a client with the default
// policy. A malformed URL fails fast with a ValidationError; no request is
// made.
func NewClient(webhookURL string) (*Client, error) {
	return NewClientWithPolicy(webhookURL, DefaultPolicy)
}

// NewClientWithPolicy is NewClient with an explicit retry policy.
func NewClientWithPolicy(webhookURL string, policy Policy) (*Client, error) {
	if webhookURL == "" {
		return nil, &ValidationError{Message: "webhook URL is empty"}
	}
	if !webhookURLPattern.MatchString(webhookURL) {
		return nil, &ValidationError{Message: "webhook URL does not match the Slack incoming webhook format"}
	}

	if policy.Timeout <= 0 {
		policy.Timeout = DefaultPolicy.Timeout
	}
	if policy.RetryDelay <= 0 {
		policy.RetryDelay = DefaultPolicy.RetryDelay
	}
	if policy.Retries < 0 {
		policy.Retries = 0
	}

	return &Client{
		webhookURL: webhookURL,
		policy:     policy,
		httpClient: &http.Client{},
		sleep:      sleepWithContext,
		// Slack throttles incoming webhooks at roughly one message per
		// second; pace bursts instead of eating 429s.
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}, nil
}

// SendMessage serializes the payload and posts it, retrying transient
// failures with exponential backoff. Non-retryable errors (4xx other than
// 429) surface immediately; otherwise the last error observed is returned.
func (c *Client) SendMessage(ctx context.Context, payload message.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.policy.Retries; attempt++ {
		if attempt > 0 {
			delay := c.policy.RetryDelay * (1 << (attempt - 1))
			slog.Warn("Webhook delivery failed, retrying",
				"attempt", attempt,
				"max_retries", c.policy.Retries,
				"delay", delay,
				"error", lastErr)
			if err := c.sleep(ctx, delay); err != nil {
				return err
			}
		}

		lastErr = c.post(ctx, body)
		if lastErr == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(lastErr, &apiErr) && !apiErr.Retryable() {
			return lastErr
		}
	}

	return lastErr
}

// post performs a single delivery attempt bounded by the policy timeout.
// Success is exactly a 2xx status with the literal body "ok"; Slack reports
// some application-level failures with a 200 status and an error body.
func (c *Client) post(ctx context.Context, body []byte) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &APIError{Status: 0, Body: ""}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.policy.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return &APIError{Status: 0, Body: "Timeout"}
		}
		return &APIError{Status: 0, Body: ""}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: 0, Body: ""}
	}

	respBody := string(raw)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || respBody != "ok" {
		return &APIError{Status: resp.StatusCode, Body: respBody}
	}
	return nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
