package skyblockextractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// RetryPolicy bounds how many times a single call may be attempted and how
// long to pause between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

func DefaultRetryPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * 2 * time.Second
		},
	}
}

type CallerOptions struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
	RateLimit time.Duration
	Policy    RetryPolicy

	// Sleep substitutes time.Sleep in tests.
	Sleep func(d time.Duration)
}

// Caller issues sequential GET requests against one API, pacing them with a
// fixed inter-request delay and retrying failed attempts up to a budget.
type Caller struct {
	http      *resty.Client
	rateLimit time.Duration
	policy    RetryPolicy
	sleep     func(d time.Duration)
}

func NewCaller(opts CallerOptions) *Caller {
	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetHeader("User-Agent", opts.UserAgent)
	if opts.APIKey != "" {
		client.SetHeader("API-Key", opts.APIKey)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	policy := opts.Policy
	if policy.MaxAttempts < 1 {
		policy = DefaultRetryPolicy(1)
	}
	if policy.Backoff == nil {
		policy.Backoff = DefaultRetryPolicy(policy.MaxAttempts).Backoff
	}

	return &Caller{
		http:      client,
		rateLimit: opts.RateLimit,
		policy:    policy,
		sleep:     sleep,
	}
}

// envelope is the part of a response body shared by every endpoint. The API
// may answer HTTP 200 with success=false plus a cause string; that counts as
// a failed call, not a success.
type envelope struct {
	Success *bool  `json:"success"`
	Cause   string `json:"cause"`
}

// Get fetches path, returning the raw response document. ctxName describes
// the operation for error reporting ("UUID lookup", "Bazaar Market Data").
// After a successful attempt the caller sleeps the configured rate-limit
// delay before returning, so back-to-back calls stay under the remote
// request-rate ceiling.
func (c *Caller) Get(ctx context.Context, path string, ctxName string) (json.RawMessage, error) {
	var lastMessage string
	var lastStatus int

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			c.sleep(c.policy.Backoff(attempt - 1))
		}
		if err := ctx.Err(); err != nil {
			return nil, &ApiError{Context: ctxName, LastMessage: err.Error(), Status: lastStatus}
		}

		body, errMessage, status := c.attempt(ctx, path)
		if errMessage == "" {
			c.sleep(c.rateLimit)
			return body, nil
		}

		lastMessage = errMessage
		lastStatus = status
		log.Debug().Str("path", path).Int("attempt", attempt).Msgf("call failed: %s", errMessage)
	}

	return nil, &ApiError{Context: ctxName, LastMessage: lastMessage, Status: lastStatus}
}

// attempt issues exactly one request and returns either the body or a
// human-readable failure message plus the HTTP status, when one was received.
func (c *Caller) attempt(ctx context.Context, path string) (json.RawMessage, string, int) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, err.Error(), 0
	}
	status := resp.StatusCode()

	switch status {
	case http.StatusOK:
	case http.StatusNoContent, http.StatusNotFound:
		return nil, "data not found", status
	case http.StatusForbidden:
		return nil, "API access denied (check API key and SkyBlock API settings)", status
	default:
		return nil, fmt.Sprintf("HTTP %d", status), status
	}

	body := resp.Body()

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Success != nil && !*env.Success {
		if env.Cause != "" {
			return nil, env.Cause, status
		}
		return nil, "request was not successful", status
	}

	return json.RawMessage(body), "", status
}
