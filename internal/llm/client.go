package llm

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Client is the generative-model collaborator.  Implementations must be safe
// for concurrent use; calls across requests are independent.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrNotConfigured is returned by Disabled when no API key was provided.
	ErrNotConfigured = errors.New("llm: client not configured")

	// ErrEmptyResponse is returned when the model answered with no content.
	ErrEmptyResponse = errors.New("llm: empty response from model")
)

// Disabled is the degraded client used when no API key is configured.  Every
// call fails, which the composer turns into the fixed fallback message.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// retryClient bounds each model call with a timeout and retries once with a
// jittered backoff before giving up.
type retryClient struct {
	inner   Client
	timeout time.Duration
	retries int
}

// WithRetry wraps a client with a per-call timeout and up to retries
// additional attempts.
func WithRetry(inner Client, timeout time.Duration, retries int) Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	return &retryClient{inner: inner, timeout: timeout, retries: retries}
}

func (c *retryClient) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(250+rand.Intn(500)) * time.Millisecond
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		text, err := c.inner.Generate(callCtx, prompt)
		cancel()
		if err == nil {
			return text, nil
		}
		lastErr = err
		if errors.Is(err, ErrNotConfigured) {
			break
		}
	}
	return "", lastErr
}
