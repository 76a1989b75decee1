// Package insight forwards analysis summaries to a configured generative
// text endpoint and returns its narrative response. The client never
// inspects or alters the statistical results it forwards.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrDisabled is returned when no endpoint URL is configured.
var ErrDisabled = errors.New("insight: no endpoint configured")

// Client posts prompts to an upstream generative endpoint with exponential
// backoff on transient failures.
type Client struct {
	url        string
	apiKey     string
	maxRetries int
	httpClient *http.Client
}

// Options configures a Client.
type Options struct {
	URL        string
	APIKey     string
	Timeout    time.Duration // per-attempt timeout; 0 means 30s
	MaxRetries int           // retries after the first attempt; 0 means 3
}

// New returns a client for the given endpoint. An empty URL yields a
// disabled client whose Generate always returns ErrDisabled.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := opts.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	return &Client{
		url:        opts.URL,
		apiKey:     opts.APIKey,
		maxRetries: retries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an endpoint URL is configured.
func (c *Client) Enabled() bool { return c.url != "" }

type request struct {
	Prompt string `json:"prompt"`
}

type response struct {
	Text string `json:"text"`
}

// Generate posts the prompt upstream and returns the generated text.
// Transport errors and 5xx responses are retried with exponential backoff;
// 4xx responses fail immediately.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	body, err := json.Marshal(request{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("insight: encode request: %w", err)
	}

	var text string
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("insight: upstream returned %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("insight: upstream rejected request with %d", resp.StatusCode))
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return err
		}
		var out response
		if err := json.Unmarshal(data, &out); err != nil {
			return backoff.Permanent(fmt.Errorf("insight: decode response: %w", err))
		}
		text = out.Text
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)
	if err := backoff.Retry(attempt, policy); err != nil {
		return "", err
	}
	return text, nil
}
