package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/datadiver/diver/pkg/logger"
)

// DefaultBaseURL is the backend address used when nothing is configured.
const DefaultBaseURL = "http://localhost:8058"

// Circuit breaker defaults. Five consecutive transport failures open the
// circuit for 30 seconds so a down backend fails fast instead of stalling
// the UI on every keystroke.
const (
	breakerMaxFailures uint32 = 5
	breakerTimeout            = 30 * time.Second
	breakerInterval           = 60 * time.Second
)

// Client is the DataDiver backend REST client. All plain JSON endpoints go
// through it; the streaming endpoints borrow its Stream method so the
// circuit breaker also protects stream connection attempts (errors after a
// stream is established do not trip the breaker).
type Client struct {
	baseURL    string
	httpClient *http.Client
	// streamClient has no overall timeout; a stream lives until the backend
	// closes it or the request context is cancelled.
	streamClient *http.Client
	breaker      *gobreaker.CircuitBreaker[*http.Response]
}

// NewClient creates a client for the backend at baseURL with default
// timeouts.
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 30*time.Second)
}

// NewClientWithTimeout creates a client with a custom request timeout for
// non-streaming calls. Streaming responses are exempt from the timeout; they
// are bounded by their context.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	log := logger.WithComponent("api")
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "datadiver-backend",
		MaxRequests: 1,
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			// Any HTTP response counts as backend-alive; only transport
			// failures and 5xx responses move the breaker.
			var apiErr *Error
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode < 500
			}
			return err == nil
		},
	})

	transport := newPooledTransport()
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		streamClient: &http.Client{
			Transport: transport,
		},
		breaker: breaker,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do executes a JSON request and decodes the response into out (out may be
// nil for endpoints with no interesting body).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Stream executes a request expected to return a chunked streaming body and
// hands the body to the caller, who owns closing it. The request context
// stays attached to the body, so cancelling it aborts the stream.
func (c *Client) Stream(ctx context.Context, method, path string, body any) (io.ReadCloser, error) {
	resp, err := c.send(ctx, method, path, body, true)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, streaming bool) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}

	httpClient := c.httpClient
	if streaming {
		httpClient = c.streamClient
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			defer resp.Body.Close()
			return nil, newError(resp)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, c.baseURL)
		}
		return nil, err
	}
	return resp, nil
}
