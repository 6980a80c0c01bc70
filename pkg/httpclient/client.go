// Package httpclient wraps the standard HTTP client behind a small
// interface so outbound calls (the Resend API, the contactform client) can
// be mocked in tests.
package httpclient

import (
	"net/http"
	"time"
)

// Client is the outbound HTTP surface the rest of the codebase depends on.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient wraps http.Client with a bounded timeout. The timeout
// doubles as the mail dispatcher's provider timeout: the submission handler
// blocks on dispatch, so an unbounded call would hold the HTTP response
// open indefinitely.
type StandardHTTPClient struct {
	client *http.Client
}

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 15 * time.Second

// NewStandardClient creates a client with DefaultTimeout.
func NewStandardClient() Client {
	return NewStandardClientWithTimeout(DefaultTimeout)
}

// NewStandardClientWithTimeout creates a client with an explicit timeout.
func NewStandardClientWithTimeout(timeout time.Duration) Client {
	return &StandardHTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Do executes an HTTP request.
func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
