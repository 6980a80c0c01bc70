// Package resend is a thin client for the Resend transactional-email API
// (https://resend.com). Only the single send endpoint the contact pipeline
// needs is implemented.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/DevByAndrei/portfolio/pkg/httpclient"
)

const sendEndpoint = "https://api.resend.com/emails"

// Email is the payload for a single send.
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Client talks to the Resend API.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient httpclient.Client
}

// NewClient creates a Resend client. The API key comes from process
// configuration; an empty key is accepted here and fails at send time so
// local setups without credentials can still boot.
func NewClient(apiKey string, httpClient httpclient.Client) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   sendEndpoint,
		httpClient: httpClient,
	}
}

// NewClientWithEndpoint overrides the API endpoint, used by tests.
func NewClientWithEndpoint(apiKey, endpoint string, httpClient httpclient.Client) *Client {
	c := NewClient(apiKey, httpClient)
	c.endpoint = endpoint
	return c
}

// sendResponse is the subset of the Resend response we read back.
type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// SendEmail submits one email synchronously. Provider rejections, transport
// failures and non-2xx statuses all surface as errors; callers treat any
// failure as a single opaque dispatch failure.
func (c *Client) SendEmail(ctx context.Context, email Email) error {
	if c.apiKey == "" {
		return fmt.Errorf("resend: API key not configured")
	}

	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("resend: failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("resend: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr sendResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("resend: %d %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("resend: unexpected status %d", resp.StatusCode)
	}

	return nil
}
