// Package contactform is the submitting side of the contact pipeline: the
// same validation and sanitization the server applies, run locally before a
// request is ever made, plus the form state machine the UI binds to. It
// exists so an embedding front end and the API can never disagree about
// what a valid submission is.
package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/DevByAndrei/portfolio/pkg/httpclient"
	"github.com/DevByAndrei/portfolio/pkg/sanitize"
)

// Client POSTs sanitized submissions to the contact endpoint.
type Client struct {
	endpoint   string
	httpClient httpclient.Client
}

// NewClient creates a client for the given endpoint URL
// (e.g. "https://devbyandrei.dev/api/sendEmail").
func NewClient(endpoint string, httpClient httpclient.Client) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

type wireSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type wireResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Send sanitizes the raw fields (defense in depth — the server sanitizes
// again) and POSTs them. Non-2xx responses come back as an error carrying
// the server's message.
func (c *Client) Send(ctx context.Context, raw sanitize.RawFields) error {
	clean := sanitize.Apply(raw)

	payload, err := json.Marshal(wireSubmission{
		Name:    clean.Name,
		Email:   clean.Email,
		Reason:  clean.Reason,
		Message: clean.Message,
	})
	if err != nil {
		return fmt.Errorf("contactform: failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("contactform: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contactform: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var wire wireResponse
		if json.Unmarshal(body, &wire) == nil && wire.Error != "" {
			return errors.New(wire.Error)
		}
		return fmt.Errorf("contactform: unexpected status %d", resp.StatusCode)
	}

	return nil
}
