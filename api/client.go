package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"paper-desk/config"

	"go.uber.org/zap"
)

// Client talks to the review backend. One method per endpoint; every call
// takes a context and returns either decoded data, an *APIError for a
// non-2xx response, or a wrapped transport error.
type Client struct {
	BaseURL string
	Logger  *zap.Logger

	hc *http.Client
}

// NewClient creates a backend client from the configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: cfg.APIBaseURL,
		Logger:  logger,
		hc:      &http.Client{Timeout: cfg.HTTPTimeout()},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// getJSON performs a GET and decodes the 2xx body into out.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}
	return c.doJSON(endpoint, req, out)
}

// sendJSON performs a request with a JSON body and decodes the 2xx body
// into out when out is non-nil.
func (c *Client) sendJSON(ctx context.Context, endpoint, method, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(endpoint, req, out)
}

// doJSON executes the request and applies the two-class error model:
// a failed round trip stays a plain wrapped error, a non-2xx response
// becomes an *APIError carrying the server message.
func (c *Client) doJSON(endpoint string, req *http.Request, out interface{}) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		observeRequest(endpoint, outcomeTransportError)
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observeRequest(endpoint, outcomeAppError)
		return newAPIError(resp)
	}

	observeRequest(endpoint, outcomeOK)
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

// getBytes performs a GET and returns the raw 2xx body, used for the PDF
// download which is the one non-JSON response.
func (c *Client) getBytes(ctx context.Context, endpoint, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		observeRequest(endpoint, outcomeTransportError)
		return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observeRequest(endpoint, outcomeAppError)
		return nil, newAPIError(resp)
	}

	observeRequest(endpoint, outcomeOK)
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", endpoint, err)
	}
	return data, nil
}
