// Package api contains the REST clients for the user backend, the doctor
// backend, and the AI assistant microservice.
//
// A Client is constructed once per backend base URL. The bearer token is
// read from the token source at call time, never captured at construction,
// so a login or logout in the same process is visible to every subsequent
// request. The client never blocks, queues, or retries, and takes no
// corrective action on an authentication failure; that policy belongs to
// the caller.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/swasthaai/swastha-cli/internal/errors"
	"github.com/swasthaai/swastha-cli/internal/log"
)

// TokenSource yields the current bearer token, or "" when logged out.
// *session.Store satisfies this.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource, mostly for tests.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

// Client is an authenticated request dispatcher for one backend base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *log.Logger
}

// NewClient creates a client for the given base URL. tokens may be nil for
// backends that never need authentication.
func NewClient(baseURL string, tokens TokenSource, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		logger: logger,
	}
}

// BaseURL returns the backend base URL this client dispatches to.
func (c *Client) BaseURL() string { return c.baseURL }

// doRequest performs an HTTP request, attaching the bearer token when one is
// present at call time.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to marshal request body", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to create request", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	c.logger.Debug("dispatching request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, fmt.Sprintf("request to %s failed", path), err)
	}

	return resp, nil
}

// authorize attaches the Authorization header when a token is present.
func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// errorResponse is the error envelope both backends use.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// dataEnvelope is the optional success envelope; some endpoints wrap their
// payload in {"data": ...} and some return it bare.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// parseResponse decodes the response body into target, surfacing the
// backend-provided message on any non-success status.
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIResponse, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := backendMessage(body)

		if resp.StatusCode == http.StatusUnauthorized {
			unauthorized := errors.NewUnauthorizedError(resp.Request.URL.Path)
			if message != "" {
				unauthorized.Message = message
			}
			return unauthorized
		}

		if message == "" {
			message = fmt.Sprintf("request failed with status %d: %s", resp.StatusCode, string(body))
		}
		return errors.New(errors.ErrCodeAPIResponse, message)
	}

	if target == nil {
		return nil
	}

	if err := decodeData(body, target); err != nil {
		return errors.Wrap(errors.ErrCodeAPIResponse, "failed to decode response", err)
	}
	return nil
}

// backendMessage extracts the human-readable message from an error body.
func backendMessage(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	if errResp.Message != "" {
		return errResp.Message
	}
	return errResp.Error
}

// decodeData unmarshals body into target, unwrapping a {"data": ...}
// envelope when one is present.
func decodeData(body []byte, target interface{}) error {
	var envelope dataEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, target)
	}
	return json.Unmarshal(body, target)
}
