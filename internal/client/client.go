// Package client implements the HTTP client for the three Chipi backend
// endpoints: /api/login, /api/register and /api/message.
//
// Every operation issues exactly one POST per call. There is no retry,
// backoff or caching layer: a failed attempt is terminal and the user retries
// by repeating the action. Application-level failures (a well-formed response
// with success:false) are returned as response values, not errors; errors are
// reserved for transport, HTTP and parse problems.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chipi-ai/chipi/internal/api"
)

// DefaultTimeout is the default HTTP request timeout
const DefaultTimeout = 10 * time.Second

// Client talks to a Chipi backend over HTTP.
type Client struct {
	// BaseURL is the backend base URL (e.g. "http://localhost:8600")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// New creates a client for the backend at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Login performs one POST /api/login. The returned response must be checked
// for Success: a false flag with a nil error means the server rejected the
// credentials.
func (c *Client) Login(ctx context.Context, phone, password string) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	err := c.post(ctx, api.LoginPath, api.LoginRequest{Phone: phone, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register performs one POST /api/register.
func (c *Client) Register(ctx context.Context, phone, password, confirm string) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	req := api.RegisterRequest{Phone: phone, Password: password, ConfirmPassword: confirm}
	if err := c.post(ctx, api.RegisterPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendMessage performs one POST /api/message on behalf of phone.
func (c *Client) SendMessage(ctx context.Context, phone, message string) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	req := api.MessageRequest{Phone: phone, Message: message}
	if err := c.post(ctx, api.MessagePath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// post performs a single JSON POST exchange and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create POST request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classifyTransportError("no se pudo conectar con el servidor", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return newHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError("failed to read response body", err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return newParseError("failed to parse JSON response", err)
	}

	return nil
}
