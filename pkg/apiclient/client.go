// Package apiclient sends authenticated requests to the dashboard API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to the dashboard API rooted at a base URL such as
// http://127.0.0.1:7070/api.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL joins path onto the base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// exceptionBody is how the dashboard reports handler errors. It is sent
// with status 200, so callers must look at the body to spot it.
type exceptionBody struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
}

// getJSON fetches path with the given query and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// postJSON sends body as JSON to path and decodes the response into out.
// body and out may be nil when a route takes or returns nothing of interest.
func (c *Client) postJSON(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.URL(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var exc exceptionBody
	_ = json.Unmarshal(data, &exc)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: exc.Detail}
	}
	if exc.StatusCode != 0 {
		return &APIError{StatusCode: exc.StatusCode, Detail: exc.Detail}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// LoginResult is a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// ErrMissingToken is returned when a login response carries no token.
var ErrMissingToken = errors.New("login response did not include a token")

// Login exchanges a username and password for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var result LoginResult
	if err := c.postJSON(ctx, "/auth/login", nil, body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, ErrMissingToken
	}
	if result.Username == "" {
		result.Username = username
	}
	return &result, nil
}

// ResetPassword changes the dashboard password.
func (c *Client) ResetPassword(ctx context.Context, current, next string) error {
	body := map[string]string{
		"current_password": current,
		"new_password":     next,
	}
	return c.postJSON(ctx, "/auth/reset-pwd", nil, body, nil)
}
