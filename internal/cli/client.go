package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// sessionCookieName matches the server's session cookie.
const sessionCookieName = "SESSION"

// Client is an HTTP client for the game server. It authenticates with
// Basic credentials, then rides the session cookie the server issues.
type Client struct {
	baseURL    string
	username   string
	password   string
	token      string
	httpClient *http.Client

	// onToken is called when the server issues or refreshes the session
	// cookie, so the token can be persisted between invocations.
	onToken func(token string)
}

// NewClient creates a new game server client
func NewClient(baseURL, username, password, token string, onToken func(string)) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		username: username,
		password: password,
		token:    token,
		onToken:  onToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Redirects carry the information we want (the new lobby's
			// location), so surface them instead of following.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Do performs an HTTP request and returns the response body and status.
func (c *Client) Do(method, path string, contentType string, body io.Reader) ([]byte, *http.Response, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.captureToken(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return respBody, resp, fmt.Errorf("HTTP %d from %s %s", resp.StatusCode, method, path)
	}

	return respBody, resp, nil
}

// Get performs a GET request
func (c *Client) Get(path string) ([]byte, *http.Response, error) {
	return c.Do(http.MethodGet, path, "", nil)
}

// PostForm performs a form POST request
func (c *Client) PostForm(path string, form url.Values) ([]byte, *http.Response, error) {
	return c.Do(http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

// PostJSON performs a JSON POST request
func (c *Client) PostJSON(path string, body any) ([]byte, *http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.Do(http.MethodPost, path, "application/json", bytes.NewReader(data))
}

// authorize attaches the session cookie and, when configured, the Basic
// credentials.
func (c *Client) authorize(req *http.Request) {
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: c.token})
	}
}

func (c *Client) captureToken(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" && cookie.Value != c.token {
			c.token = cookie.Value
			if c.onToken != nil {
				c.onToken(cookie.Value)
			}
		}
	}
}
