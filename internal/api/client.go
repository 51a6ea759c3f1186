package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 1 << 20
)

// Client talks to the remote Eventify API. Every request goes to the single
// base URL and carries the client's default headers.
type Client struct {
	baseURL    string
	headers    *headerSet
	transport  http.RoundTripper
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTransport replaces the underlying round tripper. Clones share it.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		headers:    newHeaderSet(),
		transport:  http.DefaultTransport,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Transport = &headerTransport{base: c.transport, headers: c.headers}
	return c
}

// Clone returns a client with its own copy of the default headers that shares
// the connection pool of c.
func (c *Client) Clone() *Client {
	headers := &headerSet{h: c.headers.snapshot()}
	return &Client{
		baseURL:   c.baseURL,
		headers:   headers,
		transport: c.transport,
		httpClient: &http.Client{
			Timeout:   c.httpClient.Timeout,
			Transport: &headerTransport{base: c.transport, headers: headers},
		},
	}
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SetDefaultHeader(key, value string) {
	c.headers.set(key, value)
}

func (c *Client) DeleteDefaultHeader(key string) {
	c.headers.del(key)
}

// DefaultHeader returns the current default value for key, or "".
func (c *Client) DefaultHeader(key string) string {
	return c.headers.get(key)
}

// SetBearer makes every following request carry the token.
func (c *Client) SetBearer(token string) {
	c.SetDefaultHeader("Authorization", "Bearer "+token)
}

// ClearBearer removes the Authorization default header.
func (c *Client) ClearBearer() {
	c.DeleteDefaultHeader("Authorization")
}

// Do sends a JSON request and decodes a JSON response into out. A nil body
// sends no payload; a nil out discards the response body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

type headerSet struct {
	mu sync.RWMutex
	h  http.Header
}

func newHeaderSet() *headerSet {
	return &headerSet{h: http.Header{}}
}

func (s *headerSet) set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Set(key, value)
}

func (s *headerSet) del(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Del(key)
}

func (s *headerSet) get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.h.Get(key)
}

func (s *headerSet) snapshot() http.Header {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.h.Clone()
}

// headerTransport adds the default headers to every outgoing request.
// Headers already set on the request win.
type headerTransport struct {
	base    http.RoundTripper
	headers *headerSet
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	defaults := t.headers.snapshot()
	if len(defaults) == 0 {
		return t.base.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	for key, values := range defaults {
		if _, ok := req.Header[key]; ok {
			continue
		}
		req.Header[key] = values
	}
	return t.base.RoundTrip(req)
}
