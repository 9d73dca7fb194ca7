package api

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

// Service defines the calls the sync controller makes against the
// repositories API. It is implemented by *Client and can be faked in tests.
type Service interface {
	ListRepositories(ctx context.Context) ([]Repository, error)
	CreateRepository(ctx context.Context, payload NewRepository) (Repository, error)
	LikeRepository(ctx context.Context, id ID) (Repository, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// ErrNilClient is returned when a method is called on a nil *Client.
var ErrNilClient = errors.New("client is nil")

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

// Client talks to the repositories REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "http://localhost:3333"
	defaultUserAgent = "repolist/0.1"
	defaultTimeout   = 5 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the API rooted at baseURL. A bare host:port
// is treated as http.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// ListRepositories fetches the full collection.
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	var payload []Repository
	if err := c.do(ctx, http.MethodGet, "/repositories", nil, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []Repository{}
	}
	return payload, nil
}

// CreateRepository posts a new record and returns it with the server-assigned
// id and likes.
func (c *Client) CreateRepository(ctx context.Context, payload NewRepository) (Repository, error) {
	if c == nil {
		return Repository{}, ErrNilClient
	}
	var created Repository
	if err := c.do(ctx, http.MethodPost, "/repositories", payload, &created); err != nil {
		return Repository{}, err
	}
	return created, nil
}

// LikeRepository asks the service to like id and returns the updated record.
func (c *Client) LikeRepository(ctx context.Context, id ID) (Repository, error) {
	if c == nil {
		return Repository{}, ErrNilClient
	}
	if strings.TrimSpace(id.String()) == "" {
		return Repository{}, fmt.Errorf("repository id required")
	}
	var updated Repository
	path := "/repositories/" + url.PathEscape(id.String()) + "/like"
	if err := c.do(ctx, http.MethodPost, path, nil, &updated); err != nil {
		return Repository{}, err
	}
	return updated, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	// path is already escaped; JoinPath keeps escaped segments intact.
	reqURL := c.baseURL.JoinPath(path)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid := RequestIDFromContext(ctx); rid != "" {
		req.Header.Set(RequestIDHeader, rid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
