package assets

import (
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

// ErrNotFound reports that the asset host has no file at the path.
var ErrNotFound = errors.New("asset not found")

// Fetcher retrieves image assets. *Client implements it; tests substitute
// their own.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (int64, error)
}

var _ Fetcher = (*Client)(nil)

// Client talks to a static asset host serving /images.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "nowcast/0.1"
	requestTimeout   = 5 * time.Second
)

// Health mirrors the asset host's /healthz payload.
type Health struct {
	Status string `json:"status"`
	Root   string `json:"root"`
}

// NewClient builds a Client for the host at baseURL ("host:port" or a full
// URL).
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized host URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Fetch downloads the asset at path and discards the body, returning the
// number of bytes read. A 404 yields ErrNotFound.
func (c *Client) Fetch(ctx context.Context, path string) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	resp, err := c.send(ctx, http.MethodGet, &url.URL{Path: path}, "image/*")
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return n, fmt.Errorf("read %s: %w", path, err)
	}
	return n, nil
}

// Health queries /healthz.
func (c *Client) Health(ctx context.Context) (Health, error) {
	if c == nil {
		return Health{}, fmt.Errorf("client is nil")
	}
	resp, err := c.send(ctx, http.MethodGet, &url.URL{Path: "/healthz"}, "application/json")
	if err != nil {
		return Health{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	var payload Health
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Health{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

func (c *Client) send(ctx context.Context, method string, rel *url.URL, accept string) (*http.Response, error) {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", rel.Path, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("asset host %s returned status %d", rel.Path, resp.StatusCode)
	}
	return resp, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("asset url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse asset url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse asset url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
