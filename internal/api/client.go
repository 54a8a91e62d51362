// Package api implements the HTTP client for the Streamlet REST API.
//
// All requests carry the session cookies held in the client's jar. A 401
// response triggers the refresh protocol: one silent POST to the refresh
// endpoint, then a single replay of the original request. The replayed
// request never re-enters the refresh path.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/streamlethq/slx/internal/shared"
)

const refreshPath = "/users/refresh_tokens"

// Client wraps all outbound calls to the Streamlet API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	jar        http.CookieJar
	limiter    *rate.Limiter
	logger     *log.Logger

	// refreshMu serializes the refresh protocol; concurrent 401s each run
	// their own refresh in turn rather than sharing one request.
	refreshMu sync.Mutex
}

// Options configures a Client.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *log.Logger
}

// NewClient creates a Client for the given base URL with a cookie jar for
// credential passthrough.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8000/api/v1"
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", shared.ErrInvalidConfig, err)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 10
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	httpClient.Jar = jar

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: httpClient,
		jar:        jar,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		logger:     opts.Logger,
	}, nil
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Cookies returns the cookies currently held for the API base URL.
func (c *Client) Cookies() []*http.Cookie {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil
	}
	return c.jar.Cookies(u)
}

// SetCookies seeds the jar with previously persisted session cookies.
func (c *Client) SetCookies(cookies []*http.Cookie) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("%w: invalid base URL: %v", shared.ErrInvalidConfig, err)
	}
	c.jar.SetCookies(u, cookies)
	return nil
}

// Get performs a GET request against the API.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil, "", true)
}

// Post performs a POST request with a JSON body. A nil body sends an empty request.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	payload, contentType, err := encodeJSON(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, payload, contentType, true)
}

// PostForm performs a multipart POST. fields are plain form values; files maps
// form field names to local file paths to attach.
func (c *Client) PostForm(ctx context.Context, path string, fields map[string]string, files map[string]string) (*Envelope, error) {
	payload, contentType, err := encodeMultipart(fields, files)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, payload, contentType, true)
}

// Delete performs a DELETE request against the API.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil, "", true)
}

// do sends one request and applies the refresh protocol. The body is retained
// as bytes so the request can be replayed after a successful refresh. When
// allowRefresh is false a 401 is returned to the caller as ErrAuthExpired.
func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string, allowRefresh bool) (*Envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", shared.GenerateID())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrTransport, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && allowRefresh {
		c.logger.Debug("authentication expired, attempting refresh", "path", path)
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
		// Replay the original request exactly once.
		return c.do(ctx, method, path, body, contentType, false)
	}

	env := parseEnvelope(respBody, resp.StatusCode)
	if err := classify(resp.StatusCode, env); err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "status", resp.StatusCode)
		return env, err
	}

	return env, nil
}

// refresh performs the dedicated refresh-token request. Concurrent callers
// serialize here; the refresh call itself never triggers another refresh.
func (c *Client) refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if _, err := c.do(ctx, http.MethodPost, refreshPath, nil, "", false); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	return nil
}

// classify maps an HTTP status to the client error taxonomy.
func classify(status int, env *Envelope) error {
	message := ""
	if env != nil && env.Message != "" {
		message = ": " + env.Message
	}

	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d%s", shared.ErrAuthExpired, status, message)
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: status %d%s", shared.ErrValidation, status, message)
	default:
		return fmt.Errorf("%w: status %d%s", shared.ErrServer, status, message)
	}
}

// encodeJSON marshals body for a JSON request. A nil body yields no payload.
func encodeJSON(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
	}
	return payload, "application/json", nil
}

// encodeMultipart assembles a multipart form body from fields and file paths.
func encodeMultipart(fields map[string]string, files map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(field, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", field, err)
		}
	}

	for field, path := range files {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read attachment %s: %w", path, err)
		}
		part, err := writer.CreateFormFile(field, filepath.Base(path))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %s: %w", field, err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", fmt.Errorf("failed to write attachment %s: %w", field, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
