package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"time"

	"github.com/jspark-dev/cinegrid/internal/domain"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultUploadTimeout = 30 * time.Second
	userAgent            = "cinegrid/1.0"
)

// Client is the thin HTTP transport for the catalog backend: base URL,
// JSON headers, session cookies, per-request timeout. No retries, no
// caching.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	uploadTimeout time.Duration
	logger        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUploadTimeout overrides the multipart upload timeout.
func WithUploadTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.uploadTimeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a catalog API client rooted at baseURL (e.g.
// "http://localhost:8080/api"). A cookie jar carries the backend's session
// cookie across requests.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
		uploadTimeout: defaultUploadTimeout,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one authenticated JSON exchange and returns the raw body.
// Failures come back as *TransportError; malformed requests fail before
// anything is sent.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindNoResponse
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			kind = KindTimeout
		} else {
			err = errors.Join(domain.ErrServerUnreachable, err)
		}
		c.logger.Error("api request failed", "method", method, "path", path, "error", err)
		return nil, &TransportError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Kind: KindNoResponse, Err: err}
	}

	if resp.StatusCode >= 400 {
		terr := &TransportError{
			Kind:    KindHTTPError,
			Status:  resp.StatusCode,
			Message: backendMessage(respBody),
		}
		if resp.StatusCode == http.StatusUnauthorized {
			terr.Err = domain.ErrAuthRequired
		}
		c.logger.Error("api request error", "method", method, "path", path, "status", resp.StatusCode)
		return nil, terr
	}

	return respBody, nil
}

// decode unmarshals body into dest, tolerating empty responses.
func decode(body []byte, dest interface{}) error {
	if len(body) == 0 || dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// backendMessage extracts the {"message": ...} payload some error
// responses carry.
func backendMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

func isTimeout(err error) bool {
	var nerr interface{ Timeout() bool }
	if errors.As(err, &nerr) {
		return nerr.Timeout()
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}
