package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"nexus/internal/domain"
)

const (
	// Prefix is the versioned root of every backend route.
	Prefix = "/api/v1"

	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the finance backend.
type Client struct {
	base      string
	http      Doer
	tokens    domain.TokenStore
	log       *slog.Logger
	onExpired func()
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSessionExpiredHandler registers fn to run after any 401 response,
// once per response, after credentials were cleared.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// New returns a Client reading credentials from tokens.
func New(cfg Config, tokens domain.TokenStore, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		http:   &http.Client{Timeout: cfg.Timeout},
		tokens: tokens,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ domain.FinanceAPI = (*Client)(nil)

// do sends one request. in is JSON-encoded as the body when non-nil; out,
// when non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.base + Prefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	c.authorize(req)

	log := c.log.With("method", method, "path", path, "request_id", requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", "error", err)
		return domain.WrapNetwork(method+" "+path, err)
	}
	defer resp.Body.Close()

	log.Debug("request completed", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode/100 != 2 {
		rerr := readResponseError(method, path, resp)
		if resp.StatusCode == http.StatusUnauthorized {
			c.expire(log)
		}
		return rerr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return domain.WrapNetwork("decode "+method+" "+path, err)
	}
	return nil
}

// authorize attaches the bearer token when one is persisted. A store read
// failure sends the request unauthenticated.
func (c *Client) authorize(req *http.Request) {
	token, ok, err := c.tokens.LoadToken()
	if err != nil {
		c.log.Warn("read token", "error", err)
		return
	}
	if ok {
		req.Header.Set(AuthorizationHeader, "Bearer "+token)
	}
}

// expire clears persisted credentials and hands control to the session layer.
func (c *Client) expire(log *slog.Logger) {
	log.Info("session rejected by backend")
	if err := c.tokens.ClearCredentials(); err != nil {
		log.Error("clear credentials", "error", err)
	}
	if c.onExpired != nil {
		c.onExpired()
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, in, out any) error {
	return c.do(ctx, http.MethodPost, path, query, in, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodPut, path, query, nil, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
