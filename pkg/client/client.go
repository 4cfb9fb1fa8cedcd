// Package client is the typed REST client for the French Cert backend.
// Every listing reply is normalized into pagination.PageResult and every
// failure into *Error.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/frenchcert/frenchcert/pkg/lookup"
)

// Observer receives one call per completed request.
type Observer interface {
	ObserveRequest(method, resource, outcome string, duration time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithObserver registers an Observer for request metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithTransport replaces the underlying HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.SetTransport(rt) }
}

// Client issues requests against the backend.
type Client struct {
	http     *resty.Client
	logger   *slog.Logger
	observer Observer
}

// New creates a Client from a finalized Config.
func New(cfg *Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(cfg.TimeoutDuration()).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if size := cfg.MaxResponseSizeBytes(); size > 0 {
		rc.SetResponseBodyLimit(int(size))
	}
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}

	c := &Client{
		http:   rc,
		logger: logger.With("component", "client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues a GET and returns the raw successful body.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// Lookup fetches a lookup list and normalizes it into options.
func (c *Client) Lookup(ctx context.Context, path string) ([]lookup.Option, error) {
	body, err := c.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	options, err := decodeOptions(body)
	if err != nil {
		return nil, &Error{Kind: KindServer, Err: err}
	}
	return options, nil
}

// LookupSource returns a lookup.Source backed by path.
func (c *Client) LookupSource(name, label, path string) lookup.Source {
	return lookup.Source{
		Name:  name,
		Label: label,
		Load: func(ctx context.Context) ([]lookup.Option, error) {
			return c.Lookup(ctx, path)
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	duration := time.Since(start)

	if err != nil {
		cerr := transportError(err)
		c.observe(method, path, string(cerr.Kind), duration)
		if cerr.Kind != KindCanceled {
			c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		}
		return nil, cerr
	}

	raw := resp.Body()
	status := resp.StatusCode()

	if resp.IsError() || rejected(raw) {
		cerr := responseError(status, raw)
		c.observe(method, path, string(cerr.Kind), duration)
		c.logger.Debug("request rejected",
			"method", method,
			"path", path,
			"status", status,
			"kind", cerr.Kind,
			"duration", duration,
		)
		return nil, cerr
	}

	c.observe(method, path, "ok", duration)
	c.logger.Debug("request", "method", method, "path", path, "status", status, "duration", duration)
	return raw, nil
}

func rejected(body []byte) bool {
	r := gjson.GetBytes(body, "success")
	return r.Exists() && !r.Bool()
}

func (c *Client) observe(method, path, outcome string, d time.Duration) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveRequest(method, resourceOf(path), outcome, d)
}

// resourceOf returns the first path segment, used as a low-cardinality label.
func resourceOf(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(path, "/?"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}
