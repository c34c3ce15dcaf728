// Package api is the F1 API fetch adapter: one HTTP request in, status,
// headers, raw body and JSON payload out. It also carries the dashboard
// endpoints and the simple-REST data provider used by the CRUD screens.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"f1dash/internal/jsonutil"
	"f1dash/internal/telemetry"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Options configures a single FetchJSON call.
type Options struct {
	Method string      // defaults to GET
	Header http.Header // merged over the defaults
	Body   []byte      // sent as-is; JSON content type added when unset
}

// Response is what FetchJSON resolves to.
type Response struct {
	Status int
	Header http.Header
	Body   string
	JSON   json.RawMessage // nil when the body is empty or not JSON
}

// HTTPError is returned for responses outside the 2xx range.
type HTTPError struct {
	Status  int
	Message string
	Body    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// Client issues requests against the F1 API base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	tracer  oteltrace.Tracer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client rooted at baseURL. The URL is not validated here;
// a malformed base surfaces as an error from the first request.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  slog.Default(),
		tracer:  telemetry.Tracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API base, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins the base URL, a resource path and an optional query.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// FetchJSON performs one request and returns the parsed response.
// Transport failures and malformed URLs return a wrapped error; non-2xx
// statuses return *HTTPError alongside the response.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, opts *Options) (*Response, error) {
	if opts == nil {
		opts = &Options{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	ctx, span := c.tracer.Start(ctx, method+" "+rawURL,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("f1dash.http.method", method),
			attribute.String("f1dash.http.url", rawURL),
		),
	)
	defer span.End()

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, c.fail(span, method, rawURL, fmt.Errorf("fetch %s: %w", rawURL, err))
	}

	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range opts.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(span, method, rawURL, fmt.Errorf("fetch %s: %w", rawURL, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(span, method, rawURL, fmt.Errorf("read %s: %w", rawURL, err))
	}

	out := &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   string(data),
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && json.Valid(trimmed) {
		out.JSON = json.RawMessage(trimmed)
	}

	span.SetAttributes(attribute.Int("f1dash.http.status_code", resp.StatusCode))
	c.logger.Debug("api request",
		"method", method,
		"url", rawURL,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", req.Header.Get("X-Request-ID"),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, c.fail(span, method, rawURL, &HTTPError{
			Status:  resp.StatusCode,
			Message: errorMessage(out),
			Body:    out.Body,
		})
	}
	return out, nil
}

func (c *Client) fail(span oteltrace.Span, method, rawURL string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.Error("api request failed", "method", method, "url", rawURL, "error", err)
	return err
}

// errorMessage prefers the API's "message" or "detail" field over the
// status text.
func errorMessage(r *Response) string {
	if r.JSON != nil {
		var m map[string]any
		if json.Unmarshal(r.JSON, &m) == nil {
			for _, key := range []string{"message", "detail"} {
				if s := jsonutil.ToString(m[key]); s != "" {
					return s
				}
			}
		}
	}
	return http.StatusText(r.Status)
}
