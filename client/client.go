// Package client sends requests to the PartsLogic API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/partslogic/internal/metrics"
)

const (
	// DefaultEndpoint is the production PartsLogic API.
	DefaultEndpoint = "https://api.sunhammer.io"

	// KeyHeader carries the API key.
	KeyHeader = "sunhammer-api-key"

	// RequestIDHeader carries the id of each outgoing request.
	RequestIDHeader = "X-Request-Id"

	pingOK = "OK"
)

// Client wraps the std-lib *http.Client
// It resolves requests against the API endpoint, and can be
// customized via optional funcs.
type Client struct {
	c        *http.Client
	endpoint *url.URL
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *metrics.Recorder
}

func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		c:      &http.Client{},
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer("no-op tracer"),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	endpoint := opts.endpoint
	if endpoint == nil {
		endpoint, _ = url.Parse(DefaultEndpoint)
	}
	client.endpoint = withTrailingSlash(endpoint)

	if opts.client != nil {
		client.c = opts.client
	}

	switch {
	case opts.logger != nil:
		client.logger = opts.logger
	case opts.debug:
		client.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	if opts.registerer != nil {
		client.metrics = metrics.New(opts.registerer)
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.apiKey != "" {
		transport = apiKey{value: opts.apiKey, base: transport}
	}
	client.c.Transport = transport

	return client, nil
}

// Endpoint returns a copy of the base URL requests are resolved against.
func (c *Client) Endpoint() *url.URL {
	u := *c.endpoint
	return &u
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Send fires the request and returns the raw response regardless of its
// status. Relative request URLs are resolved against the endpoint.
// The caller must close the response body.
func (c *Client) Send(req *http.Request) (*http.Response, error) {
	ctx, span := c.tracer.Start(req.Context(), "partslogic.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req = c.resolve(ctx, req)
	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("url.path", req.URL.Path),
	)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, requestID(span))
	}

	start := time.Now()
	resp, err := c.c.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		c.metrics.Observe(req.URL.Path, 0, elapsed)

		return nil, fmt.Errorf("exec http do: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.metrics.Observe(req.URL.Path, resp.StatusCode, elapsed)

	c.logger.Debug("partslogic response",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"request_id", req.Header.Get(RequestIDHeader),
		"elapsed", elapsed,
	)

	return resp, nil
}

// Do will fire the request, and write response to the given dest object if any.
// A status other than expCode returns an [*UnexpectedStatusError].
func (c *Client) Do(req *http.Request, expCode int, opts ...DoOption) error {
	var settings doOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return err
		}
	}

	doFunc := func(resp *http.Response) error {
		if settings.responseBody != nil {
			d := json.NewDecoder(resp.Body)

			if settings.useJSONNum {
				d.UseNumber()
			}

			if err := d.Decode(settings.responseBody); err != nil {
				return fmt.Errorf("decoding body: %w", err)
			}
		}

		return nil
	}

	return c.exec(req, expCode, doFunc)
}

// SendAndDecode fires the request and decodes the JSON body.
// A status other than successCode is logged and yields a nil body
// without error, as does a malformed body.
func (c *Client) SendAndDecode(req *http.Request, successCode int) (any, error) {
	var body any

	decodeFunc := func(resp *http.Response) error {
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			c.logger.Debug("discarding malformed body", "url", req.URL.String(), "error", err)
			body = nil
		}

		return nil
	}

	err := c.exec(req, successCode, decodeFunc)
	if err != nil {
		var statusErr *UnexpectedStatusError
		if errors.As(err, &statusErr) {
			c.logger.Error("request failed", "url", req.URL.String(), "status", statusErr.StatusCode, "body", statusErr.Body)
			return nil, nil
		}

		return nil, err
	}

	return body, nil
}

// Ping reports whether the API answers its root with "OK".
func (c *Client) Ping(ctx context.Context) (bool, error) {
	req, err := c.Request(ctx, &url.URL{Path: "/"}, http.MethodGet)
	if err != nil {
		return false, err
	}

	body, err := c.SendAndDecode(req, http.StatusOK)
	if err != nil {
		return false, fmt.Errorf("ping: %w", err)
	}

	return body == pingOK, nil
}

// Request instantiates an *http.Request with the provided information.
// It's just a convenience method that wraps the public Request func.
func (c *Client) Request(ctx context.Context, reqURL *url.URL, method string, opts ...RequestOption) (*http.Request, error) {
	return Request(ctx, reqURL, method, opts...)
}

// exec runs the request and injected function on success after validating the expected status code.
func (c *Client) exec(req *http.Request, expCode int, fn execFn) error {
	resp, err := c.Send(req)
	if err != nil {
		return err
	}

	discardBody := true
	defer func() {
		if discardBody {
			if _, err = io.Copy(io.Discard, resp.Body); err != nil {
				c.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err = resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != expCode {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		statusErr := ErrUnexpectedStatusCode
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			statusErr = errors.Join(ErrUnexpectedStatusCode, ErrAuthFailure)
		}

		return &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        statusErr,
		}
	}

	if err := fn(resp); err != nil {
		discardBody = false
		return fmt.Errorf("exec fn: %w", err)
	}

	return nil
}

// resolve returns a copy of req bound to ctx, with a relative URL
// resolved against the endpoint.
func (c *Client) resolve(ctx context.Context, req *http.Request) *http.Request {
	cpy := req.Clone(ctx)
	if !cpy.URL.IsAbs() {
		cpy.URL = c.endpoint.ResolveReference(cpy.URL)
		cpy.Host = cpy.URL.Host
	}

	return cpy
}

// Request instantiates an *http.Request with the provided information.
// The URL may be relative to the [Client] endpoint.
func Request(ctx context.Context, reqURL *url.URL, method string, opts ...RequestOption) (*http.Request, error) {
	var settings requestOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return nil, err
		}
	}

	u := *reqURL
	if len(settings.query) > 0 {
		q := u.Query()
		for k, v := range settings.query {
			for _, element := range v {
				q.Add(k, element)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range settings.headers {
		for _, element := range v {
			req.Header.Add(k, element)
		}
	}

	return req, nil
}

// requestID prefers the span's trace id, falling back to a random uuid
// when tracing is off.
func requestID(span trace.Span) string {
	if sc := span.SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return uuid.NewString()
}

func withTrailingSlash(u *url.URL) *url.URL {
	cpy := *u
	if !strings.HasSuffix(cpy.Path, "/") {
		cpy.Path += "/"
	}
	cpy.RawPath = ""

	return &cpy
}
