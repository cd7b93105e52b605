package mockapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Mux routes requests to handlers that return errors.
type Mux struct {
	mux    *http.ServeMux
	mw     []Middleware
	log    *slog.Logger
	tracer trace.Tracer
}

// Handler is a http.Handler that returns an error.
type Handler func(w http.ResponseWriter, r *http.Request) error

// Middleware defines a signature to chain Handler together.
type Middleware func(handler Handler) Handler

func newMux(log *slog.Logger, tracer trace.Tracer) *Mux {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("no-op tracer")
	}

	return &Mux{
		mux:    http.NewServeMux(),
		log:    log,
		tracer: tracer,
	}
}

// Use appends route middleware, applied to routes registered afterwards.
func (m *Mux) Use(mw ...Middleware) {
	m.mw = append(m.mw, mw...)
}

// Get registers fn for GET requests on path, wrapped in mw and the
// middleware added with Use.
func (m *Mux) Get(path string, fn Handler, mw ...Middleware) {
	m.handle(http.MethodGet, path, fn, mw...)
}

// ServeHTTP implements http.Handler.
func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mux.ServeHTTP(w, r)
}

func (m *Mux) handle(method, path string, handler Handler, mw ...Middleware) {
	handler = wrap(mw, handler)
	handler = wrap(m.mw, handler)

	h := func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.startSpan(w, r)
		defer span.End()

		v := values{
			TraceID: span.SpanContext().TraceID().String(),
			Now:     time.Now().UTC(),
		}
		r = r.WithContext(setValues(ctx, &v))

		if err := handler(w, r); err != nil {
			m.log.Error("mockapi handle", "path", r.URL.Path, "error", err)
		}
	}

	pattern := fmt.Sprintf("%s %s", method, path)

	m.mux.HandleFunc(pattern, h)
}

// wrap middleware around the handler and execute in order given.
func wrap(mw []Middleware, handler Handler) Handler {
	for _, mwFn := range slices.Backward(mw) {
		if mwFn != nil {
			handler = mwFn(handler)
		}
	}

	return handler
}

// startSpan adds a span to the request and writes the propagation
// headers into the response.
func (m *Mux) startSpan(w http.ResponseWriter, r *http.Request) (context.Context, trace.Span) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	ctx, span := m.tracer.Start(ctx, "mockapi.handler", trace.WithSpanKind(trace.SpanKindServer))
	span.SetAttributes(attribute.String("path", r.URL.RequestURI()))

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(w.Header()))

	return ctx, span
}

type ctxKey int

const valuesKey ctxKey = 1

// values are set on every routed request.
type values struct {
	TraceID    string
	Now        time.Time
	StatusCode int
}

func setValues(ctx context.Context, v *values) context.Context {
	return context.WithValue(ctx, valuesKey, v)
}

func getValues(ctx context.Context) *values {
	v, ok := ctx.Value(valuesKey).(*values)
	if !ok {
		return &values{}
	}

	return v
}

func setStatusCode(ctx context.Context, statusCode int) {
	if v, ok := ctx.Value(valuesKey).(*values); ok {
		v.StatusCode = statusCode
	}
}
