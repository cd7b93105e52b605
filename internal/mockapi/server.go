// Package mockapi is a fake PartsLogic API serving canned YAML fixtures.
// Requests are recorded so tests can assert on what a client sent.
package mockapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"time"
)

// KeyHeader carries the API key.
const KeyHeader = "sunhammer-api-key"

// Request is a recorded request.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	TraceID  string
	Status   int
	At       time.Time
}

// Server is a fake PartsLogic API.
type Server struct {
	mux      *Mux
	fixtures Fixtures
	apiKey   string
	log      *slog.Logger

	mu       sync.Mutex
	requests []Request
}

// New builds a Server with every API route registered.
func New(optFns ...Option) *Server {
	var opts options
	for _, opt := range optFns {
		opt(&opts)
	}

	s := &Server{
		fixtures: DefaultFixtures(),
		apiKey:   opts.apiKey,
		log:      slog.Default(),
	}
	if opts.logger != nil {
		s.log = opts.logger
	}
	if opts.fixtures != nil {
		s.fixtures = NewFixtures(opts.fixtures)
	}

	s.mux = newMux(s.log, opts.tracer)
	s.mux.Use(Logger(s.log), s.record, s.handleErrors, Panics(), s.requireKey)

	s.mux.Get("/{$}", s.fixture("pingOk"))
	s.mux.Get("/healthcheck", s.fixture("healthCheckOk"))
	s.mux.Get("/brands", s.fixture("brandsOk"))
	s.mux.Get("/categories", s.fixture("categoriesOk"))
	s.mux.Get("/products", s.products)
	s.mux.Get("/fitment/check", s.fixture("fitmentCheckOk"), requireQuery("groupId"))
	s.mux.Get("/fitment/labels", s.fixture("labelsOk"), requireQuery("groupId"))
	s.mux.Get("/fitment/labels/{name}", s.labelValues, requireQuery("groupId"))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// Reset forgets recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = nil
}

// Transport returns a round tripper answering every request in-process.
func (s *Server) Transport() http.RoundTripper {
	return transport{handler: s}
}

type transport struct {
	handler http.Handler
}

func (t transport) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := r.Context().Err(); err != nil {
		return nil, err
	}

	rec := httptest.NewRecorder()
	t.handler.ServeHTTP(rec, r)

	resp := rec.Result()
	resp.Request = r

	return resp, nil
}

func (s *Server) fixture(name string) Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		f, err := s.fixtures.Load(name)
		if err != nil {
			return err
		}

		return respondFixture(w, r, f)
	}
}

// products answers with the filtered fixture when facets beyond the
// paging and text parameters are present.
func (s *Server) products(w http.ResponseWriter, r *http.Request) error {
	if _, err := QueryString(r, "page"); err != nil {
		return NewError(http.StatusBadRequest, err)
	}

	name := "productsOk"
	for key := range r.URL.Query() {
		switch key {
		case "page", "limit", "q":
		default:
			name = "productsFilteredOk"
		}
	}

	return s.fixture(name)(w, r)
}

// labelValues serves labels<Name>Ok, or an empty list for labels
// without a fixture.
func (s *Server) labelValues(w http.ResponseWriter, r *http.Request) error {
	label, err := Param(r, "name")
	if err != nil {
		return NewError(http.StatusBadRequest, err)
	}

	f, err := s.fixtures.Load("labels" + strings.ToUpper(label[:1]) + strings.ToLower(label[1:]) + "Ok")
	if errors.Is(err, ErrFixtureNotFound) {
		return RespondJSON(w, r, http.StatusOK, []any{})
	}
	if err != nil {
		return err
	}

	return respondFixture(w, r, f)
}

// requireKey rejects requests without a valid API key.
func (s *Server) requireKey(next Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		key := r.Header.Get(KeyHeader)
		if key == "" || (s.apiKey != "" && key != s.apiKey) {
			return NewError(http.StatusUnauthorized, errors.New("invalid api key"))
		}

		return next(w, r)
	}
}

// handleErrors turns handler errors into JSON error responses.
func (s *Server) handleErrors(next Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		err := next(w, r)
		if err == nil {
			return nil
		}

		webErr, ok := GetError(err)
		if !ok {
			s.log.Error("mockapi handler failed", "path", r.URL.Path, "error", err)
			webErr = NewError(http.StatusInternalServerError, errors.New(http.StatusText(http.StatusInternalServerError)))
		}

		if err := RespondJSON(w, r, webErr.Code, errorBody{Message: webErr.Error()}); err != nil {
			return fmt.Errorf("responding with error: %w", err)
		}

		return nil
	}
}

// record stores each request after it is handled.
func (s *Server) record(next Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		err := next(w, r)

		v := getValues(r.Context())
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			TraceID:  v.TraceID,
			Status:   v.StatusCode,
			At:       v.Now,
		})
		s.mu.Unlock()

		return err
	}
}

func requireQuery(key string) Middleware {
	return func(next Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			if _, err := QueryString(r, key); err != nil {
				return NewError(http.StatusBadRequest, err)
			}

			return next(w, r)
		}
	}
}
