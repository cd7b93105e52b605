package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
)

// Transport executes requests built by a Spec. Request URLs are relative
// to the API endpoint; the transport resolves them and attaches the api
// key. The caller closes the response body.
type Transport interface {
	Send(req *http.Request) (*http.Response, error)
}

// Spec describes one API endpoint: where it lives, which arguments it
// accepts and how a query becomes a request.
type Spec struct {
	path      string
	encoding  Encoding
	validate  ValidationPolicy
	headers   http.Header
	transport Transport
	logger    *slog.Logger
	respOpts  []ResponseOption

	mu       sync.RWMutex
	declared Declared
}

// NewSpec returns a Spec for the relative path. It panics if path is
// empty: every endpoint must declare where it lives.
func NewSpec(path string, optFns ...SpecOption) *Spec {
	if path == "" {
		panic("search: spec path must not be empty")
	}

	var opts specOpts
	for _, opt := range optFns {
		opt(&opts)
	}

	s := &Spec{
		path:      path,
		encoding:  StandardEncoding(),
		validate:  StrictValidation,
		headers:   opts.headers.Clone(),
		transport: opts.transport,
		logger:    slog.Default(),
		respOpts:  opts.respOpts,
	}

	if opts.encoding != nil {
		s.encoding = opts.encoding
	}
	if opts.validate != nil {
		s.validate = opts.validate
	}
	if opts.logger != nil {
		s.logger = opts.logger
	}

	for _, name := range opts.required {
		s.declared.add(name, NewParameter(true))
	}
	for _, name := range opts.optional {
		s.declared.add(name, NewParameter(false))
	}

	return s
}

// Path returns the relative path of the endpoint.
func (s *Spec) Path() string {
	return s.path
}

// Parameters returns the declared parameter names in declaration order.
func (s *Spec) Parameters() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.declared.Names()
}

// AddParameter declares, or redeclares, the parameter name.
func (s *Spec) AddParameter(name string, p Parameter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.declared.add(name, p)
}

// Validate checks q against the validation policy of s. A rejected
// query returns an [*InvalidArgumentsError].
func (s *Spec) Validate(q *Query) error {
	s.mu.RLock()
	declared := s.declared.clone()
	s.mu.RUnlock()

	if errs := s.validate(declared, q); len(errs) > 0 {
		return &InvalidArgumentsError{Errors: errs}
	}

	return nil
}

// FormatQueryParams sanitizes every argument with its declared Parameter.
// Names without a declaration return [ErrUndeclaredParameter].
func (s *Spec) FormatQueryParams(q *Query) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, q.Len())
	for _, name := range q.Names() {
		param, ok := s.declared.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w for %q", ErrUndeclaredParameter, name)
		}

		value, _ := q.Get(name)
		out[name] = param.Sanitize(value)
	}

	return out, nil
}

// URI returns the relative request URI for q.
func (s *Spec) URI(q *Query) (*url.URL, error) {
	return s.encoding(s, q)
}

// Headers returns the extra headers sent with every request. The api key
// is attached by the transport, not here.
func (s *Spec) Headers() http.Header {
	if s.headers == nil {
		return http.Header{}
	}

	return s.headers.Clone()
}

// BuildRequest validates q and builds the request for it. The API only
// serves GET, so the request method is always GET whatever method says.
func (s *Spec) BuildRequest(ctx context.Context, method string, q *Query) (*http.Request, error) {
	if err := s.Validate(q); err != nil {
		return nil, err
	}

	if method != http.MethodGet {
		s.logger.Debug("request method overridden", "requested", method, "method", http.MethodGet, "path", s.path)
	}

	u, err := s.URI(q)
	if err != nil {
		return nil, fmt.Errorf("building uri: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	for k, v := range s.headers {
		for _, element := range v {
			req.Header.Add(k, element)
		}
	}

	return req, nil
}

// Get sends a GET for q through the transport of s and decodes the
// response.
func (s *Spec) Get(ctx context.Context, q *Query) (*Response, error) {
	if s.transport == nil {
		return nil, ErrNoTransport
	}

	req, err := s.BuildRequest(ctx, http.MethodGet, q)
	if err != nil {
		return nil, err
	}

	resp, err := s.transport.Send(req)
	if err != nil {
		return nil, fmt.Errorf("sending %s: %w", s.path, err)
	}

	return NewResponse(resp, s.respOpts...)
}
