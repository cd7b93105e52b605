package search

import (
	"fmt"
	"net/url"
	"strings"
)

// Encoding shapes the relative URI of a request built by s.
type Encoding func(s *Spec, q *Query) (*url.URL, error)

// StandardEncoding attaches every argument, sanitized by its declared
// Parameter, as a standard escaped key=value pair. Keys are sorted.
func StandardEncoding() Encoding {
	return func(s *Spec, q *Query) (*url.URL, error) {
		u, err := url.Parse(s.path)
		if err != nil {
			return nil, fmt.Errorf("parsing path[%s]: %w", s.path, err)
		}

		params, err := s.FormatQueryParams(q)
		if err != nil {
			return nil, err
		}

		if len(params) > 0 {
			values := make(url.Values, len(params))
			for k, v := range params {
				values.Set(k, v)
			}
			u.RawQuery = values.Encode()
		}

		return u, nil
	}
}

// FlattenEncoding appends segment to the path, when non-empty, and builds
// the query with [FlattenQuery]. Declared parameters are not consulted.
// The segment is escaped as a single path segment, so a "/" inside it
// does not add a level.
func FlattenEncoding(segment string) Encoding {
	return func(s *Spec, q *Query) (*url.URL, error) {
		u := &url.URL{
			Path:     s.path,
			RawQuery: FlattenQuery(q),
		}

		if segment != "" {
			base := strings.TrimSuffix(u.EscapedPath(), "/")
			u.Path = strings.TrimSuffix(s.path, "/") + "/" + segment
			u.RawPath = base + "/" + url.PathEscape(segment)
		}

		return u, nil
	}
}

// FlattenQuery emits one name=value pair per flattened list element, in
// query order. Scalars count as one-element lists. Names and values are
// escaped independently.
//
//	{test: [1, 2]} -> "test=1&test=2"
func FlattenQuery(q *Query) string {
	var pairs []string
	for _, name := range q.Names() {
		value, _ := q.Get(name)
		for _, v := range flatten(value) {
			pairs = append(pairs, url.QueryEscape(name)+"="+url.QueryEscape(v))
		}
	}

	return strings.Join(pairs, "&")
}
