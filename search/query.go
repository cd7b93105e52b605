package search

import "slices"

// Query is an ordered set of named request arguments. Setting a name that
// is already present replaces its value and keeps its original position.
// A nil *Query is an empty query.
type Query struct {
	names  []string
	values map[string]any
}

// NewQuery returns an empty Query.
func NewQuery() *Query {
	return &Query{values: make(map[string]any)}
}

// Set assigns value to name and returns the query for chaining.
func (q *Query) Set(name string, value any) *Query {
	if q.values == nil {
		q.values = make(map[string]any)
	}

	if _, ok := q.values[name]; !ok {
		q.names = append(q.names, name)
	}
	q.values[name] = value

	return q
}

// Get returns the value stored for name.
func (q *Query) Get(name string) (any, bool) {
	if q == nil {
		return nil, false
	}

	v, ok := q.values[name]
	return v, ok
}

// Has reports whether name is present.
func (q *Query) Has(name string) bool {
	_, ok := q.Get(name)
	return ok
}

// Names returns the argument names in the order they were first set.
func (q *Query) Names() []string {
	if q == nil {
		return nil
	}

	return slices.Clone(q.names)
}

// Len returns the number of arguments.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}

	return len(q.names)
}
