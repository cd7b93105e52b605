package search

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// ListSeparator joins list values sanitized by a Parameter.
const ListSeparator = "|"

// escapedSeparator is ListSeparator as it appears inside a joined element.
var escapedSeparator = url.QueryEscape(ListSeparator)

// Parameter is the validation and sanitization rule for one declared
// request argument.
type Parameter struct {
	required bool
}

// NewParameter returns a Parameter, optionally marked as required.
func NewParameter(required bool) Parameter {
	return Parameter{required: required}
}

// IsRequired reports whether the argument must be present.
func (p Parameter) IsRequired() bool {
	return p.required
}

// Validate reports whether value is acceptable for the parameter.
// Every value is currently accepted.
func (p Parameter) Validate(value any) bool {
	return true
}

// Sanitize renders value for a query string. Lists are joined with
// ListSeparator, escaping any separator inside an element. Scalars are
// rendered as is.
func (p Parameter) Sanitize(value any) string {
	if !isList(value) {
		return stringify(value)
	}

	elems := flatten(value)
	for i, e := range elems {
		elems[i] = strings.ReplaceAll(e, ListSeparator, escapedSeparator)
	}

	return strings.Join(elems, ListSeparator)
}

// isList reports whether v is a slice or array. Byte slices are treated
// as strings.
func isList(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// flatten walks v, descending into nested lists, and returns the string
// form of every scalar in order. A scalar yields a single element.
func flatten(v any) []string {
	if !isList(v) {
		return []string{stringify(v)}
	}

	rv := reflect.ValueOf(v)
	out := make([]string, 0, rv.Len())
	for i := range rv.Len() {
		out = append(out, flatten(rv.Index(i).Interface())...)
	}

	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
