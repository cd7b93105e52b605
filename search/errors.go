package search

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArguments is wrapped by [InvalidArgumentsError].
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrUndeclaredParameter is returned when a query name has no declared
	// Parameter while formatting. Validate the query first.
	ErrUndeclaredParameter = errors.New("no parameter defined")
	// ErrUnknownEndpoint is wrapped by [UnknownEndpointError].
	ErrUnknownEndpoint = errors.New("unknown endpoint")
	// ErrNoTransport is returned by Get on a spec built without a Transport.
	ErrNoTransport = errors.New("no transport configured")
)

// InvalidArgumentsError carries every reason a query was rejected, in the
// order they were found.
type InvalidArgumentsError struct {
	Errors []string
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidArguments, strings.Join(e.Errors, "; "))
}

func (e *InvalidArgumentsError) Unwrap() error {
	return ErrInvalidArguments
}

// UnknownEndpointError is returned by [API.Endpoint] for names that are
// not registered.
type UnknownEndpointError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownEndpointError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%v: %q", ErrUnknownEndpoint, e.Name)
	}

	return fmt.Sprintf("%v: %q, did you mean %s?", ErrUnknownEndpoint, e.Name, strings.Join(e.Suggestions, ", "))
}

func (e *UnknownEndpointError) Unwrap() error {
	return ErrUnknownEndpoint
}
