package search

import (
	"log/slog"
	"net/http"
)

// SpecOption is a functional option for [NewSpec] and the endpoint
// constructors.
type SpecOption func(*specOpts)

type specOpts struct {
	required  []string
	optional  []string
	encoding  Encoding
	validate  ValidationPolicy
	headers   http.Header
	transport Transport
	logger    *slog.Logger
	respOpts  []ResponseOption
}

// WithRequired declares required parameters.
func WithRequired(names ...string) SpecOption {
	return func(opts *specOpts) {
		opts.required = append(opts.required, names...)
	}
}

// WithOptional declares optional parameters.
func WithOptional(names ...string) SpecOption {
	return func(opts *specOpts) {
		opts.optional = append(opts.optional, names...)
	}
}

// WithEncoding replaces the default [StandardEncoding].
func WithEncoding(enc Encoding) SpecOption {
	return func(opts *specOpts) {
		opts.encoding = enc
	}
}

// WithValidation replaces the default [StrictValidation].
func WithValidation(policy ValidationPolicy) SpecOption {
	return func(opts *specOpts) {
		opts.validate = policy
	}
}

// WithHeaders adds headers to every request built by a [Spec].
func WithHeaders(headers http.Header) SpecOption {
	return func(opts *specOpts) {
		if opts.headers == nil {
			opts.headers = http.Header{}
		}
		for k, v := range headers {
			for _, element := range v {
				opts.headers.Add(k, element)
			}
		}
	}
}

// WithTransport sets the transport used by Get.
func WithTransport(t Transport) SpecOption {
	return func(opts *specOpts) {
		opts.transport = t
	}
}

// WithLogger injects a custom [slog.Logger].
func WithLogger(logger *slog.Logger) SpecOption {
	return func(opts *specOpts) {
		opts.logger = logger
	}
}

// WithResponseOptions applies opts to every Response decoded by Get.
func WithResponseOptions(respOpts ...ResponseOption) SpecOption {
	return func(opts *specOpts) {
		opts.respOpts = append(opts.respOpts, respOpts...)
	}
}
