package mockapi

import (
	"io/fs"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a [Server].
type Option func(*options)

type options struct {
	apiKey   string
	logger   *slog.Logger
	tracer   trace.Tracer
	fixtures fs.FS
}

// WithAPIKey only accepts requests carrying key. Without it any
// non-empty key is accepted.
func WithAPIKey(key string) Option {
	return func(opts *options) {
		opts.apiKey = key
	}
}

// WithLogger injects the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithTracer injects the given tracer into the Mux.
func WithTracer(tracer trace.Tracer) Option {
	return func(opts *options) {
		opts.tracer = tracer
	}
}

// WithFixtures serves fixtures from fsys instead of the built-in set.
func WithFixtures(fsys fs.FS) Option {
	return func(opts *options) {
		opts.fixtures = fsys
	}
}
