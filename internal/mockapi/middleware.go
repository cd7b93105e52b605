package mockapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

// Logger logs the start and end of every request.
func Logger(log *slog.Logger) Middleware {
	return func(handler Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			v := getValues(r.Context())

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = fmt.Sprintf("%s?%s", path, r.URL.RawQuery)
			}

			log.Debug("request started", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr)

			err := handler(w, r)

			log.Info("request completed", "method", r.Method, "path", path, "statusCode", v.StatusCode, "since", time.Since(v.Now).String())

			return err
		}
	}
}

// Panics recovers from panics if they occur.
func Panics() Middleware {
	return func(handler Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("PANIC [%v] TRACE[%s]", rec, string(debug.Stack()))
				}
			}()

			return handler(w, r)
		}
	}
}
