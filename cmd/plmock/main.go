// Package main serves the fake PartsLogic API for local development.
// Point plsearch at it with --endpoint http://localhost:8089.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/adamwoolhether/partslogic/internal/mockapi"
	"github.com/adamwoolhether/partslogic/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type settings struct {
	addr     string
	apiKey   string
	fixtures string
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("plmock", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var s settings
	fs.StringVar(&s.addr, "addr", ":8089", "address to listen on")
	fs.StringVar(&s.apiKey, "api-key", "", "only accept this API key (any non-empty key when unset)")
	fs.StringVar(&s.fixtures, "fixtures", "", "directory of YAML fixtures overriding the built-in ones")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	srv := server.New(newHandler(s, logger),
		server.WithHost(s.addr),
		server.WithLogger(logger),
	)

	logger.Info("starting mock PartsLogic API", "addr", s.addr, "fixtures", s.fixtures)

	return srv.Run(ctx)
}

func newHandler(s settings, logger *slog.Logger) http.Handler {
	opts := []mockapi.Option{
		mockapi.WithLogger(logger),
		mockapi.WithAPIKey(s.apiKey),
	}
	if s.fixtures != "" {
		opts = append(opts, mockapi.WithFixtures(os.DirFS(s.fixtures)))
	}

	return mockapi.New(opts...)
}
