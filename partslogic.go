// Package partslogic is a client for the PartsLogic product search API.
//
// [New] wires a [client.Client] transport to the [search.API] endpoint
// registry:
//
//	pl, err := partslogic.New(client.WithAPIKey(key))
//	resp, err := pl.FitmentLabels().Get(ctx, search.NewQuery().Set("groupId", 1))
package partslogic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adamwoolhether/partslogic/client"
	"github.com/adamwoolhether/partslogic/config"
	"github.com/adamwoolhether/partslogic/internal/mockapi"
	"github.com/adamwoolhether/partslogic/search"
)

// PartsLogic is the endpoint registry bound to its transport.
type PartsLogic struct {
	*search.API
	client *client.Client
}

// New instantiates a new *PartsLogic with the provided options.
func New(opts ...client.Option) (*PartsLogic, error) {
	c, err := client.Build(opts...)
	if err != nil {
		return nil, err
	}

	return &PartsLogic{
		API:    search.NewAPI(c, search.WithLogger(c.Logger())),
		client: c,
	}, nil
}

// NewFromConfig validates cfg and builds a *PartsLogic from it. Options
// are applied after the config. With UseMockResponses set, requests are
// answered in-process by canned responses.
func NewFromConfig(cfg config.Config, opts ...client.Option) (*PartsLogic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	optFns := cfg.ClientOptions()
	if cfg.UseMockResponses {
		optFns = append(optFns, client.WithTransport(mockapi.New(
			mockapi.WithAPIKey(cfg.APIKey),
			mockapi.WithLogger(slog.New(slog.DiscardHandler)),
		).Transport()))
	}

	return New(append(optFns, opts...)...)
}

// Client returns the underlying transport.
func (p *PartsLogic) Client() *client.Client {
	return p.client
}

// Ping reports whether the API is reachable and healthy.
func (p *PartsLogic) Ping(ctx context.Context) (bool, error) {
	return p.client.Ping(ctx)
}
