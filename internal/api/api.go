// Package api assembles the reader-facing API module: domain systems, route
// registration, and the shared authentication middleware.
package api

import (
	"context"
	"net/http"

	"github.com/mangetsu-dev/mangetsu/internal/config"
	"github.com/mangetsu-dev/mangetsu/internal/infrastructure"
	"github.com/mangetsu-dev/mangetsu/pkg/middleware"
	"github.com/mangetsu-dev/mangetsu/pkg/module"
)

// API bundles the mounted module with the runtime and domain systems so other
// modules (the admin console) can share them.
type API struct {
	Module  *module.Module
	Runtime *Runtime
	Domain  *Domain
}

// New creates the API module with all domain handlers and middleware.
// Requests carrying a bearer token get a principal attached; anonymous
// requests pass through and individual handlers decide what requires one.
func New(
	ctx context.Context,
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
) (*API, error) {
	runtime, err := NewRuntime(ctx, cfg, infra)
	if err != nil {
		return nil, err
	}

	domain := NewDomain(cfg, runtime)

	spec, err := buildSpec(cfg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, spec)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Authenticate(runtime.Verifier))

	return &API{
		Module:  m,
		Runtime: runtime,
		Domain:  domain,
	}, nil
}
