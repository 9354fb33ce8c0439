package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mangetsu-dev/mangetsu/internal/admin"
	"github.com/mangetsu-dev/mangetsu/internal/api"
	"github.com/mangetsu-dev/mangetsu/internal/config"
	"github.com/mangetsu-dev/mangetsu/internal/infrastructure"
	"github.com/mangetsu-dev/mangetsu/pkg/middleware"
	"github.com/mangetsu-dev/mangetsu/pkg/module"
	"github.com/mangetsu-dev/mangetsu/web/app"
)

type Modules struct {
	API   *module.Module
	Admin *module.Module
	App   *module.Module
}

func NewModules(
	ctx context.Context,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) (*Modules, error) {
	apiAssembly, err := api.New(ctx, cfg, infra)
	if err != nil {
		return nil, err
	}

	adminModule := admin.NewModule(cfg, apiAssembly)

	appModule, err := app.NewModule("/app")
	if err != nil {
		return nil, err
	}
	appModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:   apiAssembly.Module,
		Admin: adminModule,
		App:   appModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Admin)
	router.Mount(m.App)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
