// Package admin assembles the admin console module. It reuses the API's
// domain systems but mounts their moderation and management routes behind an
// admin role requirement.
package admin

import (
	"net/http"

	"github.com/mangetsu-dev/mangetsu/internal/api"
	"github.com/mangetsu-dev/mangetsu/internal/config"
	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/middleware"
	"github.com/mangetsu-dev/mangetsu/pkg/module"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
)

// NewModule creates the admin module mounted at /admin. Every route requires
// an authenticated principal with the admin role.
func NewModule(cfg *config.Config, a *api.API) *module.Module {
	domain := a.Domain

	mux := http.NewServeMux()
	routes.Register(
		mux,
		domain.Users.Handler().AdminRoutes(),
		domain.Comments.Handler().AdminRoutes(),
		domain.Posts.Handler().AdminRoutes(),
		domain.Settings.Handler().AdminRoutes(),
		domain.Ads.Handler().AdminRoutes(),
	)

	logger := a.Runtime.Logger.With("module", "admin")

	m := module.New("/admin", mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(logger))
	m.Use(middleware.Authenticate(a.Runtime.Verifier))
	m.Use(middleware.RequireRole(auth.RoleAdmin))

	return m
}
