package api

import (
	"net/http"

	"github.com/mangetsu-dev/mangetsu/pkg/openapi"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, spec []byte) {
	routes.Register(
		mux,
		domain.Catalog.Handler().Routes(),
		domain.Users.Handler().Routes(),
		domain.Favorites.Handler().Routes(),
		domain.Progress.Handler().Routes(),
		domain.Comments.Handler().Routes(),
		domain.Posts.Handler().Routes(),
		domain.Settings.Handler().Routes(),
		domain.Ads.Handler().Routes(),
	)

	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
}
