// Package app serves the Mangetsu reader web application: pre-parsed page
// templates with embedded static assets.
package app

import (
	"embed"
	"net/http"

	"github.com/mangetsu-dev/mangetsu/pkg/module"
	"github.com/mangetsu-dev/mangetsu/pkg/web"
)

//go:embed templates/layouts/*.html
var layoutFS embed.FS

//go:embed templates/views/*.html
var viewFS embed.FS

//go:embed dist
var distFS embed.FS

var views = []web.ViewDef{
	{Route: "GET /{$}", Template: "home.html", Title: "Library", Bundle: "app.js"},
	{Route: "GET /search", Template: "search.html", Title: "Search", Bundle: "app.js"},
	{Route: "GET /manga/{id}", Template: "manga.html", Title: "Manga", Bundle: "app.js"},
	{Route: "GET /read/{id}", Template: "reader.html", Title: "Reader", Bundle: "app.js"},
	{Route: "GET /blog", Template: "blog.html", Title: "News", Bundle: "app.js"},
	{Route: "GET /blog/{slug}", Template: "post.html", Title: "News", Bundle: "app.js"},
	{Route: "GET /account", Template: "account.html", Title: "Account", Bundle: "app.js"},
}

var notFound = web.ViewDef{Template: "notfound.html", Title: "Not Found", Bundle: "app.js"}

// NewModule creates the web application module mounted at basePath.
func NewModule(basePath string) (*module.Module, error) {
	router, err := buildRouter(basePath)
	if err != nil {
		return nil, err
	}
	return module.New(basePath, router), nil
}

func buildRouter(basePath string) (http.Handler, error) {
	ts, err := web.NewTemplateSet(
		layoutFS, viewFS,
		"templates/layouts/*.html", "templates/views",
		basePath,
		append(views, notFound),
	)
	if err != nil {
		return nil, err
	}

	router := web.NewRouter()

	for _, v := range views {
		router.HandleFunc(v.Route, ts.PageHandler("base", v))
	}

	router.HandleFunc("GET /dist/", web.DistServer(distFS, "dist", "/dist/"))
	router.SetFallback(ts.ErrorHandler("base", notFound, http.StatusNotFound))

	return router, nil
}
