package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mangetsu-dev/mangetsu/pkg/handlers"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
)

// Handler provides HTTP endpoints for catalog browsing and reading.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "catalog"),
	}
}

// Routes returns the route group definition for catalog endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/catalog",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/popular", Handler: h.Popular},
			{Method: "GET", Pattern: "/latest", Handler: h.Latest},
			{Method: "GET", Pattern: "/manga/{id}", Handler: h.Manga},
			{Method: "GET", Pattern: "/manga/{id}/chapters", Handler: h.Chapters},
			{Method: "GET", Pattern: "/chapters/{id}/pages", Handler: h.Pages},
		},
	}
}

// Search returns merged search results for the q query parameter.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page, lang := listParams(r)

	result, err := h.sys.Search(r.Context(), r.URL.Query().Get("q"), page, lang)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Popular returns merged popularity-ranked titles.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	page, lang := listParams(r)

	result, err := h.sys.Popular(r.Context(), page, lang)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Latest returns merged recently-updated titles.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	page, lang := listParams(r)

	result, err := h.sys.Latest(r.Context(), page, lang)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Manga returns a single normalized title by canonical ID.
func (h *Handler) Manga(w http.ResponseWriter, r *http.Request) {
	_, lang := listParams(r)

	manga, err := h.sys.Manga(r.Context(), r.PathValue("id"), lang)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, manga)
}

// Chapters returns one page of a title's chapter list.
func (h *Handler) Chapters(w http.ResponseWriter, r *http.Request) {
	page, lang := listParams(r)

	result, err := h.sys.Chapters(r.Context(), r.PathValue("id"), page, lang)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Pages returns the page image URLs for a chapter.
func (h *Handler) Pages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.sys.Pages(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pages)
}

func listParams(r *http.Request) (page int, lang string) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page, r.URL.Query().Get("lang")
}
