package comments

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/handlers"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
)

// Handler provides HTTP endpoints for comment operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "comments"),
		pagination: pagination,
	}
}

// Routes returns the public route group for comment endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/comments",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// AdminRoutes returns the moderation route group for comment endpoints.
func (h *Handler) AdminRoutes() routes.Group {
	return routes.Group{
		Prefix: "/comments",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.ListAll},
			{Method: "PUT", Pattern: "/{id}/hidden", Handler: h.SetHidden},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns visible comments for a manga, optionally scoped to a chapter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mangaID := r.URL.Query().Get("manga_id")
	if mangaID == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	var chapterID *string
	if c := r.URL.Query().Get("chapter_id"); c != "" {
		chapterID = &c
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.ListForManga(r.Context(), mangaID, chapterID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListAll returns comments across all manga, hidden included.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.ListAll(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create posts a comment as the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthorized)
		return
	}

	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	c, err := h.sys.Create(r.Context(), p.UserID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, c)
}

// Delete removes a comment owned by the caller, or any comment for admins.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	if err := h.sys.Delete(r.Context(), p, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type hiddenCommand struct {
	Hidden bool `json:"hidden"`
}

// SetHidden marks a comment hidden or visible.
func (h *Handler) SetHidden(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	var cmd hiddenCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	c, err := h.sys.SetHidden(r.Context(), id, cmd.Hidden)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}
