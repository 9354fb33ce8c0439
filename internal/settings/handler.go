package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mangetsu-dev/mangetsu/pkg/handlers"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
)

const keepAliveInterval = 25 * time.Second

// Handler provides HTTP endpoints for site settings. Readers poll the
// snapshot endpoint with If-None-Match or hold the event stream open.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "settings"),
	}
}

// Routes returns the public route group for settings endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/settings",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.GetSnapshot},
			{Method: "GET", Pattern: "/events", Handler: h.Stream},
		},
	}
}

// AdminRoutes returns the admin route group for settings endpoints.
func (h *Handler) AdminRoutes() routes.Group {
	return routes.Group{
		Prefix: "/settings",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "PUT", Pattern: "/{key}", Handler: h.Upsert},
			{Method: "DELETE", Pattern: "/{key}", Handler: h.Delete},
		},
	}
}

// GetSnapshot returns the settings map with its revision as the ETag.
// Requests carrying a matching If-None-Match receive 304 with no body.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sys.Snapshot(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	etag := fmt.Sprintf("%q", snapshot.Revision)
	w.Header().Set("ETag", etag)

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snapshot)
}

// Stream pushes settings snapshots over server-sent events. The current
// snapshot is sent immediately, then one event per change, with periodic
// comment lines keeping the connection alive through proxies.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError,
			fmt.Errorf("streaming unsupported"))
		return
	}

	snapshot, err := h.sys.Snapshot(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	updates, cancel := h.sys.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	h.writeEvent(w, *snapshot)
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case s := <-updates:
			h.writeEvent(w, s)
			flusher.Flush()
		}
	}
}

func (h *Handler) writeEvent(w http.ResponseWriter, s Snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		h.logger.Error("marshal settings event", "error", err)
		return
	}
	fmt.Fprintf(w, "event: settings\nid: %s\ndata: %s\n\n", s.Revision, data)
}

// List returns all settings ordered by key.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Upsert creates or replaces a setting.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var cmd UpsertCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidKey)
		return
	}

	s, err := h.sys.Upsert(r.Context(), r.PathValue("key"), cmd.Value)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

// Delete removes a setting.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("key")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
