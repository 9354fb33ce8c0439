package settings_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mangetsu-dev/mangetsu/internal/settings"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
)

type stubSystem struct {
	snapshot    settings.Snapshot
	settings    []settings.Setting
	broadcaster *settings.Broadcaster

	upsertErr error
	deleted   []string
}

func newStub() *stubSystem {
	return &stubSystem{
		snapshot: settings.Snapshot{
			Revision: "cafe0123cafe0123",
			Values:   map[string]string{"site.title": "Mangetsu"},
		},
		broadcaster: settings.NewBroadcaster(),
	}
}

func (s *stubSystem) Handler() *settings.Handler {
	return settings.NewHandler(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *stubSystem) List(ctx context.Context) ([]settings.Setting, error) {
	return s.settings, nil
}

func (s *stubSystem) Snapshot(ctx context.Context) (*settings.Snapshot, error) {
	return &s.snapshot, nil
}

func (s *stubSystem) Find(ctx context.Context, key string) (*settings.Setting, error) {
	return nil, settings.ErrNotFound
}

func (s *stubSystem) Upsert(ctx context.Context, key, value string) (*settings.Setting, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	return &settings.Setting{Key: key, Value: value}, nil
}

func (s *stubSystem) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubSystem) Subscribe() (<-chan settings.Snapshot, func()) {
	return s.broadcaster.Subscribe()
}

func serve(t *testing.T, group routes.Group) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	routes.Register(mux, group)
	return mux
}

func TestGetSnapshot(t *testing.T) {
	stub := newStub()
	mux := serve(t, stub.Handler().Routes())

	t.Run("fresh request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/settings", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := rec.Header().Get("ETag"); got != `"cafe0123cafe0123"` {
			t.Errorf("ETag = %q", got)
		}

		var snap settings.Snapshot
		if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if snap.Values["site.title"] != "Mangetsu" {
			t.Errorf("values = %v", snap.Values)
		}
	})

	t.Run("conditional request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/settings", nil)
		req.Header.Set("If-None-Match", `"cafe0123cafe0123"`)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotModified {
			t.Fatalf("status = %d, want 304", rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("304 response carried a body: %q", rec.Body.String())
		}
	})

	t.Run("stale etag", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/settings", nil)
		req.Header.Set("If-None-Match", `"0000000000000000"`)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 on mismatch", rec.Code)
		}
	})
}

func TestStreamInitialEvent(t *testing.T) {
	stub := newStub()
	srv := httptest.NewServer(serve(t, stub.Handler().Routes()))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/settings/events", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stream request: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q", got)
	}

	// The initial snapshot event arrives before any change is published.
	buf := make([]byte, 4096)
	n, err := resp.Body.Read(buf)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	event := string(buf[:n])

	if !strings.HasPrefix(event, "event: settings\n") {
		t.Errorf("event = %q, want settings event type", event)
	}
	if !strings.Contains(event, "id: cafe0123cafe0123\n") {
		t.Errorf("event = %q, want revision id line", event)
	}
	if !strings.Contains(event, `"site.title":"Mangetsu"`) {
		t.Errorf("event = %q, want snapshot payload", event)
	}
}

func TestAdminUpsert(t *testing.T) {
	stub := newStub()
	mux := serve(t, stub.Handler().AdminRoutes())

	t.Run("valid", func(t *testing.T) {
		body := strings.NewReader(`{"value": "dark"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("PUT", "/settings/theme", body))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var s settings.Setting
		if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if s.Key != "theme" || s.Value != "dark" {
			t.Errorf("setting = %+v", s)
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		stub.upsertErr = settings.ErrInvalidKey

		body := strings.NewReader(`{"value": "x"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("PUT", "/settings/BadKey", body))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		body := strings.NewReader(`{not json`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("PUT", "/settings/theme", body))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestAdminDelete(t *testing.T) {
	stub := newStub()
	mux := serve(t, stub.Handler().AdminRoutes())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/settings/theme", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(stub.deleted) != 1 || stub.deleted[0] != "theme" {
		t.Errorf("deleted = %v, want [theme]", stub.deleted)
	}
}
