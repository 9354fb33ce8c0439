package progress_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/internal/progress"
	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
)

type stubSystem struct {
	progress  progress.Progress
	findErr   error
	upsertErr error

	gotUserID  uuid.UUID
	gotMangaID string
	gotUpsert  progress.UpsertCommand
}

func (s *stubSystem) Handler() *progress.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return progress.NewHandler(s, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func (s *stubSystem) List(ctx context.Context, userID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[progress.Progress], error) {
	s.gotUserID = userID
	result := pagination.NewPageResult([]progress.Progress{s.progress}, 1, page.Page, page.PageSize)
	return &result, nil
}

func (s *stubSystem) Find(ctx context.Context, userID uuid.UUID, mangaID string) (*progress.Progress, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.gotUserID = userID
	s.gotMangaID = mangaID
	return &s.progress, nil
}

func (s *stubSystem) Upsert(ctx context.Context, userID uuid.UUID, cmd progress.UpsertCommand) (*progress.Progress, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	s.gotUserID = userID
	s.gotUpsert = cmd
	return &s.progress, nil
}

func newStub() *stubSystem {
	return &stubSystem{
		progress: progress.Progress{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			MangaID:   "dx:aaa-111",
			Source:    "dx",
			ChapterID: "dx:ch-1",
			Page:      12,
		},
	}
}

func serve(t *testing.T, stub *stubSystem) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	routes.Register(mux, stub.Handler().Routes())
	return mux
}

func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{
		UserID: userID,
		Role:   auth.RoleReader,
	}))
}

func TestEndpointsRequireAuth(t *testing.T) {
	mux := serve(t, newStub())

	requests := []*http.Request{
		httptest.NewRequest("GET", "/progress", nil),
		httptest.NewRequest("GET", "/progress/dx:aaa-111", nil),
		httptest.NewRequest("PUT", "/progress", strings.NewReader(`{}`)),
	}

	for _, req := range requests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", req.Method, req.URL.Path, rec.Code)
		}
	}
}

func TestFind(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub)

		userID := uuid.New()
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asUser(httptest.NewRequest("GET", "/progress/dx:aaa-111", nil), userID))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if stub.gotMangaID != "dx:aaa-111" {
			t.Errorf("manga id = %q", stub.gotMangaID)
		}
		if stub.gotUserID != userID {
			t.Errorf("queried user = %v, want caller %v", stub.gotUserID, userID)
		}
	})

	t.Run("never read", func(t *testing.T) {
		stub := newStub()
		stub.findErr = progress.ErrNotFound
		mux := serve(t, stub)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asUser(httptest.NewRequest("GET", "/progress/dx:zzz-999", nil), uuid.New()))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestUpsert(t *testing.T) {
	t.Run("records position", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub)

		body := strings.NewReader(`{"manga_id": "dx:aaa-111", "chapter_id": "dx:ch-1", "page": 12, "language": "en"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asUser(httptest.NewRequest("PUT", "/progress", body), uuid.New()))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if stub.gotUpsert.ChapterID != "dx:ch-1" || stub.gotUpsert.Page != 12 {
			t.Errorf("upsert command = %+v", stub.gotUpsert)
		}

		var p progress.Progress
		if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if p.MangaID != "dx:aaa-111" {
			t.Errorf("progress = %+v", p)
		}
	})

	t.Run("rejected position", func(t *testing.T) {
		stub := newStub()
		stub.upsertErr = progress.ErrInvalidInput
		mux := serve(t, stub)

		body := strings.NewReader(`{"manga_id": "dx:aaa-111", "page": -1}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asUser(httptest.NewRequest("PUT", "/progress", body), uuid.New()))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
