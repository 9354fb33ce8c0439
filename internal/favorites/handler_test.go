package favorites_test

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

	"github.com/mangetsu-dev/mangetsu/internal/favorites"
	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
)

type stubSystem struct {
	favorite  favorites.Favorite
	addErr    error
	removeErr error

	gotUserID uuid.UUID
	gotAdd    favorites.AddCommand
	gotRemove uuid.UUID
}

func (s *stubSystem) Handler() *favorites.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return favorites.NewHandler(s, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func (s *stubSystem) List(ctx context.Context, userID uuid.UUID, page pagination.PageRequest, filters favorites.Filters) (*pagination.PageResult[favorites.Favorite], error) {
	s.gotUserID = userID
	result := pagination.NewPageResult([]favorites.Favorite{s.favorite}, 1, page.Page, page.PageSize)
	return &result, nil
}

func (s *stubSystem) Add(ctx context.Context, userID uuid.UUID, cmd favorites.AddCommand) (*favorites.Favorite, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.gotUserID = userID
	s.gotAdd = cmd
	return &s.favorite, nil
}

func (s *stubSystem) Remove(ctx context.Context, userID, id uuid.UUID) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.gotUserID = userID
	s.gotRemove = id
	return nil
}

func newStub() *stubSystem {
	return &stubSystem{
		favorite: favorites.Favorite{
			ID:      uuid.New(),
			UserID:  uuid.New(),
			MangaID: "dx:aaa-111",
			Source:  "dx",
			Title:   "Moon Blade",
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

func TestListRequiresAuth(t *testing.T) {
	mux := serve(t, newStub())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/favorites", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestListScopedToCaller(t *testing.T) {
	stub := newStub()
	mux := serve(t, stub)

	userID := uuid.New()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, asUser(httptest.NewRequest("GET", "/favorites", nil), userID))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.gotUserID != userID {
		t.Errorf("queried user = %v, want caller %v", stub.gotUserID, userID)
	}

	var result pagination.PageResult[favorites.Favorite]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0].MangaID != "dx:aaa-111" {
		t.Errorf("result = %+v", result.Data)
	}
}

func TestAdd(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub)

		body := strings.NewReader(`{"manga_id": "dx:aaa-111", "title": "Moon Blade"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asUser(httptest.NewRequest("POST", "/favorites", body), uuid.New()))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if stub.gotAdd.MangaID != "dx:aaa-111" {
			t.Errorf("add command = %+v", stub.gotAdd)
		}
	})

	t.Run("already saved", func(t *testing.T) {
		stub := newStub()
		stub.addErr = favorites.ErrDuplicate
		mux := serve(t, stub)

		body := strings.NewReader(`{"manga_id": "dx:aaa-111", "title": "Moon Blade"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asUser(httptest.NewRequest("POST", "/favorites", body), uuid.New()))

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		mux := serve(t, newStub())

		body := strings.NewReader(`{"manga_id": "dx:aaa-111", "title": "Moon Blade"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/favorites", body))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub)

		id := stub.favorite.ID
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asUser(httptest.NewRequest("DELETE", "/favorites/"+id.String(), nil), stub.favorite.UserID))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if stub.gotRemove != id {
			t.Errorf("removed id = %v, want %v", stub.gotRemove, id)
		}
	})

	t.Run("not found for caller", func(t *testing.T) {
		stub := newStub()
		stub.removeErr = favorites.ErrNotFound
		mux := serve(t, stub)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asUser(httptest.NewRequest("DELETE", "/favorites/"+stub.favorite.ID.String(), nil), uuid.New()))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
