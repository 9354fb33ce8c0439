package comments_test

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

	"github.com/mangetsu-dev/mangetsu/internal/comments"
	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
)

type stubSystem struct {
	comment   comments.Comment
	createErr error
	deleteErr error

	gotMangaID   string
	gotChapterID *string
	gotCreate    comments.CreateCommand
	gotDelete    uuid.UUID
	gotPrincipal auth.Principal
	gotHidden    bool
}

func (s *stubSystem) Handler() *comments.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return comments.NewHandler(s, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func (s *stubSystem) ListForManga(ctx context.Context, mangaID string, chapterID *string, page pagination.PageRequest) (*pagination.PageResult[comments.Comment], error) {
	s.gotMangaID = mangaID
	s.gotChapterID = chapterID
	result := pagination.NewPageResult([]comments.Comment{s.comment}, 1, page.Page, page.PageSize)
	return &result, nil
}

func (s *stubSystem) ListAll(ctx context.Context, page pagination.PageRequest, filters comments.Filters) (*pagination.PageResult[comments.Comment], error) {
	result := pagination.NewPageResult([]comments.Comment{s.comment}, 1, page.Page, page.PageSize)
	return &result, nil
}

func (s *stubSystem) Create(ctx context.Context, userID uuid.UUID, cmd comments.CreateCommand) (*comments.Comment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.gotCreate = cmd
	return &s.comment, nil
}

func (s *stubSystem) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.gotPrincipal = p
	s.gotDelete = id
	return nil
}

func (s *stubSystem) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) (*comments.Comment, error) {
	s.gotHidden = hidden
	c := s.comment
	c.Hidden = hidden
	return &c, nil
}

func newStub() *stubSystem {
	return &stubSystem{
		comment: comments.Comment{
			ID:       uuid.New(),
			UserID:   uuid.New(),
			Username: "reader",
			MangaID:  "dx:aaa-111",
			Body:     "Great chapter.",
		},
	}
}

func serve(t *testing.T, group routes.Group) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	routes.Register(mux, group)
	return mux
}

func asReader(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{
		UserID: userID,
		Role:   auth.RoleReader,
	}))
}

func TestList(t *testing.T) {
	t.Run("requires manga_id", func(t *testing.T) {
		mux := serve(t, newStub().Handler().Routes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/comments", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("manga scope", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().Routes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/comments?manga_id=dx:aaa-111", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if stub.gotMangaID != "dx:aaa-111" {
			t.Errorf("manga id = %q", stub.gotMangaID)
		}
		if stub.gotChapterID != nil {
			t.Errorf("chapter id = %v, want nil", *stub.gotChapterID)
		}
	})

	t.Run("chapter scope", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().Routes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/comments?manga_id=dx:aaa-111&chapter_id=dx:ch-1", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if stub.gotChapterID == nil || *stub.gotChapterID != "dx:ch-1" {
			t.Errorf("chapter id = %v, want dx:ch-1", stub.gotChapterID)
		}
	})
}

func TestCreate(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().Routes())

		body := strings.NewReader(`{"manga_id": "dx:aaa-111", "body": "Great chapter."}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asReader(httptest.NewRequest("POST", "/comments", body), uuid.New()))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if stub.gotCreate.MangaID != "dx:aaa-111" {
			t.Errorf("create command = %+v", stub.gotCreate)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		mux := serve(t, newStub().Handler().Routes())

		body := strings.NewReader(`{"manga_id": "dx:aaa-111", "body": "x"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/comments", body))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("rejected body", func(t *testing.T) {
		stub := newStub()
		stub.createErr = comments.ErrInvalidInput
		mux := serve(t, stub.Handler().Routes())

		body := strings.NewReader(`{"manga_id": "dx:aaa-111", "body": ""}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asReader(httptest.NewRequest("POST", "/comments", body), uuid.New()))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().Routes())

		id := stub.comment.ID
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asReader(httptest.NewRequest("DELETE", "/comments/"+id.String(), nil), stub.comment.UserID))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if stub.gotDelete != id {
			t.Errorf("deleted id = %v, want %v", stub.gotDelete, id)
		}
		if stub.gotPrincipal.UserID != stub.comment.UserID {
			t.Errorf("principal = %+v", stub.gotPrincipal)
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		stub := newStub()
		stub.deleteErr = comments.ErrForbidden
		mux := serve(t, stub.Handler().Routes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asReader(httptest.NewRequest("DELETE", "/comments/"+stub.comment.ID.String(), nil), uuid.New()))

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().Routes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/comments/"+stub.comment.ID.String(), nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestSetHidden(t *testing.T) {
	stub := newStub()
	mux := serve(t, stub.Handler().AdminRoutes())

	body := strings.NewReader(`{"hidden": true}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("PUT", "/comments/"+stub.comment.ID.String()+"/hidden", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !stub.gotHidden {
		t.Error("hidden flag not forwarded")
	}

	var c comments.Comment
	if err := json.NewDecoder(rec.Body).Decode(&c); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !c.Hidden {
		t.Error("response comment not hidden")
	}
}
