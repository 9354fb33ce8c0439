package posts_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/internal/posts"
	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
)

type stubSystem struct {
	published posts.Post
	draft     posts.Post
	createErr error
	updated   *posts.Post

	gotSlug       string
	gotAuthor     uuid.UUID
	gotCreate     posts.CreateCommand
	gotUpdate     posts.UpdateCommand
	gotUpdateID   uuid.UUID
	gotDelete     uuid.UUID
	listedAll     bool
	listedFilters posts.Filters
	listedPublish bool
}

func (s *stubSystem) Handler() *posts.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return posts.NewHandler(s, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func (s *stubSystem) ListPublished(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[posts.Post], error) {
	s.listedPublish = true
	result := pagination.NewPageResult([]posts.Post{s.published}, 1, page.Page, page.PageSize)
	return &result, nil
}

func (s *stubSystem) FindBySlug(ctx context.Context, slug string) (*posts.Post, error) {
	s.gotSlug = slug
	if slug != s.published.Slug {
		return nil, posts.ErrNotFound
	}
	return &s.published, nil
}

func (s *stubSystem) ListAll(ctx context.Context, page pagination.PageRequest, filters posts.Filters) (*pagination.PageResult[posts.Post], error) {
	s.listedAll = true
	s.listedFilters = filters
	result := pagination.NewPageResult([]posts.Post{s.published, s.draft}, 2, page.Page, page.PageSize)
	return &result, nil
}

func (s *stubSystem) Find(ctx context.Context, id uuid.UUID) (*posts.Post, error) {
	if id == s.draft.ID {
		return &s.draft, nil
	}
	return nil, posts.ErrNotFound
}

func (s *stubSystem) Create(ctx context.Context, authorID uuid.UUID, cmd posts.CreateCommand) (*posts.Post, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.gotAuthor = authorID
	s.gotCreate = cmd
	return &s.published, nil
}

func (s *stubSystem) Update(ctx context.Context, id uuid.UUID, cmd posts.UpdateCommand) (*posts.Post, error) {
	s.gotUpdateID = id
	s.gotUpdate = cmd
	if s.updated != nil {
		return s.updated, nil
	}
	return &s.published, nil
}

func (s *stubSystem) Delete(ctx context.Context, id uuid.UUID) error {
	s.gotDelete = id
	return nil
}

func newStub() *stubSystem {
	publishedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return &stubSystem{
		published: posts.Post{
			ID:          uuid.New(),
			AuthorID:    uuid.New(),
			AuthorName:  "editor",
			Slug:        "welcome-to-mangetsu",
			Title:       "Welcome to Mangetsu",
			Body:        "First post.",
			Published:   true,
			PublishedAt: &publishedAt,
		},
		draft: posts.Post{
			ID:         uuid.New(),
			AuthorID:   uuid.New(),
			AuthorName: "editor",
			Slug:       "upcoming-features",
			Title:      "Upcoming Features",
			Body:       "Draft notes.",
		},
	}
}

func serve(t *testing.T, group routes.Group) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	routes.Register(mux, group)
	return mux
}

func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{
		UserID: uuid.New(),
		Role:   auth.RoleAdmin,
	}))
}

func TestListPublished(t *testing.T) {
	stub := newStub()
	mux := serve(t, stub.Handler().Routes())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/posts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !stub.listedPublish || stub.listedAll {
		t.Error("public listing must query published posts only")
	}

	var result pagination.PageResult[posts.Post]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0].Slug != "welcome-to-mangetsu" {
		t.Errorf("data = %+v", result.Data)
	}
}

func TestFindBySlug(t *testing.T) {
	t.Run("published", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().Routes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/posts/welcome-to-mangetsu", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var p posts.Post
		if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if p.Slug != "welcome-to-mangetsu" || p.PublishedAt == nil {
			t.Errorf("post = %+v", p)
		}
	})

	t.Run("unpublished slug", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().Routes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/posts/upcoming-features", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		if stub.gotSlug != "upcoming-features" {
			t.Errorf("slug = %q", stub.gotSlug)
		}
	})
}

func TestListAll(t *testing.T) {
	stub := newStub()
	mux := serve(t, stub.Handler().AdminRoutes())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, asAdmin(httptest.NewRequest("GET", "/posts?published=false", nil)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !stub.listedAll {
		t.Error("admin listing must include drafts")
	}
	if stub.listedFilters.Published == nil || *stub.listedFilters.Published {
		t.Errorf("filters = %+v, want published=false", stub.listedFilters)
	}
}

func TestCreate(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().AdminRoutes())

		body := strings.NewReader(`{"title": "Welcome to Mangetsu", "body": "First post.", "published": true}`)
		req := asAdmin(httptest.NewRequest("POST", "/posts", body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if stub.gotCreate.Title != "Welcome to Mangetsu" || !stub.gotCreate.Published {
			t.Errorf("create command = %+v", stub.gotCreate)
		}
		if stub.gotAuthor == uuid.Nil {
			t.Error("author not taken from the caller")
		}
	})

	t.Run("duplicate slug", func(t *testing.T) {
		stub := newStub()
		stub.createErr = posts.ErrDuplicate
		mux := serve(t, stub.Handler().AdminRoutes())

		body := strings.NewReader(`{"title": "Welcome to Mangetsu", "body": "Again."}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asAdmin(httptest.NewRequest("POST", "/posts", body)))

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		mux := serve(t, newStub().Handler().AdminRoutes())

		body := strings.NewReader(`{"title": "x", "body": "y"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/posts", body))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		mux := serve(t, newStub().Handler().AdminRoutes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asAdmin(httptest.NewRequest("POST", "/posts", strings.NewReader("{"))))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("publishes a draft", func(t *testing.T) {
		stub := newStub()
		publishedAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
		published := stub.draft
		published.Published = true
		published.PublishedAt = &publishedAt
		stub.updated = &published
		mux := serve(t, stub.Handler().AdminRoutes())

		body := strings.NewReader(`{"published": true}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asAdmin(httptest.NewRequest("PUT", "/posts/"+stub.draft.ID.String(), body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if stub.gotUpdateID != stub.draft.ID {
			t.Errorf("update id = %v, want %v", stub.gotUpdateID, stub.draft.ID)
		}
		if stub.gotUpdate.Published == nil || !*stub.gotUpdate.Published {
			t.Errorf("update command = %+v", stub.gotUpdate)
		}

		var p posts.Post
		if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if !p.Published || p.PublishedAt == nil {
			t.Errorf("post = %+v, want a publish stamp", p)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		mux := serve(t, newStub().Handler().AdminRoutes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asAdmin(httptest.NewRequest("PUT", "/posts/not-a-uuid", strings.NewReader(`{}`))))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestDelete(t *testing.T) {
	stub := newStub()
	mux := serve(t, stub.Handler().AdminRoutes())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, asAdmin(httptest.NewRequest("DELETE", "/posts/"+stub.draft.ID.String(), nil)))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if stub.gotDelete != stub.draft.ID {
		t.Errorf("deleted id = %v, want %v", stub.gotDelete, stub.draft.ID)
	}
}
