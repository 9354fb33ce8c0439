package ads_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/internal/ads"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/routes"
	"github.com/mangetsu-dev/mangetsu/pkg/storage"
)

const testMaxUpload = 1 << 20

type stubSystem struct {
	slot      ads.Slot
	bannerErr error

	gotUpload      []byte
	gotContentType string
}

func (s *stubSystem) Handler() *ads.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ads.NewHandler(s, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}, testMaxUpload)
}

func (s *stubSystem) ListActive(ctx context.Context) ([]ads.Slot, error) {
	return []ads.Slot{s.slot}, nil
}

func (s *stubSystem) List(ctx context.Context, page pagination.PageRequest, filters ads.Filters) (*pagination.PageResult[ads.Slot], error) {
	result := pagination.NewPageResult([]ads.Slot{s.slot}, 1, page.Page, page.PageSize)
	return &result, nil
}

func (s *stubSystem) Find(ctx context.Context, id uuid.UUID) (*ads.Slot, error) {
	if id != s.slot.ID {
		return nil, ads.ErrNotFound
	}
	return &s.slot, nil
}

func (s *stubSystem) Create(ctx context.Context, cmd ads.CreateCommand) (*ads.Slot, error) {
	return &s.slot, nil
}

func (s *stubSystem) Update(ctx context.Context, id uuid.UUID, cmd ads.UpdateCommand) (*ads.Slot, error) {
	return &s.slot, nil
}

func (s *stubSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (s *stubSystem) UploadBanner(ctx context.Context, id uuid.UUID, r io.Reader, contentType string) (*ads.Slot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.gotUpload = data
	s.gotContentType = contentType
	return &s.slot, nil
}

func (s *stubSystem) Banner(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error) {
	if s.bannerErr != nil {
		return nil, s.bannerErr
	}
	return &storage.DownloadResult{
		Body:          io.NopCloser(strings.NewReader("png-bytes")),
		ContentType:   "image/png",
		ContentLength: 9,
	}, nil
}

func newStub() *stubSystem {
	link := "https://sponsor.example.com"
	return &stubSystem{
		slot: ads.Slot{
			ID:      uuid.New(),
			Name:    "sidebar",
			Kind:    ads.KindBanner,
			LinkURL: &link,
			Active:  true,
		},
	}
}

func serve(t *testing.T, group routes.Group) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	routes.Register(mux, group)
	return mux
}

func multipartImage(t *testing.T, field, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="banner.png"`)
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	return &buf, mw.FormDataContentType()
}

func TestBanner(t *testing.T) {
	t.Run("streams stored image", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().Routes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/ads/"+stub.slot.ID.String()+"/banner", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); got != "image/png" {
			t.Errorf("Content-Type = %q", got)
		}
		if rec.Body.String() != "png-bytes" {
			t.Errorf("body = %q", rec.Body.String())
		}
	})

	t.Run("no banner stored", func(t *testing.T) {
		stub := newStub()
		stub.bannerErr = ads.ErrNoBanner
		mux := serve(t, stub.Handler().Routes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/ads/"+stub.slot.ID.String()+"/banner", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		mux := serve(t, newStub().Handler().Routes())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/ads/not-a-uuid/banner", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestUploadBanner(t *testing.T) {
	t.Run("accepts image", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().AdminRoutes())

		body, contentType := multipartImage(t, "image", "image/png", []byte("png-bytes"))
		req := httptest.NewRequest("POST", "/ads/"+stub.slot.ID.String()+"/banner", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if string(stub.gotUpload) != "png-bytes" {
			t.Errorf("uploaded bytes = %q", stub.gotUpload)
		}
		if stub.gotContentType != "image/png" {
			t.Errorf("content type = %q", stub.gotContentType)
		}
	})

	t.Run("rejects non-image", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().AdminRoutes())

		body, contentType := multipartImage(t, "image", "text/html", []byte("<script>"))
		req := httptest.NewRequest("POST", "/ads/"+stub.slot.ID.String()+"/banner", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects missing field", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().AdminRoutes())

		body, contentType := multipartImage(t, "attachment", "image/png", []byte("png-bytes"))
		req := httptest.NewRequest("POST", "/ads/"+stub.slot.ID.String()+"/banner", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects oversized upload", func(t *testing.T) {
		stub := newStub()
		mux := serve(t, stub.Handler().AdminRoutes())

		big := bytes.Repeat([]byte("x"), testMaxUpload+1024)
		body, contentType := multipartImage(t, "image", "image/png", big)
		req := httptest.NewRequest("POST", "/ads/"+stub.slot.ID.String()+"/banner", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want 413", rec.Code)
		}
	})
}
