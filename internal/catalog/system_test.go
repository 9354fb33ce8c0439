package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mangetsu-dev/mangetsu/internal/catalog"
)

// stubSource satisfies catalog.Source with canned pages and a switchable
// failure mode.
type stubSource struct {
	name    string
	manga   []catalog.Manga
	hasMore bool
	err     error

	gotQuery string
	gotLang  string
	gotID    string
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) page() (*catalog.MangaPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &catalog.MangaPage{Items: s.manga, Page: 1, HasMore: s.hasMore}, nil
}

func (s *stubSource) Search(ctx context.Context, query string, page int, lang string) (*catalog.MangaPage, error) {
	s.gotQuery = query
	s.gotLang = lang
	return s.page()
}

func (s *stubSource) Popular(ctx context.Context, page int, lang string) (*catalog.MangaPage, error) {
	return s.page()
}

func (s *stubSource) Latest(ctx context.Context, page int, lang string) (*catalog.MangaPage, error) {
	return s.page()
}

func (s *stubSource) Manga(ctx context.Context, nativeID, lang string) (*catalog.Manga, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotID = nativeID
	s.gotLang = lang
	return &s.manga[0], nil
}

func (s *stubSource) Chapters(ctx context.Context, nativeID string, page int, lang string) (*catalog.ChapterPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotID = nativeID
	return &catalog.ChapterPage{Page: page}, nil
}

func (s *stubSource) Pages(ctx context.Context, nativeID string) (*catalog.PageSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotID = nativeID
	return &catalog.PageSet{ChapterID: catalog.ComposeID(s.name, nativeID)}, nil
}

func titled(ids ...string) []catalog.Manga {
	out := make([]catalog.Manga, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.Manga{ID: id, Title: id})
	}
	return out
}

func newAggregator(t *testing.T, sources ...catalog.Source) catalog.System {
	t.Helper()
	cfg := &catalog.Config{DefaultLanguage: "en"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return catalog.NewWithSources(cfg, discard(), sources...)
}

func TestAggregatorSearchInterleaves(t *testing.T) {
	dx := &stubSource{name: "dx", manga: titled("dx:1", "dx:2", "dx:3")}
	plus := &stubSource{name: "plus", manga: titled("plus:1"), hasMore: true}

	sys := newAggregator(t, dx, plus)

	page, err := sys.Search(context.Background(), "blade", 1, "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []string{"dx:1", "plus:1", "dx:2", "dx:3"}
	if len(page.Items) != len(want) {
		t.Fatalf("Search() items = %d, want %d", len(page.Items), len(want))
	}
	for i, id := range want {
		if page.Items[i].ID != id {
			t.Errorf("items[%d].ID = %q, want %q", i, page.Items[i].ID, id)
		}
	}
	if !page.HasMore {
		t.Error("Search() hasMore = false, want true when any source has more")
	}
	if dx.gotLang != "en" {
		t.Errorf("source lang = %q, want default %q applied", dx.gotLang, "en")
	}
}

func TestAggregatorSearchEmptyQuery(t *testing.T) {
	sys := newAggregator(t, &stubSource{name: "dx"})

	for _, query := range []string{"", "   "} {
		if _, err := sys.Search(context.Background(), query, 1, ""); !errors.Is(err, catalog.ErrInvalidQuery) {
			t.Errorf("Search(%q) error = %v, want %v", query, err, catalog.ErrInvalidQuery)
		}
	}
}

func TestAggregatorPartialFailure(t *testing.T) {
	dx := &stubSource{name: "dx", err: catalog.ErrSourceUnavailable}
	plus := &stubSource{name: "plus", manga: titled("plus:1", "plus:2")}

	sys := newAggregator(t, dx, plus)

	page, err := sys.Popular(context.Background(), 1, "en")
	if err != nil {
		t.Fatalf("Popular() error = %v, want surviving source results", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("Popular() items = %d, want 2", len(page.Items))
	}
}

func TestAggregatorAllSourcesFail(t *testing.T) {
	dx := &stubSource{name: "dx", err: catalog.ErrSourceUnavailable}
	plus := &stubSource{name: "plus", err: errors.New("timeout")}

	sys := newAggregator(t, dx, plus)

	if _, err := sys.Latest(context.Background(), 1, "en"); !errors.Is(err, catalog.ErrSourceUnavailable) {
		t.Errorf("Latest() error = %v, want %v", err, catalog.ErrSourceUnavailable)
	}
}

func TestAggregatorRouting(t *testing.T) {
	dx := &stubSource{name: "dx", manga: titled("dx:abc")}
	plus := &stubSource{name: "plus", manga: titled("plus:100")}

	sys := newAggregator(t, dx, plus)

	t.Run("routes by source prefix", func(t *testing.T) {
		if _, err := sys.Manga(context.Background(), "plus:100", ""); err != nil {
			t.Fatalf("Manga() error = %v", err)
		}
		if plus.gotID != "100" {
			t.Errorf("native id = %q, want %q", plus.gotID, "100")
		}
		if dx.gotID != "" {
			t.Errorf("dx received id %q, want untouched", dx.gotID)
		}
	})

	t.Run("chapters route with native id", func(t *testing.T) {
		if _, err := sys.Chapters(context.Background(), "dx:abc", 1, ""); err != nil {
			t.Fatalf("Chapters() error = %v", err)
		}
		if dx.gotID != "abc" {
			t.Errorf("native id = %q, want %q", dx.gotID, "abc")
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		if _, err := sys.Pages(context.Background(), "webtoon:1"); !errors.Is(err, catalog.ErrUnknownSource) {
			t.Errorf("Pages() error = %v, want %v", err, catalog.ErrUnknownSource)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		if _, err := sys.Manga(context.Background(), "no-prefix", ""); !errors.Is(err, catalog.ErrUnknownSource) {
			t.Errorf("Manga() error = %v, want %v", err, catalog.ErrUnknownSource)
		}
	})
}
