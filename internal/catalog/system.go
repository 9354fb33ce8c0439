package catalog

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// System defines the public contract for catalog operations.
type System interface {
	Handler() *Handler

	Search(ctx context.Context, query string, page int, lang string) (*MangaPage, error)
	Popular(ctx context.Context, page int, lang string) (*MangaPage, error)
	Latest(ctx context.Context, page int, lang string) (*MangaPage, error)
	Manga(ctx context.Context, id, lang string) (*Manga, error)
	Chapters(ctx context.Context, id string, page int, lang string) (*ChapterPage, error)
	Pages(ctx context.Context, id string) (*PageSet, error)
}

type aggregator struct {
	sources     []Source
	byName      map[string]Source
	defaultLang string
	logger      *slog.Logger
}

// New creates the catalog system with the MangaDx and MangaPlus sources.
func New(cfg *Config, logger *slog.Logger) System {
	return NewWithSources(cfg, logger, NewMangaDx(cfg, logger), NewMangaPlus(cfg, logger))
}

// NewWithSources creates the catalog system over an explicit source set.
func NewWithSources(cfg *Config, logger *slog.Logger, sources ...Source) System {
	byName := make(map[string]Source, len(sources))
	for _, src := range sources {
		byName[src.Name()] = src
	}

	return &aggregator{
		sources:     sources,
		byName:      byName,
		defaultLang: cfg.DefaultLanguage,
		logger:      logger.With("system", "catalog"),
	}
}

func (a *aggregator) Handler() *Handler {
	return NewHandler(a, a.logger)
}

func (a *aggregator) Search(ctx context.Context, query string, page int, lang string) (*MangaPage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidQuery
	}

	page, lang = a.normalize(page, lang)
	return a.fanOut(ctx, page, func(ctx context.Context, src Source) (*MangaPage, error) {
		return src.Search(ctx, query, page, lang)
	})
}

func (a *aggregator) Popular(ctx context.Context, page int, lang string) (*MangaPage, error) {
	page, lang = a.normalize(page, lang)
	return a.fanOut(ctx, page, func(ctx context.Context, src Source) (*MangaPage, error) {
		return src.Popular(ctx, page, lang)
	})
}

func (a *aggregator) Latest(ctx context.Context, page int, lang string) (*MangaPage, error) {
	page, lang = a.normalize(page, lang)
	return a.fanOut(ctx, page, func(ctx context.Context, src Source) (*MangaPage, error) {
		return src.Latest(ctx, page, lang)
	})
}

func (a *aggregator) Manga(ctx context.Context, id, lang string) (*Manga, error) {
	src, nativeID, err := a.route(id)
	if err != nil {
		return nil, err
	}
	_, lang = a.normalize(1, lang)
	return src.Manga(ctx, nativeID, lang)
}

func (a *aggregator) Chapters(ctx context.Context, id string, page int, lang string) (*ChapterPage, error) {
	src, nativeID, err := a.route(id)
	if err != nil {
		return nil, err
	}
	page, lang = a.normalize(page, lang)
	return src.Chapters(ctx, nativeID, page, lang)
}

func (a *aggregator) Pages(ctx context.Context, id string) (*PageSet, error) {
	src, nativeID, err := a.route(id)
	if err != nil {
		return nil, err
	}
	return src.Pages(ctx, nativeID)
}

// fanOut queries all sources concurrently and interleaves their results.
// A failing source is logged and tolerated; the error surfaces only when
// every source fails.
func (a *aggregator) fanOut(ctx context.Context, page int, fetch func(context.Context, Source) (*MangaPage, error)) (*MangaPage, error) {
	results := make([]*MangaPage, len(a.sources))

	var g errgroup.Group
	for i, src := range a.sources {
		g.Go(func() error {
			p, err := fetch(ctx, src)
			if err != nil {
				a.logger.Warn("source query failed", "source", src.Name(), "error", err)
				return nil
			}
			results[i] = p
			return nil
		})
	}
	g.Wait()

	var hasMore, anySucceeded bool
	lists := make([][]Manga, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		anySucceeded = true
		lists = append(lists, r.Items)
		hasMore = hasMore || r.HasMore
	}

	if !anySucceeded {
		return nil, ErrSourceUnavailable
	}

	return &MangaPage{
		Items:   interleave(lists),
		Page:    page,
		HasMore: hasMore,
	}, nil
}

func (a *aggregator) route(id string) (Source, string, error) {
	source, nativeID, err := SplitID(id)
	if err != nil {
		return nil, "", err
	}

	src, ok := a.byName[source]
	if !ok {
		return nil, "", ErrUnknownSource
	}

	return src, nativeID, nil
}

func (a *aggregator) normalize(page int, lang string) (int, string) {
	if page < 1 {
		page = 1
	}
	if lang == "" {
		lang = a.defaultLang
	}
	return page, lang
}

// interleave merges per-source result lists round-robin so no single source
// dominates the head of a merged page.
func interleave(lists [][]Manga) []Manga {
	total := 0
	for _, list := range lists {
		total += len(list)
	}

	merged := make([]Manga, 0, total)
	for i := 0; len(merged) < total; i++ {
		for _, list := range lists {
			if i < len(list) {
				merged = append(merged, list[i])
			}
		}
	}

	return merged
}
