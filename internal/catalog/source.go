package catalog

import (
	"context"
	"strings"
)

// Source adapts one external catalog API to the normalized representation.
// Implementations receive native IDs and return entities carrying canonical
// composed IDs.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, page int, lang string) (*MangaPage, error)
	Manga(ctx context.Context, nativeID, lang string) (*Manga, error)
	Chapters(ctx context.Context, nativeID string, page int, lang string) (*ChapterPage, error)
	Pages(ctx context.Context, nativeID string) (*PageSet, error)
	Popular(ctx context.Context, page int, lang string) (*MangaPage, error)
	Latest(ctx context.Context, page int, lang string) (*MangaPage, error)
}

// ComposeID builds a canonical ID from a source name and native ID.
func ComposeID(source, nativeID string) string {
	return source + ":" + nativeID
}

// SplitID decomposes a canonical ID into source name and native ID.
func SplitID(id string) (source, nativeID string, err error) {
	source, nativeID, ok := strings.Cut(id, ":")
	if !ok || source == "" || nativeID == "" {
		return "", "", ErrUnknownSource
	}
	return source, nativeID, nil
}
