// Package catalog implements the external-API aggregation layer for Mangetsu.
// It normalizes the MangaDx and MangaPlus catalog schemas into one internal
// manga/chapter representation and fans catalog queries out across both
// sources.
package catalog

import "time"

// Manga is the normalized representation of a series from any source.
// ID is canonical ("<source>:<native id>") and routable back to its adapter.
type Manga struct {
	ID          string   `json:"id"`
	Source      string   `json:"source"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Status      string   `json:"status,omitempty"`
	Languages   []string `json:"languages,omitempty"`
}

// Chapter is the normalized representation of a single chapter.
// Number is kept as a string; sources use non-numeric values ("Extra", "10.5").
type Chapter struct {
	ID          string    `json:"id"`
	MangaID     string    `json:"manga_id"`
	Number      string    `json:"number"`
	Title       string    `json:"title,omitempty"`
	Volume      string    `json:"volume,omitempty"`
	Language    string    `json:"language"`
	Pages       int       `json:"pages,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// PageSet holds the page image URLs for a chapter.
type PageSet struct {
	ChapterID string   `json:"chapter_id"`
	BaseURL   string   `json:"base_url,omitempty"`
	Pages     []string `json:"pages"`
}

// MangaPage is one page of manga results from a source or the aggregator.
type MangaPage struct {
	Items   []Manga `json:"items"`
	Page    int     `json:"page"`
	HasMore bool    `json:"has_more"`
}

// ChapterPage is one page of chapter results.
type ChapterPage struct {
	Items   []Chapter `json:"items"`
	Page    int       `json:"page"`
	HasMore bool      `json:"has_more"`
}
