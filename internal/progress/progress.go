// Package progress implements per-user reading progress for Mangetsu.
// Progress is keyed by (user, manga): re-reporting a position for the same
// manga replaces the stored chapter and page.
package progress

import (
	"time"

	"github.com/google/uuid"
)

// Progress represents the last reading position a user reported for a manga.
type Progress struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	MangaID   string    `json:"manga_id"`
	Source    string    `json:"source"`
	ChapterID string    `json:"chapter_id"`
	Page      int       `json:"page"`
	Language  string    `json:"language,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertCommand carries a reported reading position.
type UpsertCommand struct {
	MangaID   string `json:"manga_id"`
	ChapterID string `json:"chapter_id"`
	Page      int    `json:"page"`
	Language  string `json:"language"`
}
