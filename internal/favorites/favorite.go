// Package favorites implements per-user favorite manga for Mangetsu.
// Favorites cache the title and cover of a catalog entry at add time so
// library views render without re-querying external sources.
package favorites

import (
	"time"

	"github.com/google/uuid"
)

// Favorite represents one saved manga in a user's library.
type Favorite struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	MangaID   string    `json:"manga_id"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AddCommand carries the data needed to save a favorite.
type AddCommand struct {
	MangaID  string `json:"manga_id"`
	Title    string `json:"title"`
	CoverURL string `json:"cover_url"`
}
