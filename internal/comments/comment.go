// Package comments implements reader comments for Mangetsu. Comments attach
// to a manga or to a specific chapter and carry a hidden flag for moderation.
package comments

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a single reader comment. Username is joined from the
// author's account for display.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	MangaID   string    `json:"manga_id"`
	ChapterID *string   `json:"chapter_id,omitempty"`
	Body      string    `json:"body"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to post a comment.
type CreateCommand struct {
	MangaID   string  `json:"manga_id"`
	ChapterID *string `json:"chapter_id"`
	Body      string  `json:"body"`
}
