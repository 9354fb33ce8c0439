// Package posts implements the Mangetsu site blog. Posts are written by
// admins and served to readers once published.
package posts

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post represents a blog post. AuthorName is joined from the author's account.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	AuthorName  string     `json:"author_name"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to create a post. When Slug is empty
// one is derived from the title.
type CreateCommand struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// UpdateCommand carries the data for a post update. Nil fields are left
// unchanged.
type UpdateCommand struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// publicationTime resolves a post's publish timestamp for a target published
// state. The first transition to published stamps the current time; the stamp
// survives unpublishing so a republished post keeps its original date.
func publicationTime(current *time.Time, published bool) *time.Time {
	if published && current == nil {
		now := time.Now().UTC()
		return &now
	}
	return current
}

// Slugify derives a URL slug from a title: lowercased, with runs of
// non-alphanumeric characters collapsed to single hyphens.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
