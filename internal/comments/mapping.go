package comments

import (
	"net/url"

	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "comments", "c").
	Project("id", "ID").
	Project("user_id", "UserID").
	ProjectAs("u.username", "Username").
	Project("manga_id", "MangaID").
	Project("chapter_id", "ChapterID").
	Project("body", "Body").
	Project("hidden", "Hidden").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("JOIN public.users u ON u.id = c.user_id")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for moderation queries.
type Filters struct {
	MangaID *string `json:"manga_id,omitempty"`
	Hidden  *bool   `json:"hidden,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("MangaID", f.MangaID).
		WhereEquals("Hidden", f.Hidden)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if m := values.Get("manga_id"); m != "" {
		f.MangaID = &m
	}

	switch values.Get("hidden") {
	case "true":
		v := true
		f.Hidden = &v
	case "false":
		v := false
		f.Hidden = &v
	}

	return f
}

func scanComment(s repository.Scanner) (Comment, error) {
	var c Comment
	err := s.Scan(
		&c.ID,
		&c.UserID,
		&c.Username,
		&c.MangaID,
		&c.ChapterID,
		&c.Body,
		&c.Hidden,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
