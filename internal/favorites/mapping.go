package favorites

import (
	"net/url"

	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "favorites", "f").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("manga_id", "MangaID").
	Project("source", "Source").
	Project("title", "Title").
	Project("cover_url", "CoverURL").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for favorite queries.
type Filters struct {
	Source *string `json:"source,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Source", f.Source)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("source"); s != "" {
		f.Source = &s
	}

	return f
}

func scanFavorite(s repository.Scanner) (Favorite, error) {
	var f Favorite
	err := s.Scan(
		&f.ID,
		&f.UserID,
		&f.MangaID,
		&f.Source,
		&f.Title,
		&f.CoverURL,
		&f.CreatedAt,
	)
	return f, err
}
