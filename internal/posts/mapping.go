package posts

import (
	"net/url"

	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "posts", "p").
	Project("id", "ID").
	Project("author_id", "AuthorID").
	ProjectAs("u.username", "AuthorName").
	Project("slug", "Slug").
	Project("title", "Title").
	Project("body", "Body").
	Project("published", "Published").
	Project("published_at", "PublishedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("JOIN public.users u ON u.id = p.author_id")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for post queries.
type Filters struct {
	Published *bool `json:"published,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Published", f.Published)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	switch values.Get("published") {
	case "true":
		v := true
		f.Published = &v
	case "false":
		v := false
		f.Published = &v
	}

	return f
}

func scanPost(s repository.Scanner) (Post, error) {
	var p Post
	err := s.Scan(
		&p.ID,
		&p.AuthorID,
		&p.AuthorName,
		&p.Slug,
		&p.Title,
		&p.Body,
		&p.Published,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
