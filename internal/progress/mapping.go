package progress

import (
	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reading_progress", "p").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("manga_id", "MangaID").
	Project("source", "Source").
	Project("chapter_id", "ChapterID").
	Project("page", "Page").
	Project("language", "Language").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

func scanProgress(s repository.Scanner) (Progress, error) {
	var p Progress
	err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.MangaID,
		&p.Source,
		&p.ChapterID,
		&p.Page,
		&p.Language,
		&p.UpdatedAt,
	)
	return p, err
}
