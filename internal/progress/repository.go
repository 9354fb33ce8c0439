package progress

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/internal/catalog"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a reading progress repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "progress"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	userID uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[Progress], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", userID)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reading progress: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProgress)
	if err != nil {
		return nil, fmt.Errorf("query reading progress: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, userID uuid.UUID, mangaID string) (*Progress, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("UserID", userID).
		WhereEquals("MangaID", &mangaID).
		BuildSingleOrNull()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProgress)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &p, nil
}

func (r *repo) Upsert(ctx context.Context, userID uuid.UUID, cmd UpsertCommand) (*Progress, error) {
	source, _, err := catalog.SplitID(cmd.MangaID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if cmd.ChapterID == "" || cmd.Page < 0 {
		return nil, ErrInvalidInput
	}

	q := `
		INSERT INTO reading_progress(id, user_id, manga_id, source, chapter_id, page, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, manga_id) DO UPDATE
		SET chapter_id = EXCLUDED.chapter_id,
		    page = EXCLUDED.page,
		    language = EXCLUDED.language,
		    updated_at = now()
		RETURNING id, user_id, manga_id, source, chapter_id, page, language, updated_at`

	upsertArgs := []any{
		uuid.New(),
		userID,
		cmd.MangaID,
		source,
		cmd.ChapterID,
		cmd.Page,
		cmd.Language,
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Progress, error) {
		return repository.QueryOne(ctx, tx, q, upsertArgs, scanProgress)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidInput)
	}

	r.logger.Info("progress updated", "user", userID, "manga", p.MangaID, "chapter", p.ChapterID)
	return &p, nil
}
