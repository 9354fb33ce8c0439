package comments

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/internal/catalog"
	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

const maxBodyLength = 2000

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a comment repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "comments"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) ListForManga(
	ctx context.Context,
	mangaID string,
	chapterID *string,
	page pagination.PageRequest,
) (*pagination.PageResult[Comment], error) {
	if _, _, err := catalog.SplitID(mangaID); err != nil {
		return nil, ErrInvalidInput
	}

	hidden := false
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("MangaID", &mangaID).
		WhereEquals("Hidden", &hidden)

	if chapterID != nil {
		qb.WhereEquals("ChapterID", chapterID)
	}

	return r.list(ctx, qb, page)
}

func (r *repo) ListAll(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Comment], error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Body", "Username")

	filters.Apply(qb)

	return r.list(ctx, qb, page)
}

func (r *repo) list(
	ctx context.Context,
	qb *query.Builder,
	page pagination.PageRequest,
) (*pagination.PageResult[Comment], error) {
	page.Normalize(r.pagination)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanComment)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*Comment, error) {
	if _, _, err := catalog.SplitID(cmd.MangaID); err != nil {
		return nil, ErrInvalidInput
	}

	body := strings.TrimSpace(cmd.Body)
	if body == "" || len(body) > maxBodyLength {
		return nil, ErrInvalidInput
	}

	if cmd.ChapterID != nil && *cmd.ChapterID == "" {
		cmd.ChapterID = nil
	}

	q := `
		INSERT INTO comments(id, user_id, manga_id, chapter_id, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	insertArgs := []any{uuid.New(), userID, cmd.MangaID, cmd.ChapterID, body}

	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (uuid.UUID, error) {
		var id uuid.UUID
		err := tx.QueryRowContext(ctx, q, insertArgs...).Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidInput)
	}

	r.logger.Info("comment created", "id", id, "user", userID, "manga", cmd.MangaID)
	return r.find(ctx, id)
}

func (r *repo) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	c, err := r.find(ctx, id)
	if err != nil {
		return err
	}

	if c.UserID != p.UserID && p.Role != auth.RoleAdmin {
		return ErrForbidden
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM comments WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrInvalidInput)
	}

	r.logger.Info("comment deleted", "id", id, "by", p.UserID)
	return nil
}

func (r *repo) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) (*Comment, error) {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE comments SET hidden = $1, updated_at = now() WHERE id = $2",
			hidden, id,
		)
		return struct{}{}, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidInput)
	}

	r.logger.Info("comment visibility changed", "id", id, "hidden", hidden)
	return r.find(ctx, id)
}

func (r *repo) find(ctx context.Context, id uuid.UUID) (*Comment, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanComment)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidInput)
	}

	return &c, nil
}
