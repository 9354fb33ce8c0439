package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

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

// New creates a favorite repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "favorites"),
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
	filters Filters,
) (*pagination.PageResult[Favorite], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", userID).
		WhereSearch(page.Search, "Title")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanFavorite)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Add(ctx context.Context, userID uuid.UUID, cmd AddCommand) (*Favorite, error) {
	source, _, err := catalog.SplitID(cmd.MangaID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, ErrInvalidInput
	}

	q := `
		INSERT INTO favorites(id, user_id, manga_id, source, title, cover_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, manga_id, source, title, cover_url, created_at`

	insertArgs := []any{uuid.New(), userID, cmd.MangaID, source, cmd.Title, cmd.CoverURL}

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Favorite, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanFavorite)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("favorite added", "id", f.ID, "user", userID, "manga", f.MangaID)
	return &f, nil
}

func (r *repo) Remove(ctx context.Context, userID, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM favorites WHERE id = $1 AND user_id = $2",
			id, userID,
		)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("favorite removed", "id", id, "user", userID)
	return nil
}
