package posts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a post repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "posts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) ListPublished(
	ctx context.Context,
	page pagination.PageRequest,
) (*pagination.PageResult[Post], error) {
	published := true
	qb := query.
		NewBuilder(projection, query.SortField{Field: "PublishedAt", Descending: true}).
		WhereEquals("Published", &published).
		WhereSearch(page.Search, "Title", "Body")

	return r.list(ctx, qb, page)
}

func (r *repo) ListAll(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Post], error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Body")

	filters.Apply(qb)

	return r.list(ctx, qb, page)
}

func (r *repo) list(
	ctx context.Context,
	qb *query.Builder,
	page pagination.PageRequest,
) (*pagination.PageResult[Post], error) {
	page.Normalize(r.pagination)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPost)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	published := true
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Slug", &slug).
		WhereEquals("Published", &published).
		BuildSingleOrNull()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPost)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &p, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Post, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPost)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &p, nil
}

func (r *repo) Create(ctx context.Context, authorID uuid.UUID, cmd CreateCommand) (*Post, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" || strings.TrimSpace(cmd.Body) == "" {
		return nil, ErrInvalidInput
	}

	slug := cmd.Slug
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" || slug != Slugify(slug) {
		return nil, ErrInvalidInput
	}

	publishedAt := publicationTime(nil, cmd.Published)

	q := `
		INSERT INTO posts(id, author_id, slug, title, body, published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	insertArgs := []any{uuid.New(), authorID, slug, title, cmd.Body, cmd.Published, publishedAt}

	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (uuid.UUID, error) {
		var id uuid.UUID
		err := tx.QueryRowContext(ctx, q, insertArgs...).Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("post created", "id", id, "slug", slug, "author", authorID)
	return r.Find(ctx, id)
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Post, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if cmd.Title != nil {
		title = strings.TrimSpace(*cmd.Title)
	}

	body := current.Body
	if cmd.Body != nil {
		body = *cmd.Body
	}

	if title == "" || strings.TrimSpace(body) == "" {
		return nil, ErrInvalidInput
	}

	published := current.Published
	if cmd.Published != nil {
		published = *cmd.Published
	}

	publishedAt := publicationTime(current.PublishedAt, published)

	q := `
		UPDATE posts
		SET title = $1, body = $2, published = $3, published_at = $4, updated_at = now()
		WHERE id = $5`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, q, title, body, published, publishedAt, id)
		return struct{}{}, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("post updated", "id", id, "published", published)
	return r.Find(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM posts WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("post deleted", "id", id)
	return nil
}
