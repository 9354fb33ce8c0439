package ads

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
	"github.com/mangetsu-dev/mangetsu/pkg/storage"
)

type repo struct {
	db         *sql.DB
	store      storage.System
	logger     *slog.Logger
	pagination pagination.Config
	maxUpload  int64
}

// New creates an ad slot repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUpload int64,
) System {
	return &repo{
		db:         db,
		store:      store,
		logger:     logger.With("system", "ads"),
		pagination: pagination,
		maxUpload:  maxUpload,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination, r.maxUpload)
}

func (r *repo) ListActive(ctx context.Context) ([]Slot, error) {
	active := true
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("Active", &active).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanSlot)
	if err != nil {
		return nil, fmt.Errorf("query active ad slots: %w", err)
	}

	return items, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Slot], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count ad slots: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSlot)
	if err != nil {
		return nil, fmt.Errorf("query ad slots: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Slot, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSlot)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &s, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Slot, error) {
	slot := Slot{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(cmd.Name),
		Kind:    cmd.Kind,
		Script:  cmd.Script,
		LinkURL: cmd.LinkURL,
		Active:  cmd.Active,
	}

	if err := validate(slot); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO ad_slots(id, name, kind, script, link_url, active)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, q,
			slot.ID, slot.Name, slot.Kind, slot.Script, slot.LinkURL, slot.Active)
		return struct{}{}, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("ad slot created", "id", slot.ID, "name", slot.Name, "kind", slot.Kind)
	return r.Find(ctx, slot.ID)
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Slot, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	if cmd.Name != nil {
		next.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Script != nil {
		next.Script = cmd.Script
	}
	if cmd.LinkURL != nil {
		next.LinkURL = cmd.LinkURL
	}
	if cmd.Active != nil {
		next.Active = *cmd.Active
	}

	if err := validate(next); err != nil {
		return nil, err
	}

	q := `
		UPDATE ad_slots
		SET name = $1, script = $2, link_url = $3, active = $4, updated_at = now()
		WHERE id = $5`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, q,
			next.Name, next.Script, next.LinkURL, next.Active, id)
		return struct{}{}, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("ad slot updated", "id", id, "active", next.Active)
	return r.Find(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	slot, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM ad_slots WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if slot.BannerKey != nil {
		if err := r.store.Delete(ctx, *slot.BannerKey); err != nil {
			r.logger.Warn("orphaned banner image", "id", id, "key", *slot.BannerKey, "error", err)
		}
	}

	r.logger.Info("ad slot deleted", "id", id)
	return nil
}

func (r *repo) UploadBanner(
	ctx context.Context,
	id uuid.UUID,
	reader io.Reader,
	contentType string,
) (*Slot, error) {
	slot, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot.Kind != KindBanner {
		return nil, ErrInvalidInput
	}

	key := "ads/" + id.String()
	if err := r.store.Upload(ctx, key, reader, contentType); err != nil {
		return nil, fmt.Errorf("upload banner: %w", err)
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE ad_slots SET banner_key = $1, updated_at = now() WHERE id = $2",
			key, id,
		)
		return struct{}{}, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("banner uploaded", "id", id, "key", key)
	return r.Find(ctx, id)
}

func (r *repo) Banner(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error) {
	slot, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot.Kind != KindBanner || slot.BannerKey == nil {
		return nil, ErrNoBanner
	}

	return r.store.Download(ctx, *slot.BannerKey)
}

// validate enforces slot shape: a known kind, a name, a snippet on script
// slots, and a link on banner slots.
func validate(s Slot) error {
	if s.Name == "" {
		return ErrInvalidInput
	}

	switch s.Kind {
	case KindScript:
		if s.Script == nil || strings.TrimSpace(*s.Script) == "" {
			return ErrInvalidInput
		}
	case KindBanner:
		if s.LinkURL == nil || strings.TrimSpace(*s.LinkURL) == "" {
			return ErrInvalidInput
		}
	default:
		return ErrInvalidInput
	}

	return nil
}
