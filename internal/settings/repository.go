package settings

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"log/slog"
	"regexp"
	"sort"

	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,63}$`)

type repo struct {
	db          *sql.DB
	logger      *slog.Logger
	broadcaster *Broadcaster
}

// New creates a settings repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:          db,
		logger:      logger.With("system", "settings"),
		broadcaster: NewBroadcaster(),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context) ([]Setting, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanSetting)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}

	return items, nil
}

func (r *repo) Snapshot(ctx context.Context) (*Snapshot, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(items))
	for _, s := range items {
		values[s.Key] = s.Value
	}

	return &Snapshot{
		Revision: revision(values),
		Values:   values,
	}, nil
}

func (r *repo) Find(ctx context.Context, key string) (*Setting, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Key", key)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSetting)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidKey)
	}

	return &s, nil
}

func (r *repo) Upsert(ctx context.Context, key, value string) (*Setting, error) {
	if !keyPattern.MatchString(key) {
		return nil, ErrInvalidKey
	}

	q := `
		INSERT INTO settings(key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		RETURNING key, value, updated_at`

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Setting, error) {
		return repository.QueryOne(ctx, tx, q, []any{key, value}, scanSetting)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidKey)
	}

	r.logger.Info("setting updated", "key", key)
	r.notify(ctx)
	return &s, nil
}

func (r *repo) Delete(ctx context.Context, key string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM settings WHERE key = $1", key)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrInvalidKey)
	}

	r.logger.Info("setting deleted", "key", key)
	r.notify(ctx)
	return nil
}

func (r *repo) Subscribe() (<-chan Snapshot, func()) {
	return r.broadcaster.Subscribe()
}

func (r *repo) notify(ctx context.Context) {
	snapshot, err := r.Snapshot(ctx)
	if err != nil {
		r.logger.Error("settings snapshot for broadcast failed", "error", err)
		return
	}
	r.broadcaster.Publish(*snapshot)
}

// revision derives a stable content hash over the settings map, used as the
// snapshot ETag.
func revision(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%s\n", k, values[k])
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
