package users

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

const minPasswordLength = 8

type repo struct {
	db         *sql.DB
	tokens     *auth.Tokens
	passwords  *auth.Passwords
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an account repository implementing the System interface.
func New(
	db *sql.DB,
	tokens *auth.Tokens,
	passwords *auth.Passwords,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		tokens:     tokens,
		passwords:  passwords,
		logger:     logger.With("system", "users"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Username = strings.TrimSpace(cmd.Username)

	if err := validateRegister(cmd); err != nil {
		return nil, err
	}

	hash, err := r.passwords.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	q := `
		INSERT INTO users(id, email, username, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, username, role, password_hash, created_at, updated_at`

	insertArgs := []any{uuid.New(), cmd.Email, cmd.Username, auth.RoleReader, hash}

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanUser)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user registered", "id", u.ID, "username", u.Username)
	return &u, nil
}

func (r *repo) Login(ctx context.Context, cmd LoginCommand) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	q, args := query.
		NewBuilder(projection).
		WhereEquals("Email", &email).
		BuildSingleOrNull()

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		// Uniform failure for unknown email and wrong password.
		return nil, ErrInvalidCredentials
	}

	if !r.passwords.Compare(u.PasswordHash, cmd.Password) {
		return nil, ErrInvalidCredentials
	}

	token, expires, err := r.tokens.Issue(auth.Principal{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	r.logger.Info("user logged in", "id", u.ID)
	return &Session{
		Token:     token,
		ExpiresAt: expires,
		User:      u,
	}, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[User], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Email", "Username")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	if role != auth.RoleReader && role != auth.RoleAdmin {
		return nil, ErrInvalidRole
	}

	q := `
		UPDATE users SET role = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, email, username, role, password_hash, created_at, updated_at`

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, role}, scanUser)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user role updated", "id", id, "role", role)
	return &u, nil
}

func validateRegister(cmd RegisterCommand) error {
	if _, err := mail.ParseAddress(cmd.Email); err != nil {
		return ErrInvalidInput
	}
	if len(cmd.Username) < 3 {
		return ErrInvalidInput
	}
	if len(cmd.Password) < minPasswordLength {
		return ErrInvalidInput
	}
	return nil
}
