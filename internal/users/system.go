package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
)

// System defines the public contract for account domain operations.
type System interface {
	Handler() *Handler

	Register(ctx context.Context, cmd RegisterCommand) (*User, error)
	Login(ctx context.Context, cmd LoginCommand) (*Session, error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[User], error)

	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*User, error)
}
