package favorites

import (
	"context"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
)

// System defines the public contract for favorite domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		userID uuid.UUID,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Favorite], error)

	Add(ctx context.Context, userID uuid.UUID, cmd AddCommand) (*Favorite, error)
	Remove(ctx context.Context, userID, id uuid.UUID) error
}
