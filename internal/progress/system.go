package progress

import (
	"context"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
)

// System defines the public contract for reading progress operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		userID uuid.UUID,
		page pagination.PageRequest,
	) (*pagination.PageResult[Progress], error)

	Find(ctx context.Context, userID uuid.UUID, mangaID string) (*Progress, error)
	Upsert(ctx context.Context, userID uuid.UUID, cmd UpsertCommand) (*Progress, error)
}
