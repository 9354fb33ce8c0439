package comments

import (
	"context"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/auth"
	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
)

// System defines the operations available for comments.
type System interface {
	// Handler returns an HTTP handler bound to this system.
	Handler() *Handler

	// ListForManga returns visible comments for a manga, optionally scoped to
	// a chapter. Hidden comments are excluded.
	ListForManga(
		ctx context.Context,
		mangaID string,
		chapterID *string,
		page pagination.PageRequest,
	) (*pagination.PageResult[Comment], error)

	// ListAll returns comments across all manga, hidden included. Intended
	// for moderation.
	ListAll(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Comment], error)

	// Create posts a comment as the given user.
	Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*Comment, error)

	// Delete removes a comment. Admins may delete any comment; other callers
	// only their own.
	Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error

	// SetHidden marks a comment hidden or visible.
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) (*Comment, error)
}
