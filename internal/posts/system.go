package posts

import (
	"context"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
)

// System defines the operations available for blog posts.
type System interface {
	// Handler returns an HTTP handler bound to this system.
	Handler() *Handler

	// ListPublished returns published posts, newest first.
	ListPublished(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Post], error)

	// FindBySlug returns a published post by slug.
	FindBySlug(ctx context.Context, slug string) (*Post, error)

	// ListAll returns posts regardless of publication state. Intended for the
	// admin console.
	ListAll(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Post], error)

	// Find returns a post by id regardless of publication state.
	Find(ctx context.Context, id uuid.UUID) (*Post, error)

	// Create creates a post authored by the given user.
	Create(ctx context.Context, authorID uuid.UUID, cmd CreateCommand) (*Post, error)

	// Update applies non-nil fields of cmd to a post. Publishing a post for
	// the first time stamps its published_at.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Post, error)

	// Delete removes a post.
	Delete(ctx context.Context, id uuid.UUID) error
}
