package ads

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/mangetsu-dev/mangetsu/pkg/pagination"
	"github.com/mangetsu-dev/mangetsu/pkg/storage"
)

// System defines the operations available for ad slots.
type System interface {
	// Handler returns an HTTP handler bound to this system.
	Handler() *Handler

	// ListActive returns the active slots served to readers.
	ListActive(ctx context.Context) ([]Slot, error)

	// List returns slots for the admin console.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Slot], error)

	// Find returns a slot by id.
	Find(ctx context.Context, id uuid.UUID) (*Slot, error)

	// Create creates a slot. Script slots require a snippet.
	Create(ctx context.Context, cmd CreateCommand) (*Slot, error)

	// Update applies non-nil fields of cmd to a slot.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Slot, error)

	// Delete removes a slot along with any stored banner image.
	Delete(ctx context.Context, id uuid.UUID) error

	// UploadBanner stores a banner image for a banner slot.
	UploadBanner(ctx context.Context, id uuid.UUID, r io.Reader, contentType string) (*Slot, error)

	// Banner streams a banner slot's stored image.
	Banner(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error)
}
