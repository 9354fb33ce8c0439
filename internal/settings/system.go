package settings

import "context"

// System defines the operations available for site settings.
type System interface {
	// Handler returns an HTTP handler bound to this system.
	Handler() *Handler

	// List returns all settings ordered by key.
	List(ctx context.Context) ([]Setting, error)

	// Snapshot returns the full settings map with its revision.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Find returns a single setting by key.
	Find(ctx context.Context, key string) (*Setting, error)

	// Upsert creates or replaces a setting and notifies subscribers.
	Upsert(ctx context.Context, key, value string) (*Setting, error)

	// Delete removes a setting and notifies subscribers.
	Delete(ctx context.Context, key string) error

	// Subscribe registers for snapshot notifications. The cancel function
	// must be called when the consumer is done.
	Subscribe() (<-chan Snapshot, func())
}
