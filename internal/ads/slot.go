// Package ads implements the Mangetsu ad slot inventory. A slot is either a
// script snippet injected by the web client or a hosted banner image with a
// click-through link. Banner images live in blob storage.
package ads

import (
	"time"

	"github.com/google/uuid"
)

// Slot kinds.
const (
	KindScript = "script"
	KindBanner = "banner"
)

// Slot represents a single ad placement. Script slots carry a snippet;
// banner slots carry a stored image key and a link URL.
type Slot struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Script    *string   `json:"script,omitempty"`
	BannerKey *string   `json:"banner_key,omitempty"`
	LinkURL   *string   `json:"link_url,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to create a slot. Banner images are
// uploaded separately after creation.
type CreateCommand struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Script  *string `json:"script"`
	LinkURL *string `json:"link_url"`
	Active  bool    `json:"active"`
}

// UpdateCommand carries the data for a slot update. Nil fields are left
// unchanged.
type UpdateCommand struct {
	Name    *string `json:"name"`
	Script  *string `json:"script"`
	LinkURL *string `json:"link_url"`
	Active  *bool   `json:"active"`
}
