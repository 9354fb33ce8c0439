package ads

import (
	"net/url"

	"github.com/mangetsu-dev/mangetsu/pkg/query"
	"github.com/mangetsu-dev/mangetsu/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "ad_slots", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("kind", "Kind").
	Project("script", "Script").
	Project("banner_key", "BannerKey").
	Project("link_url", "LinkURL").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

// Filters contains optional filtering criteria for slot queries.
type Filters struct {
	Kind   *string `json:"kind,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Kind", f.Kind).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if k := values.Get("kind"); k != "" {
		f.Kind = &k
	}

	switch values.Get("active") {
	case "true":
		v := true
		f.Active = &v
	case "false":
		v := false
		f.Active = &v
	}

	return f
}

func scanSlot(s repository.Scanner) (Slot, error) {
	var slot Slot
	err := s.Scan(
		&slot.ID,
		&slot.Name,
		&slot.Kind,
		&slot.Script,
		&slot.BannerKey,
		&slot.LinkURL,
		&slot.Active,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	return slot, err
}
