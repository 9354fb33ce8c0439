// Package settings implements the Mangetsu site settings store. Settings are
// string key/value pairs edited from the admin console and pushed to web
// clients through polling with ETag revalidation or a server-sent event
// stream.
package settings

import "time"

// Setting represents a single site setting.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot is the full settings map at a point in time. Revision changes
// whenever any value changes and doubles as the HTTP ETag.
type Snapshot struct {
	Revision string            `json:"revision"`
	Values   map[string]string `json:"values"`
}

// UpsertCommand carries the value for a settings write.
type UpsertCommand struct {
	Value string `json:"value"`
}
