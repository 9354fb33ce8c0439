package posts

import (
	"testing"
	"time"
)

func TestPublicationTime(t *testing.T) {
	original := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("first publish stamps now", func(t *testing.T) {
		before := time.Now().UTC()
		stamp := publicationTime(nil, true)
		if stamp == nil {
			t.Fatal("stamp = nil, want a timestamp")
		}
		if stamp.Before(before) || stamp.After(time.Now().UTC()) {
			t.Errorf("stamp = %v, want within the call window", stamp)
		}
	})

	t.Run("republish keeps the original stamp", func(t *testing.T) {
		stamp := publicationTime(&original, true)
		if stamp == nil || !stamp.Equal(original) {
			t.Errorf("stamp = %v, want %v", stamp, original)
		}
	})

	t.Run("unpublish keeps the stamp", func(t *testing.T) {
		stamp := publicationTime(&original, false)
		if stamp == nil || !stamp.Equal(original) {
			t.Errorf("stamp = %v, want %v", stamp, original)
		}
	})

	t.Run("draft stays unstamped", func(t *testing.T) {
		if stamp := publicationTime(nil, false); stamp != nil {
			t.Errorf("stamp = %v, want nil", stamp)
		}
	})
}
