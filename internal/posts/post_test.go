package posts_test

import (
	"testing"

	"github.com/mangetsu-dev/mangetsu/internal/posts"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Spring 2026 Reading List!", "spring-2026-reading-list"},
		{"  Leading & trailing  ", "leading-trailing"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER_case__mix", "upper-case-mix"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := posts.Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
