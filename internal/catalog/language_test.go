package catalog

import "testing"

func TestLocalized(t *testing.T) {
	values := map[string]string{
		"en": "One Piece",
		"ja": "ワンピース",
		"es": "One Piece (ES)",
	}

	tests := []struct {
		name   string
		values map[string]string
		lang   string
		want   string
	}{
		{"requested language", values, "es", "One Piece (ES)"},
		{"falls back to english", values, "fr", "One Piece"},
		{"falls back to japanese", map[string]string{"ja": "ワンピース", "ko": "원피스"}, "fr", "ワンピース"},
		{"falls back to first key", map[string]string{"ko": "원피스", "zh": "海贼王"}, "fr", "원피스"},
		{"empty map", nil, "en", ""},
		{"empty values skipped", map[string]string{"en": "", "ja": "ワンピース"}, "en", "ワンピース"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := localized(tt.values, tt.lang); got != tt.want {
				t.Errorf("localized(%v, %q) = %q, want %q", tt.values, tt.lang, got, tt.want)
			}
		})
	}
}

func TestPlusLanguageCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "en"},
		{"ENGLISH", "en"},
		{"spanish", "es"},
		{"portuguese_br", "pt-br"},
		{"klingon", "klingon"},
	}

	for _, tt := range tests {
		if got := plusLanguageCode(tt.name); got != tt.want {
			t.Errorf("plusLanguageCode(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := []Manga{{ID: "plus:1"}, {ID: "plus:2"}, {ID: "plus:3"}}

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantIDs  []string
		hasMore  bool
	}{
		{"first page", 1, 2, []string{"plus:1", "plus:2"}, true},
		{"last page", 2, 2, []string{"plus:3"}, false},
		{"past the end", 5, 2, []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paginate(items, tt.page, tt.pageSize)
			if len(got.Items) != len(tt.wantIDs) {
				t.Fatalf("paginate() items = %d, want %d", len(got.Items), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got.Items[i].ID != id {
					t.Errorf("paginate() items[%d].ID = %q, want %q", i, got.Items[i].ID, id)
				}
			}
			if got.HasMore != tt.hasMore {
				t.Errorf("paginate() hasMore = %v, want %v", got.HasMore, tt.hasMore)
			}
		})
	}
}
