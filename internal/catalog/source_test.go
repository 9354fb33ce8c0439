package catalog_test

import (
	"errors"
	"testing"

	"github.com/mangetsu-dev/mangetsu/internal/catalog"
)

func TestComposeID(t *testing.T) {
	got := catalog.ComposeID("dx", "a1b2-c3d4")
	if got != "dx:a1b2-c3d4" {
		t.Errorf("ComposeID() = %q, want %q", got, "dx:a1b2-c3d4")
	}
}

func TestSplitID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantSource string
		wantNative string
		wantErr    bool
	}{
		{"mangadx id", "dx:a1b2-c3d4", "dx", "a1b2-c3d4", false},
		{"mangaplus id", "plus:100020", "plus", "100020", false},
		{"native id with colon", "dx:urn:x", "dx", "urn:x", false},
		{"no separator", "a1b2-c3d4", "", "", true},
		{"empty source", ":100020", "", "", true},
		{"empty native id", "dx:", "", "", true},
		{"empty string", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, native, err := catalog.SplitID(tt.id)
			if tt.wantErr {
				if !errors.Is(err, catalog.ErrUnknownSource) {
					t.Fatalf("SplitID(%q) error = %v, want ErrUnknownSource", tt.id, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitID(%q) error = %v", tt.id, err)
			}
			if source != tt.wantSource || native != tt.wantNative {
				t.Errorf("SplitID(%q) = (%q, %q), want (%q, %q)",
					tt.id, source, native, tt.wantSource, tt.wantNative)
			}
		})
	}
}
