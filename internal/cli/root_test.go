package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/manifest/internal/generator"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/storage/sqlite"
)

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz"}
	tests := []struct {
		prefix  string
		want    string
		wantErr bool
	}{
		{"abc", "abc123", false},
		{"xyz", "xyz", false},
		{"ab", "", true},
		{"q", "", true},
		{" ", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveID(ids, tt.prefix)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ResolveID(%q) = %q, %v", tt.prefix, got, err)
		}
	}
}

func TestOpenUpdateSave(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	ctx := &Context{Store: store, Generator: generator.Offline{}, Now: func() time.Time { return now }}

	err := ctx.Update(func(s *Session) error {
		s.AddGratitude("coffee")
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	s, err := ctx.Open()
	if err != nil {
		t.Fatal(err)
	}
	if g := s.Gratitude(); len(g) != 1 || g[0].Text != "coffee" {
		t.Errorf("gratitude = %+v", g)
	}
	if s.Screen() != models.ScreenOnboarding {
		t.Errorf("screen = %s, want onboarding", s.Screen())
	}
}
