package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return &cli.Context{Store: store}
}

func TestShowCmd(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&ShowCmd{}).Run(ctx); err != nil {
		t.Errorf("settings show failed: %v", err)
	}
}

func TestSetCmd(t *testing.T) {
	ctx := setupTestDB(t)

	enabled := false
	grace := 30
	tz := "UTC"
	if err := (&SetCmd{NotificationsEnabled: &enabled, GracePeriodMin: &grace, Timezone: &tz}).Run(ctx); err != nil {
		t.Fatalf("settings set failed: %v", err)
	}

	got, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		t.Fatal(err)
	}
	if got.NotificationsEnabled || got.NotificationGracePeriodMin != 30 || got.Timezone != "UTC" {
		t.Errorf("settings = %+v", got)
	}
}

func TestSetCmdRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  SetCmd
	}{
		{"bad timezone", SetCmd{Timezone: ptr("Mars/Olympus")}},
		{"grace too long", SetCmd{GracePeriodMin: ptr(500)}},
		{"negative grace", SetCmd{GracePeriodMin: ptr(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestDB(t)
			before, _ := ctx.Store.GetSettings(ctx.Context())
			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected error")
			}
			after, _ := ctx.Store.GetSettings(ctx.Context())
			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("settings changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	model := "gemini-custom"
	if err := (&SetCmd{TextModel: &model}).Run(src); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := (&ExportCmd{Path: path}).Run(src); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "text_model: gemini-custom") {
		t.Errorf("export missing text_model:\n%s", data)
	}

	dst := setupTestDB(t)
	if err := (&ImportCmd{Path: path}).Run(dst); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	want, _ := src.Store.GetSettings(src.Context())
	got, _ := dst.Store.GetSettings(dst.Context())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("imported settings mismatch (-want +got):\n%s", diff)
	}
}

func TestImportPartialAndUnknownKeys(t *testing.T) {
	ctx := setupTestDB(t)
	before, _ := ctx.Store.GetSettings(ctx.Context())

	partial := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(partial, []byte("notification_grace_period_min: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := (&ImportCmd{Path: partial}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	got, _ := ctx.Store.GetSettings(ctx.Context())
	before.NotificationGracePeriodMin = 5
	if diff := cmp.Diff(before, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	unknown := filepath.Join(t.TempDir(), "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("day_start: \"07:00\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := (&ImportCmd{Path: unknown}).Run(ctx); err == nil {
		t.Error("expected error for unknown key")
	}
}

func ptr[T any](v T) *T { return &v }
