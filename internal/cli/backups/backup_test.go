package backups

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/manifest/internal/backup"
	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/generator"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/storage/sqlite"
)

func TestCreateListRestore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "manifest.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	ctx := &cli.Context{Store: store, Generator: generator.Offline{}}

	if err := store.SaveState(t.Context(), models.State{Profile: models.UserProfile{ID: "u", Name: "Before"}}); err != nil {
		t.Fatal(err)
	}
	if err := (&CreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("CreateCmd.Run() error: %v", err)
	}
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("backups = %v, err = %v", backups, err)
	}

	if err := store.SaveState(t.Context(), models.State{Profile: models.UserProfile{ID: "u", Name: "After"}}); err != nil {
		t.Fatal(err)
	}
	cmd := &RestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("RestoreCmd.Run() error: %v", err)
	}

	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	st, err := store.LoadState(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if st.Profile.Name != "Before" {
		t.Errorf("profile name = %q, want Before", st.Profile.Name)
	}
}

func TestRestoreMissingFile(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "manifest.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	if err := (&RestoreCmd{BackupFile: "nope.db", Yes: true}).Run(&cli.Context{Store: store}); err == nil {
		t.Error("expected error for missing backup")
	}
}
