package migration

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"002_add_notes.sql": {Data: []byte("ALTER TABLE items ADD COLUMN notes TEXT;")},
		"001_init.sql":      {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")},
		"README.md":         {Data: []byte("ignored")},
	}
}

func TestMigrationsSorted(t *testing.T) {
	r := NewRunner(nil, testFS())
	ms, err := r.Migrations()
	if err != nil {
		t.Fatalf("Migrations() error: %v", err)
	}
	if len(ms) != 2 || ms[0].Version != 1 || ms[1].Version != 2 {
		t.Fatalf("unexpected migrations: %+v", ms)
	}
	if ms[1].Name != "add_notes" {
		t.Errorf("Name = %q, want add_notes", ms[1].Name)
	}
}

func TestMigrationsRejectBadNames(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"no underscore": {"001.sql": {Data: []byte("")}},
		"zero version":  {"000_init.sql": {Data: []byte("")}},
		"not a number":  {"abc_init.sql": {Data: []byte("")}},
		"duplicate": {
			"001_a.sql": {Data: []byte("")},
			"01_b.sql":  {Data: []byte("")},
		},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewRunner(nil, fsys).Migrations(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestApplyIsIncremental(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	r := NewRunner(db, testFS())

	var logs []string
	n, err := r.Apply(ctx, func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if n != 2 {
		t.Errorf("applied = %d, want 2", n)
	}
	if len(logs) == 0 {
		t.Error("expected progress lines")
	}

	v, err := r.CurrentVersion(ctx)
	if err != nil || v != 2 {
		t.Fatalf("CurrentVersion() = %d, %v; want 2", v, err)
	}

	n, err = r.Apply(ctx, nil)
	if err != nil || n != 0 {
		t.Errorf("second Apply() = %d, %v; want 0, nil", n, err)
	}

	if _, err := db.Exec("INSERT INTO items (id, notes) VALUES ('a', 'b')"); err != nil {
		t.Errorf("schema not applied: %v", err)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	fsys := testFS()
	fsys["003_broken.sql"] = &fstest.MapFile{Data: []byte("THIS IS NOT SQL")}

	r := NewRunner(db, fsys)
	n, err := r.Apply(ctx, nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if n != 2 {
		t.Errorf("applied = %d, want 2", n)
	}
	if v, _ := r.CurrentVersion(ctx); v != 2 {
		t.Errorf("version = %d, want 2", v)
	}
}

func TestValidateRejectsNewerSchema(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	r := NewRunner(db, testFS())
	if _, err := r.Apply(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 9"); err != nil {
		t.Fatal(err)
	}

	if err := r.Validate(ctx); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Validate() = %v, want ErrSchemaTooNew", err)
	}
	if _, err := r.Apply(ctx, nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Apply() = %v, want ErrSchemaTooNew", err)
	}
}
