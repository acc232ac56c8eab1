package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func writeDB(t *testing.T, path, value string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v TEXT)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO kv (k, v) VALUES ('name', ?) ON CONFLICT (k) DO UPDATE SET v = excluded.v`, value); err != nil {
		t.Fatal(err)
	}
}

func readDB(t *testing.T, path string) string {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var v string
	if err := db.QueryRow(`SELECT v FROM kv WHERE k = 'name'`).Scan(&v); err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return v
}

func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "manifest.db")
	writeDB(t, dbPath, "original")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	m := NewManager(dbPath)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestCreateAndListBackups(t *testing.T) {
	m, now := newTestManager(t)

	first, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error: %v", err)
	}
	*now = now.Add(time.Minute)
	second, err := m.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	backups, err := m.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("got %d backups, want 2", len(backups))
	}
	if backups[0].Path != second || backups[1].Path != first {
		t.Errorf("backups not newest first: %+v", backups)
	}
	if got := readDB(t, first); got != "original" {
		t.Errorf("backup content = %q, want original", got)
	}
}

func TestSameSecondBackupsAreKept(t *testing.T) {
	m, _ := newTestManager(t)
	first, err := m.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("second backup overwrote the first: %s", first)
	}
	backups, _ := m.ListBackups()
	if len(backups) != 2 || backups[0].Path != second {
		t.Errorf("backups = %+v, want %s first", backups, second)
	}
}

func TestPrune(t *testing.T) {
	m, now := newTestManager(t)
	for i := 0; i < MaxBackups+3; i++ {
		if _, err := m.CreateBackup(); err != nil {
			t.Fatal(err)
		}
		*now = now.Add(time.Hour)
	}
	backups, err := m.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("got %d backups, want %d", len(backups), MaxBackups)
	}
}

func TestRestoreBackup(t *testing.T) {
	m, now := newTestManager(t)
	saved, err := m.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	writeDB(t, m.dbPath, "changed")
	*now = now.Add(time.Minute)

	if err := m.RestoreBackup(saved); err != nil {
		t.Fatalf("RestoreBackup() error: %v", err)
	}
	if got := readDB(t, m.dbPath); got != "original" {
		t.Errorf("database = %q, want original", got)
	}

	backups, _ := m.ListBackups()
	if len(backups) != 2 {
		t.Fatalf("expected a safety backup of the replaced database, got %d backups", len(backups))
	}
	if got := readDB(t, backups[0].Path); got != "changed" {
		t.Errorf("safety backup = %q, want changed", got)
	}
}

func TestRestoreRejectsInvalidFile(t *testing.T) {
	m, _ := newTestManager(t)
	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := m.RestoreBackup(bogus); err == nil {
		t.Fatal("expected error restoring an invalid file")
	}
	if got := readDB(t, m.dbPath); got != "original" {
		t.Errorf("database changed to %q", got)
	}
}

func TestUnsupportedStorage(t *testing.T) {
	m := NewManager("postgresql")
	if _, err := m.CreateBackup(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("CreateBackup() error = %v, want ErrUnsupported", err)
	}
}
