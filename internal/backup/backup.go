// Package backup keeps rotating file copies of the SQLite database.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/logger"
)

// MaxBackups is how many backups are kept; older ones are pruned.
const MaxBackups = 14

const timestampFormat = "20060102-150405"

// ErrUnsupported is returned for storage that is not a local database file.
var ErrUnsupported = errors.New("backups are only supported for SQLite storage")

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	dbPath    string
	backupDir string
	now       func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), "backups"),
		now:       time.Now,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) supported() error {
	info, err := os.Stat(m.dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrUnsupported
		}
		return err
	}
	if info.IsDir() {
		return ErrUnsupported
	}
	return nil
}

// CreateBackup copies the database into the backup directory and prunes old
// backups. It returns the new backup's path.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(true)
}

func (m *Manager) createBackup(rotate bool) (string, error) {
	if err := m.supported(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := m.now().Format(timestampFormat)
	dest := filepath.Join(m.backupDir, fmt.Sprintf("%s-%s.db", constants.AppName, stamp))
	for i := 2; fileExists(dest); i++ {
		dest = filepath.Join(m.backupDir, fmt.Sprintf("%s-%s-%d.db", constants.AppName, stamp, i))
	}
	if err := m.snapshot(dest); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}
	logger.Info("Backup created", "path", dest)

	if rotate {
		if err := m.prune(); err != nil {
			logger.Warn("Failed to prune old backups", "error", err)
		}
	}
	return dest, nil
}

// snapshot writes a consistent copy of the database to dest with VACUUM INTO,
// falling back to a plain file copy.
func (m *Manager) snapshot(dest string) error {
	db, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		return copyFile(m.dbPath, dest)
	}
	return nil
}

func verify(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

// verifyFile checks that path is a readable SQLite database.
func verifyFile(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return verify(db)
}

// ListBackups returns the backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	prefix := constants.AppName + "-"
	var backups []Info
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".db") {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".db")
		if len(stamp) < len(timestampFormat) {
			continue
		}
		ts, err := time.ParseInLocation(timestampFormat, stamp[:len(timestampFormat)], time.Local)
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		backups = append(backups, Info{Path: filepath.Join(m.backupDir, name), Timestamp: ts, Size: info.Size()})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			// Same second: "-N" suffixes sort after the bare name.
			pi, pj := backups[i].Path, backups[j].Path
			if len(pi) != len(pj) {
				return len(pi) > len(pj)
			}
			return pi > pj
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// RestoreBackup replaces the database with the backup at path. The current
// database is backed up first. The caller must close any open connection.
func (m *Manager) RestoreBackup(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup file not found: %w", err)
	}
	if err := verifyFile(path); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	tmp := m.dbPath + ".restore"
	if err := copyFile(path, tmp); err != nil {
		return fmt.Errorf("failed to copy backup: %w", err)
	}
	if fileExists(m.dbPath) {
		// No rotation here so the backup being restored cannot be pruned.
		if _, err := m.createBackup(false); err != nil {
			os.Remove(tmp)
			return fmt.Errorf("failed to back up current database: %w", err)
		}
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace database: %w", err)
	}
	// Stale journal files belong to the replaced database.
	for _, suffix := range []string{"-wal", "-shm", "-journal"} {
		os.Remove(m.dbPath + suffix)
	}
	logger.Info("Backup restored", "from", path)
	return nil
}

func (m *Manager) prune() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return err
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
