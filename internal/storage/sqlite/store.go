package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/migration"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/storage"
	"github.com/julianstephens/manifest/internal/storage/sqldb"
	"github.com/julianstephens/manifest/migrations"
)

var _ storage.Provider = (*Store)(nil)

type Store struct {
	path string
	db   *sql.DB
	repo *sqldb.Repo
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	s.db = db
	s.repo = sqldb.New(db, sqldb.SQLite)
	return nil
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	ctx := context.Background()
	runner, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := runner.Apply(ctx, func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := s.repo.GetSettings(ctx); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		defaults := models.DefaultSettings()
		defaults.MediaDir = filepath.Join(dir, constants.MediaDirName)
		if err := s.repo.SaveSettings(ctx, defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}
	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Validate(context.Background())
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db, s.repo = nil, nil
		return err
	}
	return nil
}

func (s *Store) Migrate(ctx context.Context, logFn func(string)) (int, error) {
	if s.db == nil {
		return 0, storage.ErrNotInitialized
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.Apply(ctx, logFn)
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) LoadState(ctx context.Context) (models.State, error) {
	if s.repo == nil {
		return models.State{}, storage.ErrNotInitialized
	}
	return s.repo.LoadState(ctx)
}

func (s *Store) SaveState(ctx context.Context, st models.State) error {
	if s.repo == nil {
		return storage.ErrNotInitialized
	}
	return s.repo.SaveState(ctx, st)
}

func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	if s.repo == nil {
		return models.Settings{}, storage.ErrNotInitialized
	}
	return s.repo.GetSettings(ctx)
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	if s.repo == nil {
		return storage.ErrNotInitialized
	}
	return s.repo.SaveSettings(ctx, settings)
}

func (s *Store) GetReminders(ctx context.Context) ([]models.Reminder, error) {
	if s.repo == nil {
		return nil, storage.ErrNotInitialized
	}
	return s.repo.GetReminders(ctx)
}

func (s *Store) SaveReminders(ctx context.Context, reminders []models.Reminder) error {
	if s.repo == nil {
		return storage.ErrNotInitialized
	}
	return s.repo.SaveReminders(ctx, reminders)
}

func (s *Store) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	if s.repo == nil {
		return storage.ErrNotInitialized
	}
	return s.repo.MarkReminderSent(ctx, id, at)
}

func (s *Store) GetConfigPath() string {
	return s.path
}
