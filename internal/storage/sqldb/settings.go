package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/storage"
)

// GetSettings reads the key/value settings table. Keys that are absent take
// their default values; an empty table is reported as storage.ErrNotFound.
func (r *Repo) GetSettings(ctx context.Context) (models.Settings, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(data) == 0 {
		return models.Settings{}, fmt.Errorf("settings: %w", storage.ErrNotFound)
	}

	settings, err := models.MapToSettings(data)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (r *Repo) SaveSettings(ctx context.Context, settings models.Settings) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		for key, value := range models.SettingsToMap(settings) {
			if err := r.exec(ctx, tx, `INSERT INTO settings (key, value) VALUES (?, ?)
				ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
				return fmt.Errorf("failed to save setting %s: %w", key, err)
			}
		}
		return nil
	})
}
