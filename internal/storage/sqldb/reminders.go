package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/storage"
)

func (r *Repo) GetReminders(ctx context.Context) ([]models.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, slot, message, time, active, last_sent, created_at
		FROM reminders ORDER BY time, slot`)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var rem models.Reminder
		var slot, createdAt string
		var lastSent sql.NullString
		if err := rows.Scan(&rem.ID, &slot, &rem.Message, &rem.Time, &rem.Active, &lastSent, &createdAt); err != nil {
			return nil, err
		}
		rem.Slot = models.AffirmationType(slot)
		if rem.LastSent, err = parseOptionalTime(lastSent); err != nil {
			return nil, fmt.Errorf("parsing last_sent of reminder %s: %w", rem.ID, err)
		}
		if rem.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of reminder %s: %w", rem.ID, err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

// SaveReminders replaces every stored reminder with reminders.
func (r *Repo) SaveReminders(ctx context.Context, reminders []models.Reminder) error {
	for i := range reminders {
		if err := reminders[i].Validate(); err != nil {
			return fmt.Errorf("invalid %s reminder: %w", reminders[i].Slot, err)
		}
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := r.exec(ctx, tx, "DELETE FROM reminders"); err != nil {
			return fmt.Errorf("failed to clear reminders: %w", err)
		}
		for _, rem := range reminders {
			if err := r.exec(ctx, tx, `INSERT INTO reminders (id, slot, message, time, active, last_sent, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				rem.ID, string(rem.Slot), rem.Message, rem.Time, rem.Active,
				formatOptionalTime(rem.LastSent), formatTime(rem.CreatedAt)); err != nil {
				return fmt.Errorf("failed to save %s reminder: %w", rem.Slot, err)
			}
		}
		return nil
	})
}

func (r *Repo) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, r.bind("UPDATE reminders SET last_sent = ? WHERE id = ?"), formatTime(at), id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reminder %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
