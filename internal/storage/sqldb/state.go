package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/manifest/internal/models"
)

func (r *Repo) LoadState(ctx context.Context) (models.State, error) {
	var st models.State
	var err error

	if st.Profile, err = r.loadProfile(ctx); err != nil {
		return models.State{}, err
	}
	if st.Goals, err = r.loadGoals(ctx); err != nil {
		return models.State{}, err
	}
	if st.Rituals, err = r.loadRituals(ctx); err != nil {
		return models.State{}, err
	}
	if st.Gratitude, err = r.loadGratitude(ctx); err != nil {
		return models.State{}, err
	}
	if st.LifestyleHistory, err = r.loadLifestyle(ctx); err != nil {
		return models.State{}, err
	}

	var ack bool
	var kind string
	err = r.db.QueryRowContext(ctx, `SELECT screen, affirmation_text, affirmation_type, affirmation_date, affirmation_acknowledged
		FROM app_state WHERE id = 1`).Scan(&st.Screen, &st.Affirmation.Text, &kind, &st.Affirmation.DateGenerated, &ack)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.State{}, fmt.Errorf("failed to load app state: %w", err)
	}
	st.Affirmation.Type = models.AffirmationType(kind)
	st.Affirmation.Acknowledged = ack

	return st, nil
}

func (r *Repo) loadProfile(ctx context.Context) (models.UserProfile, error) {
	var p models.UserProfile
	var lastAck sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT id, name, photo_ref, is_onboarded, schedule_set, affirmation_streak,
		last_acknowledged, morning_time, evening_time FROM profile LIMIT 1`).Scan(
		&p.ID, &p.Name, &p.PhotoRef, &p.IsOnboarded, &p.ScheduleSet, &p.AffirmationStreak,
		&lastAck, &p.ReminderTimes.Morning, &p.ReminderTimes.Evening)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, nil
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if p.LastAcknowledged, err = parseOptionalTime(lastAck); err != nil {
		return models.UserProfile{}, fmt.Errorf("parsing last_acknowledged: %w", err)
	}
	return p, nil
}

func (r *Repo) loadGoals(ctx context.Context) ([]models.VisionGoal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, categories, target_date, created_at, image_ref
		FROM goals ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	defer rows.Close()

	var goals []models.VisionGoal
	for rows.Next() {
		var g models.VisionGoal
		var cats, createdAt string
		if err := rows.Scan(&g.ID, &g.Title, &cats, &g.TargetDate, &createdAt, &g.ImageRef); err != nil {
			return nil, err
		}
		if g.Categories, err = decodeCategories(cats); err != nil {
			return nil, fmt.Errorf("parsing categories of goal %s: %w", g.ID, err)
		}
		if g.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of goal %s: %w", g.ID, err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *Repo) loadRituals(ctx context.Context) ([]models.DailyRitual, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, goal_id, title, completed, last_completed
		FROM rituals ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load rituals: %w", err)
	}
	defer rows.Close()

	var rituals []models.DailyRitual
	for rows.Next() {
		var rt models.DailyRitual
		var last sql.NullString
		if err := rows.Scan(&rt.ID, &rt.GoalID, &rt.Title, &rt.Completed, &last); err != nil {
			return nil, err
		}
		if rt.LastCompleted, err = parseOptionalTime(last); err != nil {
			return nil, fmt.Errorf("parsing last_completed of ritual %s: %w", rt.ID, err)
		}
		rituals = append(rituals, rt)
	}
	return rituals, rows.Err()
}

func (r *Repo) loadGratitude(ctx context.Context) ([]models.GratitudeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, text, created_at FROM gratitude ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load gratitude: %w", err)
	}
	defer rows.Close()

	var entries []models.GratitudeEntry
	for rows.Next() {
		var e models.GratitudeEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Text, &createdAt); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of gratitude %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repo) loadLifestyle(ctx context.Context) ([]models.LifestyleShift, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, image_ref, prompt, created_at FROM lifestyle_shifts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load lifestyle history: %w", err)
	}
	defer rows.Close()

	var shifts []models.LifestyleShift
	for rows.Next() {
		var l models.LifestyleShift
		var createdAt string
		if err := rows.Scan(&l.ID, &l.ImageRef, &l.Prompt, &createdAt); err != nil {
			return nil, err
		}
		if l.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of lifestyle shift %s: %w", l.ID, err)
		}
		shifts = append(shifts, l)
	}
	return shifts, rows.Err()
}

func (r *Repo) SaveState(ctx context.Context, st models.State) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"profile", "goals", "rituals", "gratitude", "lifestyle_shifts"} {
			if err := r.exec(ctx, tx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		p := st.Profile
		if err := r.exec(ctx, tx, `INSERT INTO profile (id, name, photo_ref, is_onboarded, schedule_set,
			affirmation_streak, last_acknowledged, morning_time, evening_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.PhotoRef, p.IsOnboarded, p.ScheduleSet, p.AffirmationStreak,
			formatOptionalTime(p.LastAcknowledged), p.ReminderTimes.Morning, p.ReminderTimes.Evening); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		for i, g := range st.Goals {
			cats, err := encodeCategories(g.Categories)
			if err != nil {
				return fmt.Errorf("encoding categories of goal %s: %w", g.ID, err)
			}
			if err := r.exec(ctx, tx, `INSERT INTO goals (id, title, categories, target_date, created_at, image_ref, position)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				g.ID, g.Title, cats, g.TargetDate, formatTime(g.CreatedAt), g.ImageRef, i); err != nil {
				return fmt.Errorf("failed to save goal %s: %w", g.ID, err)
			}
		}

		for i, rt := range st.Rituals {
			if err := r.exec(ctx, tx, `INSERT INTO rituals (id, goal_id, title, completed, last_completed, position)
				VALUES (?, ?, ?, ?, ?, ?)`,
				rt.ID, rt.GoalID, rt.Title, rt.Completed, formatOptionalTime(rt.LastCompleted), i); err != nil {
				return fmt.Errorf("failed to save ritual %s: %w", rt.ID, err)
			}
		}

		for i, e := range st.Gratitude {
			if err := r.exec(ctx, tx, `INSERT INTO gratitude (id, text, created_at, position) VALUES (?, ?, ?, ?)`,
				e.ID, e.Text, formatTime(e.CreatedAt), i); err != nil {
				return fmt.Errorf("failed to save gratitude %s: %w", e.ID, err)
			}
		}

		for i, l := range st.LifestyleHistory {
			if err := r.exec(ctx, tx, `INSERT INTO lifestyle_shifts (id, image_ref, prompt, created_at, position)
				VALUES (?, ?, ?, ?, ?)`,
				l.ID, l.ImageRef, l.Prompt, formatTime(l.CreatedAt), i); err != nil {
				return fmt.Errorf("failed to save lifestyle shift %s: %w", l.ID, err)
			}
		}

		a := st.Affirmation
		if err := r.exec(ctx, tx, `INSERT INTO app_state (id, screen, affirmation_text, affirmation_type,
			affirmation_date, affirmation_acknowledged) VALUES (1, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				screen = excluded.screen,
				affirmation_text = excluded.affirmation_text,
				affirmation_type = excluded.affirmation_type,
				affirmation_date = excluded.affirmation_date,
				affirmation_acknowledged = excluded.affirmation_acknowledged`,
			string(st.Screen), a.Text, string(a.Type), a.DateGenerated, a.Acknowledged); err != nil {
			return fmt.Errorf("failed to save app state: %w", err)
		}
		return nil
	})
}
