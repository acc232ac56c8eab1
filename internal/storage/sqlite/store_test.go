package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleState() models.State {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	acked := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	return models.State{
		Profile: models.UserProfile{
			ID:                "user-1",
			Name:              "Ada",
			PhotoRef:          "/photos/ada.jpg",
			IsOnboarded:       true,
			ScheduleSet:       true,
			AffirmationStreak: 4,
			LastAcknowledged:  &acked,
			ReminderTimes:     models.ReminderTimes{Morning: "07:30", Evening: "21:00"},
		},
		Goals: []models.VisionGoal{
			{ID: "g2", Title: "Second", Categories: []string{"Health"}, CreatedAt: created},
			{ID: "g1", Title: "First", Categories: []string{"Career", "Finance"}, TargetDate: "2027-01-01", CreatedAt: created, ImageRef: "/media/g1.png"},
		},
		Rituals: []models.DailyRitual{
			{ID: "r1", GoalID: "g1", Title: "Write", Completed: true, LastCompleted: &created},
			{ID: "r2", GoalID: "g2", Title: "Walk"},
		},
		Gratitude: []models.GratitudeEntry{{ID: "t1", Text: "Sunshine", CreatedAt: created}},
		LifestyleHistory: []models.LifestyleShift{
			{ID: "l2", ImageRef: "/media/l2.png", Prompt: "newer", CreatedAt: acked},
			{ID: "l1", ImageRef: "/media/l1.png", Prompt: "older", CreatedAt: created},
		},
		Affirmation: models.Affirmation{Text: "I am calm.", Type: models.AffirmationEvening, DateGenerated: "2026-03-02", Acknowledged: true},
		Screen:      models.ScreenTimeline,
	}
}

func TestStateRoundTripPreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	want := sampleState()

	if err := store.SaveState(ctx, want); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}
	got, err := store.LoadState(ctx)
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveStateReplaces(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	if err := store.SaveState(ctx, sampleState()); err != nil {
		t.Fatal(err)
	}
	next := sampleState()
	next.Goals = next.Goals[:1]
	next.Rituals = nil
	if err := store.SaveState(ctx, next); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadState(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Goals) != 1 || got.Goals[0].ID != "g2" {
		t.Errorf("goals = %+v, want only g2", got.Goals)
	}
	if len(got.Rituals) != 0 {
		t.Errorf("rituals = %+v, want none", got.Rituals)
	}
}

func TestLoadStateFreshDatabase(t *testing.T) {
	store := setupTestStore(t)
	st, err := store.LoadState(context.Background())
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}
	if st.Profile.Name != "" || len(st.Goals) != 0 || st.Screen != "" {
		t.Errorf("expected empty state, got %+v", st)
	}
}

func TestInitWritesDefaultSettings(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	if settings.Timezone != "Local" || !settings.NotificationsEnabled || settings.NotificationGracePeriodMin != 10 {
		t.Errorf("unexpected defaults: %+v", settings)
	}
	if settings.MediaDir == "" {
		t.Error("expected a default media dir")
	}

	settings.Timezone = "Europe/Berlin"
	settings.NotificationsEnabled = false
	if err := store.SaveSettings(ctx, settings); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(settings, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	// Init on an existing database keeps saved settings.
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	again, _ := store.GetSettings(ctx)
	if again.Timezone != "Europe/Berlin" {
		t.Errorf("Init overwrote settings: %+v", again)
	}
}

func TestReminders(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	reminders := []models.Reminder{
		{ID: "e", Slot: models.AffirmationEvening, Message: "evening", Time: "20:00", Active: true, CreatedAt: now},
		{ID: "m", Slot: models.AffirmationMorning, Message: "morning", Time: "08:00", Active: true, CreatedAt: now},
	}
	if err := store.SaveReminders(ctx, reminders); err != nil {
		t.Fatalf("SaveReminders() error: %v", err)
	}

	got, err := store.GetReminders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "m" || got[1].ID != "e" {
		t.Fatalf("reminders = %+v, want morning then evening", got)
	}

	if err := store.MarkReminderSent(ctx, "m", now); err != nil {
		t.Fatalf("MarkReminderSent() error: %v", err)
	}
	got, _ = store.GetReminders(ctx)
	if got[0].LastSent == nil || !got[0].LastSent.Equal(now) {
		t.Errorf("LastSent = %v, want %v", got[0].LastSent, now)
	}

	if err := store.MarkReminderSent(ctx, "missing", now); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("MarkReminderSent(missing) = %v, want ErrNotFound", err)
	}
}

func TestSaveRemindersValidates(t *testing.T) {
	store := setupTestStore(t)
	err := store.SaveReminders(context.Background(), []models.Reminder{
		{ID: "x", Slot: models.AffirmationMorning, Message: "m", Time: "25:99"},
	})
	if err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() = %v, want ErrNotInitialized", err)
	}
	if _, err := store.LoadState(context.Background()); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("LoadState() = %v, want ErrNotInitialized", err)
	}
}

func TestLoadExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatal(err)
	}
	if err := first.SaveState(context.Background(), sampleState()); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer second.Close()
	st, err := second.LoadState(context.Background())
	if err != nil || st.Profile.Name != "Ada" {
		t.Errorf("LoadState() = %+v, %v", st.Profile, err)
	}
}
