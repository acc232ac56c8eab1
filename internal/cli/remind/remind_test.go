package remind

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/generator"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/storage/sqlite"
)

type recordingSender struct {
	texts []string
	err   error
}

func (r *recordingSender) Notify(ctx context.Context, text string) error {
	if r.err != nil {
		return r.err
	}
	r.texts = append(r.texts, text)
	return nil
}

func setupTestDB(t *testing.T, now *time.Time, sender *recordingSender) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	st := models.State{Profile: models.UserProfile{ID: "u", Name: "Ada", IsOnboarded: true}}
	if err := store.SaveState(t.Context(), st); err != nil {
		t.Fatal(err)
	}
	return &cli.Context{
		Store:     store,
		Generator: generator.Offline{},
		Sender:    sender,
		Now:       func() time.Time { return *now },
	}
}

func TestScheduleCmd(t *testing.T) {
	now := time.Date(2026, 5, 1, 7, 0, 0, 0, time.UTC)
	ctx := setupTestDB(t, &now, &recordingSender{})

	if err := (&ScheduleCmd{Morning: "07:30", Evening: "21:00"}).Run(ctx); err != nil {
		t.Fatalf("ScheduleCmd.Run() error: %v", err)
	}

	st, _ := ctx.Store.LoadState(ctx.Context())
	if !st.Profile.ScheduleSet || st.Profile.ReminderTimes.Morning != "07:30" || st.Profile.ReminderTimes.Evening != "21:00" {
		t.Errorf("profile = %+v", st.Profile)
	}
	list, err := ctx.Store.GetReminders(ctx.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Time != "07:30" || list[1].Time != "21:00" {
		t.Errorf("reminders = %+v", list)
	}
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Errorf("ListCmd.Run() error: %v", err)
	}
}

func TestScheduleCmdRejectsInvalid(t *testing.T) {
	now := time.Now()
	ctx := setupTestDB(t, &now, &recordingSender{})
	for _, cmd := range []ScheduleCmd{
		{Morning: "25:00", Evening: "20:00"},
		{Morning: "21:00", Evening: "08:00"},
	} {
		if err := cmd.Run(ctx); err == nil {
			t.Errorf("ScheduleCmd%+v: expected error", cmd)
		}
	}
}

func TestNotifyCmd(t *testing.T) {
	now := time.Date(2026, 5, 1, 7, 0, 0, 0, time.UTC)
	sender := &recordingSender{}
	ctx := setupTestDB(t, &now, sender)
	if err := (&ScheduleCmd{Morning: "08:00", Evening: "20:00"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(sender.texts) != 0 {
		t.Fatalf("sent before due: %v", sender.texts)
	}

	now = time.Date(2026, 5, 1, 8, 3, 0, 0, time.UTC)
	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(sender.texts) != 0 {
		t.Fatalf("dry run sent: %v", sender.texts)
	}

	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(sender.texts) != 1 {
		t.Fatalf("sent = %v, want 1 message", sender.texts)
	}
	st, _ := ctx.Store.LoadState(ctx.Context())
	if st.Affirmation.Type != models.AffirmationMorning || st.Affirmation.Text != sender.texts[0] {
		t.Errorf("affirmation = %+v, sent %q", st.Affirmation, sender.texts[0])
	}

	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(sender.texts) != 1 {
		t.Errorf("reminder sent twice in one day: %v", sender.texts)
	}
}

func TestNotifyCmdSenderFailure(t *testing.T) {
	now := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	sender := &recordingSender{err: errors.New("tray not running")}
	ctx := setupTestDB(t, &now, sender)
	if err := (&ScheduleCmd{Morning: "08:00", Evening: "20:00"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatalf("NotifyCmd.Run() error: %v", err)
	}
	list, _ := ctx.Store.GetReminders(ctx.Context())
	for _, r := range list {
		if r.LastSent != nil {
			t.Errorf("reminder %s marked sent after failure", r.Slot)
		}
	}
}
