package manifest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/manifest/internal/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type imageCall struct {
	Title      string
	Categories []string
	Photo      string
}

type fakeImages struct {
	mu      sync.Mutex
	ref     string
	err     error
	calls   []imageCall
	started chan struct{}
	release chan struct{}
}

func (f *fakeImages) GenerateGoalImage(ctx context.Context, title string, categories []string, photo string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, imageCall{Title: title, Categories: categories, Photo: photo})
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return f.ref, f.err
}

func (f *fakeImages) Calls() []imageCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]imageCall(nil), f.calls...)
}

type fakeAffirmations struct {
	text  string
	err   error
	kinds []models.AffirmationType
}

func (f *fakeAffirmations) GenerateAffirmation(ctx context.Context, profile models.UserProfile, goals []models.VisionGoal, kind models.AffirmationType) (string, error) {
	f.kinds = append(f.kinds, kind)
	return f.text, f.err
}

type fakeReminders struct {
	err   error
	calls []models.ReminderTimes
}

func (f *fakeReminders) ScheduleReminders(ctx context.Context, times models.ReminderTimes) error {
	f.calls = append(f.calls, times)
	return f.err
}

type fakeLifestyle struct {
	ref string
	err error
}

func (f *fakeLifestyle) SimulateLifestyle(ctx context.Context, photoRef, description string) (string, error) {
	return f.ref, f.err
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
