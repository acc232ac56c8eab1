package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestUserPatchApply(t *testing.T) {
	name := "Ada"
	onboarded := true
	base := UserProfile{
		Name:          "Old",
		PhotoRef:      "photo.png",
		ReminderTimes: ReminderTimes{Morning: "07:00", Evening: "21:00"},
	}

	got := UserPatch{Name: &name, IsOnboarded: &onboarded}.Apply(base)
	want := UserProfile{
		Name:          "Ada",
		PhotoRef:      "photo.png",
		IsOnboarded:   true,
		ReminderTimes: ReminderTimes{Morning: "07:00", Evening: "21:00"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}

	if !(UserPatch{}).Empty() {
		t.Error("zero patch should be empty")
	}
	if (UserPatch{Name: &name}).Empty() {
		t.Error("patch with name should not be empty")
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	done := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	orig := State{
		Goals:   []VisionGoal{{ID: "g1", Categories: []string{"Health"}}},
		Rituals: []DailyRitual{{ID: "r1", GoalID: "g1", LastCompleted: &done}},
		Profile: UserProfile{LastAcknowledged: &done},
	}

	clone := orig.Clone()
	if diff := cmp.Diff(orig, clone); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	clone.Goals[0].Categories[0] = "Career"
	*clone.Rituals[0].LastCompleted = done.Add(time.Hour)
	*clone.Profile.LastAcknowledged = done.Add(time.Hour)

	if orig.Goals[0].Categories[0] != "Health" {
		t.Error("mutating clone categories changed the original")
	}
	if !orig.Rituals[0].LastCompleted.Equal(done) {
		t.Error("mutating clone ritual timestamp changed the original")
	}
	if !orig.Profile.LastAcknowledged.Equal(done) {
		t.Error("mutating clone acknowledgment changed the original")
	}
}
