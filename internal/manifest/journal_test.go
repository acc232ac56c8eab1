package manifest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/manifest/internal/models"
)

func TestAddToLifestyleHistoryPrepends(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	s := New(models.State{}, WithClock(clock.Now), WithIDFunc(seqIDs()))

	first := s.AddToLifestyleHistory(models.LifestyleShift{ImageRef: "a.png", Prompt: "sailing"})
	clock.Set(clock.Now().Add(time.Minute))
	second := s.AddToLifestyleHistory(models.LifestyleShift{ID: "ignored", ImageRef: "b.png", Prompt: "penthouse"})

	h := s.LifestyleHistory()
	if len(h) != 2 {
		t.Fatalf("history length = %d, want 2", len(h))
	}
	if h[0].ID != second || h[1].ID != first {
		t.Errorf("history order = [%s %s], want [%s %s]", h[0].ID, h[1].ID, second, first)
	}
	if h[0].ID == "ignored" {
		t.Error("caller-provided id should be replaced")
	}
	if !h[0].CreatedAt.After(h[1].CreatedAt) {
		t.Error("newest entry should have the later timestamp")
	}
}

func TestSimulateLifestyle(t *testing.T) {
	t.Run("success records history", func(t *testing.T) {
		s := New(models.State{}, WithLifestyleSimulator(&fakeLifestyle{ref: "shift.png"}))
		id, ok := s.SimulateLifestyle(context.Background(), "me.jpg", "running a bakery in Lisbon")
		if !ok || id == "" {
			t.Fatalf("SimulateLifestyle() = %q, %v", id, ok)
		}
		h := s.LifestyleHistory()
		if len(h) != 1 || h[0].ImageRef != "shift.png" || h[0].Prompt != "running a bakery in Lisbon" {
			t.Errorf("history = %+v", h)
		}
	})

	t.Run("failure records nothing", func(t *testing.T) {
		s := New(models.State{}, WithLifestyleSimulator(&fakeLifestyle{err: errors.New("blocked")}))
		if _, ok := s.SimulateLifestyle(context.Background(), "me.jpg", "x"); ok {
			t.Error("SimulateLifestyle() ok = true on failure")
		}
		if len(s.LifestyleHistory()) != 0 {
			t.Error("history should stay empty")
		}
	})

	t.Run("no simulator", func(t *testing.T) {
		s := New(models.State{})
		if _, ok := s.SimulateLifestyle(context.Background(), "me.jpg", "x"); ok {
			t.Error("SimulateLifestyle() ok = true without simulator")
		}
	})
}

func TestAddGratitudeAppends(t *testing.T) {
	s := New(models.State{}, WithIDFunc(seqIDs()))
	s.AddGratitude("Morning coffee")
	s.AddGratitude("A call with mom")

	g := s.Gratitude()
	if len(g) != 2 || g[0].Text != "Morning coffee" || g[1].Text != "A call with mom" {
		t.Errorf("gratitude = %+v", g)
	}
	if g[0].ID == g[1].ID {
		t.Error("gratitude ids should be unique")
	}
}
