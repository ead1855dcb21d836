package session

import (
	"errors"
	"testing"
	"time"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
)

func testWindow() model.SemesterWindow {
	return model.SemesterWindow{
		SemesterStart: "2025-01-06",
		SemesterEnd:   "2025-05-01",
		Timezone:      "UTC",
	}
}

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(8, time.Minute)

	session, err := store.Create(testWindow(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.ID == "" {
		t.Fatal("session has no ID")
	}
	if session.Version != 0 {
		t.Errorf("fresh session should be version 0, got %d", session.Version)
	}

	got, err := store.Get(session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != session.ID {
		t.Errorf("got wrong session: %s", got.ID)
	}

	_, err = store.Get("nope")
	if !errors.Is(err, schedule.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStoreRejectsInvalidWindow(t *testing.T) {
	store := NewStore(8, time.Minute)

	_, err := store.Create(model.SemesterWindow{
		SemesterStart: "2025-05-01",
		SemesterEnd:   "2025-01-06",
		Timezone:      "UTC",
	}, nil)
	if err == nil {
		t.Fatal("expected invalid window to be rejected at session creation")
	}
}

func TestSetPlanInvalidatesDownstream(t *testing.T) {
	store := NewStore(8, time.Minute)
	session, _ := store.Create(testWindow(), nil)

	if _, err := store.SetPlan(session.ID, schedule.MutationPlan{Preview: "v1"}); err != nil {
		t.Fatalf("SetPlan: %v", err)
	}
	if _, err := store.SetConflicts(session.ID, schedule.ConflictReport{Blocking: true}); err != nil {
		t.Fatalf("SetConflicts: %v", err)
	}

	updated, err := store.SetPlan(session.ID, schedule.MutationPlan{Preview: "v2"})
	if err != nil {
		t.Fatalf("SetPlan: %v", err)
	}
	if updated.Version != 2 {
		t.Errorf("expected version 2 after two plans, got %d", updated.Version)
	}
	if updated.Conflicts != nil {
		t.Error("stale conflict report must be cleared by a new plan")
	}
	if updated.Plan.Preview != "v2" {
		t.Errorf("plan not replaced: %s", updated.Plan.Preview)
	}
}

func TestSetNegotiationPromotesUpdatedPlan(t *testing.T) {
	store := NewStore(8, time.Minute)
	session, _ := store.Create(testWindow(), nil)

	store.SetPlan(session.ID, schedule.MutationPlan{Preview: "original"})
	store.SetConflicts(session.ID, schedule.ConflictReport{Blocking: true})

	updated, err := store.SetNegotiation(session.ID, schedule.NegotiationOutcome{
		UpdatedPlan: schedule.MutationPlan{Preview: "negotiated", RequiresConfirmation: true},
	})
	if err != nil {
		t.Fatalf("SetNegotiation: %v", err)
	}
	if updated.Plan.Preview != "negotiated" {
		t.Errorf("negotiated plan should become current: %s", updated.Plan.Preview)
	}
	if updated.Conflicts != nil {
		t.Error("conflict report belongs to the old plan and must be cleared")
	}
	if updated.Version != 2 {
		t.Errorf("negotiation should bump the version, got %d", updated.Version)
	}
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	store := NewStore(8, time.Minute)
	session, _ := store.Create(testWindow(), nil)

	got, err := store.Get(session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Mutating a returned session must not leak into the store.
	got.Version = 99
	got.Events = append(got.Events, model.ScheduleEvent{Title: "Rogue"})

	fresh, err := store.Get(session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh.Version != 0 {
		t.Errorf("store version changed through a caller's copy: %d", fresh.Version)
	}

	// And a store-side update must not change already-handed-out copies.
	if _, err := store.SetPlan(session.ID, schedule.MutationPlan{Preview: "v1"}); err != nil {
		t.Fatalf("SetPlan: %v", err)
	}
	if fresh.Plan != nil {
		t.Error("previously returned copy observed a later update")
	}
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(8, 50*time.Millisecond)
	session, _ := store.Create(testWindow(), nil)

	time.Sleep(80 * time.Millisecond)

	_, err := store.Get(session.ID)
	if !errors.Is(err, schedule.ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}
