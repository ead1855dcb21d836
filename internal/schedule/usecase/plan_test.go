package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
)

func TestBuildPlan(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})

	events := []model.ScheduleEvent{
		classEvent("Algorithms", model.Wednesday, "09:00", "10:00"),
		classEvent("Databases", model.Friday, "14:00", "16:00"),
	}

	plan, err := uc.BuildPlan(context.Background(), events, testWindow())
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(plan.Operations) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(plan.Operations))
	}
	if !plan.RequiresConfirmation {
		t.Error("new plans must require confirmation")
	}

	// Semester starts Monday 2025-01-06; first Wednesday is the 8th.
	op := plan.Operations[0].(schedule.CreateRecurringOp)
	wantStart := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
	if !op.FirstStart.Equal(wantStart) {
		t.Errorf("first occurrence: got %v, want %v", op.FirstStart, wantStart)
	}
	if !op.FirstEnd.Equal(wantStart.Add(time.Hour)) {
		t.Errorf("first end: got %v", op.FirstEnd)
	}

	if !strings.HasPrefix(op.RRule, "RRULE:") {
		t.Errorf("rrule missing prefix: %s", op.RRule)
	}
	for _, want := range []string{"FREQ=WEEKLY", "BYDAY=WE", "UNTIL=20250501T235959Z"} {
		if !strings.Contains(op.RRule, want) {
			t.Errorf("rrule missing %s: %s", want, op.RRule)
		}
	}

	if !strings.Contains(plan.Preview, "Algorithms") || !strings.Contains(plan.Preview, "Databases") {
		t.Errorf("preview should name all events: %s", plan.Preview)
	}
}

func TestBuildPlanOnceEvent(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})

	exam := classEvent("Final Exam", model.Monday, "10:00", "12:00")
	exam.Recurrence = model.RecurrenceOnce

	plan, err := uc.BuildPlan(context.Background(), []model.ScheduleEvent{exam}, testWindow())
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}

	op := plan.Operations[0].(schedule.CreateRecurringOp)
	if !strings.Contains(op.RRule, "COUNT=1") {
		t.Errorf("one-off events should carry COUNT=1: %s", op.RRule)
	}
}

func TestBuildPlanDropsInvalidEvents(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})

	backwards := classEvent("Backwards", model.Tuesday, "15:00", "14:00")
	unknown := classEvent("Mystery Seminar", model.Thursday, "10:00", "11:00")
	unknown.Recurrence = model.RecurrenceUnknown
	badDay := classEvent("Nowhere", "someday", "10:00", "11:00")

	events := []model.ScheduleEvent{
		classEvent("Algorithms", model.Wednesday, "09:00", "10:00"),
		backwards,
		unknown,
		badDay,
	}

	plan, err := uc.BuildPlan(context.Background(), events, testWindow())
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(plan.Operations) != 1 {
		t.Fatalf("expected only the valid event, got %d operations", len(plan.Operations))
	}
	for _, dropped := range []string{"Backwards", "Mystery Seminar", "Nowhere"} {
		if !strings.Contains(plan.Preview, dropped) {
			t.Errorf("preview should note dropped event %q: %s", dropped, plan.Preview)
		}
	}
}

func TestBuildPlanInvalidWindow(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})
	event := classEvent("Algorithms", model.Wednesday, "09:00", "10:00")

	cases := []model.SemesterWindow{
		{SemesterStart: "2025-05-01", SemesterEnd: "2025-01-06", Timezone: "UTC"},
		{SemesterStart: "not-a-date", SemesterEnd: "2025-05-01", Timezone: "UTC"},
		{SemesterStart: "2025-01-06", SemesterEnd: "2025-05-01", Timezone: "Mars/Olympus"},
	}
	for _, window := range cases {
		_, err := uc.BuildPlan(context.Background(), []model.ScheduleEvent{event}, window)
		if !errors.Is(err, schedule.ErrInvalidSemesterWindow) {
			t.Errorf("window %+v: expected ErrInvalidSemesterWindow, got %v", window, err)
		}
	}
}

func TestBuildPlanNoEvents(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})
	_, err := uc.BuildPlan(context.Background(), nil, testWindow())
	if !errors.Is(err, schedule.ErrNoEvents) {
		t.Fatalf("expected ErrNoEvents, got %v", err)
	}
}
