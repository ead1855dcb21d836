package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/pkg/datemath"
	"student-calendar-assistant/pkg/gcalendar"
)

func mustParser(t *testing.T) *datemath.Parser {
	t.Helper()
	parser, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	return parser
}

func TestNegotiateMovesSecondEvent(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})

	plan := buildTestPlan(t, uc,
		classEvent("Algorithms", model.Wednesday, "09:00", "10:00"),
		classEvent("Statistics", model.Wednesday, "09:30", "10:30"),
	)
	report, err := uc.DetectConflicts(context.Background(), plan, testWindow())
	if err != nil {
		t.Fatalf("DetectConflicts: %v", err)
	}

	outcome, err := uc.Negotiate(context.Background(), plan, report, testWindow())
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if len(outcome.AppliedResolutions) != 1 {
		t.Fatalf("expected 1 resolution, got %+v", outcome.AppliedResolutions)
	}

	res := outcome.AppliedResolutions[0]
	if res.OperationIndex != 1 {
		t.Errorf("the later operation should move, got index %d", res.OperationIndex)
	}

	// The original plan must be untouched.
	original := plan.Operations[1].(schedule.CreateRecurringOp)
	if original.Event.StartTime != "09:30" {
		t.Errorf("input plan was mutated: %+v", original.Event)
	}

	// The moved op must be internally consistent.
	moved := outcome.UpdatedPlan.Operations[1].(schedule.CreateRecurringOp)
	if moved.FirstStart.Equal(original.FirstStart) {
		t.Error("operation was not actually moved")
	}
	wantClock := moved.FirstStart.Format("15:04")
	if moved.Event.StartTime != wantClock {
		t.Errorf("event clock %s does not match new start %s", moved.Event.StartTime, wantClock)
	}
	if moved.Event.DayOfWeek != dayOfWeekFor(moved.FirstStart.Weekday()) {
		t.Errorf("weekday %s does not match new start %v", moved.Event.DayOfWeek, moved.FirstStart.Weekday())
	}
	if !strings.Contains(moved.RRule, "BYDAY=") {
		t.Errorf("rrule was not rebuilt: %s", moved.RRule)
	}

	if !outcome.UpdatedPlan.RequiresConfirmation {
		t.Error("renegotiated plans must require confirmation again")
	}
}

func TestNegotiatePrefersSameDay(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})

	plan := buildTestPlan(t, uc,
		classEvent("Algorithms", model.Wednesday, "09:00", "10:00"),
		classEvent("Statistics", model.Wednesday, "09:30", "10:30"),
	)
	report, _ := uc.DetectConflicts(context.Background(), plan, testWindow())

	outcome, err := uc.Negotiate(context.Background(), plan, report, testWindow())
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}

	moved := outcome.UpdatedPlan.Operations[1].(schedule.CreateRecurringOp)
	original := plan.Operations[1].(schedule.CreateRecurringOp)
	if moved.FirstStart.Day() != original.FirstStart.Day() {
		t.Errorf("with a free calendar the same day should win: moved to %v", moved.FirstStart)
	}
}

func TestNegotiateNoFreeSlot(t *testing.T) {
	// Every candidate interval is busy.
	cal := &mockCalendar{
		busy: []gcalendar.BusyInterval{
			{
				Start: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	uc := newTestUseCase(cal)

	plan := buildTestPlan(t, uc,
		classEvent("Algorithms", model.Wednesday, "09:00", "10:00"),
		classEvent("Statistics", model.Wednesday, "09:30", "10:30"),
	)
	report, _ := uc.DetectConflicts(context.Background(), plan, testWindow())

	outcome, err := uc.Negotiate(context.Background(), plan, report, testWindow())
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if len(outcome.AppliedResolutions) != 0 {
		t.Errorf("nothing should be resolved: %+v", outcome.AppliedResolutions)
	}
	if len(outcome.UnresolvedConflicts) == 0 {
		t.Fatal("unresolved conflicts should be reported")
	}
	if !strings.Contains(outcome.UnresolvedConflicts[0], "Statistics") {
		t.Errorf("unresolved note should name the event: %v", outcome.UnresolvedConflicts)
	}
}

func TestApplyResolutionRejectsBadTargets(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})
	plan := buildTestPlan(t, uc, classEvent("Algorithms", model.Wednesday, "09:00", "10:00"))
	plan.Operations = append(plan.Operations, schedule.DeleteOp{EventID: "evt-1"})

	parser := mustParser(t)
	semesterEnd, _ := parser.ParseDate("2025-05-01")

	start := time.Date(2025, 1, 8, 11, 0, 0, 0, time.UTC)
	cases := []schedule.ResolutionOption{
		{OperationIndex: -1, SuggestedStart: start, SuggestedEnd: start.Add(time.Hour)},
		{OperationIndex: 5, SuggestedStart: start, SuggestedEnd: start.Add(time.Hour)},
		{OperationIndex: 1, SuggestedStart: start, SuggestedEnd: start.Add(time.Hour)}, // delete op
		{OperationIndex: 0, SuggestedStart: start, SuggestedEnd: start},                // empty slot
	}
	for i, res := range cases {
		if err := applyResolution(&plan, parser, semesterEnd, res); err == nil {
			t.Errorf("case %d: expected rejection for %+v", i, res)
		}
	}
}
