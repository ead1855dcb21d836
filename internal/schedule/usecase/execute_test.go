package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
)

func confirmed(plan schedule.MutationPlan) schedule.MutationPlan {
	plan.RequiresConfirmation = false
	return plan
}

func TestExecuteAllSucceed(t *testing.T) {
	cal := &mockCalendar{}
	uc := newTestUseCase(cal)

	plan := buildTestPlan(t, uc,
		classEvent("Algorithms", model.Wednesday, "09:00", "10:00"),
		classEvent("Databases", model.Friday, "14:00", "16:00"),
	)

	report, err := uc.Execute(context.Background(), confirmed(plan), schedule.ExecuteOptions{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if report.TotalOps != 2 || report.ExecutedOps != 2 || report.FailedOps != 0 {
		t.Errorf("unexpected counts: %+v", report)
	}
	if len(cal.created) != 2 {
		t.Errorf("expected 2 calendar inserts, got %d", len(cal.created))
	}
	for i, result := range report.Results {
		if result.OpIndex != i {
			t.Errorf("results out of order: %+v", report.Results)
		}
		if result.Status != schedule.StatusSuccess || result.EventID == "" {
			t.Errorf("result %d not successful: %+v", i, result)
		}
	}
}

func TestExecuteContinuesPastFailure(t *testing.T) {
	cal := &mockCalendar{failOnSummary: "Databases"}
	uc := newTestUseCase(cal)

	plan := buildTestPlan(t, uc,
		classEvent("Algorithms", model.Wednesday, "09:00", "10:00"),
		classEvent("Databases", model.Friday, "14:00", "16:00"),
		classEvent("Networks", model.Monday, "11:00", "12:00"),
	)

	report, err := uc.Execute(context.Background(), confirmed(plan), schedule.ExecuteOptions{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if report.TotalOps != 3 || report.ExecutedOps != 2 || report.FailedOps != 1 {
		t.Errorf("unexpected counts: %+v", report)
	}
	if report.Results[1].Status != schedule.StatusFailed {
		t.Errorf("middle op should fail: %+v", report.Results[1])
	}
	if report.Results[2].Status != schedule.StatusSuccess {
		t.Errorf("execution must continue after a failure: %+v", report.Results[2])
	}
}

func TestExecuteDryRun(t *testing.T) {
	cal := &mockCalendar{}
	uc := newTestUseCase(cal)

	plan := buildTestPlan(t, uc, classEvent("Algorithms", model.Wednesday, "09:00", "10:00"))

	report, err := uc.Execute(context.Background(), plan, schedule.ExecuteOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Execute dry run: %v", err)
	}
	if report.ExecutedOps != 0 || report.FailedOps != 0 {
		t.Errorf("dry run must not execute anything: %+v", report)
	}
	if len(cal.created) != 0 {
		t.Error("dry run reached the calendar API")
	}
	result := report.Results[0]
	if result.Status != schedule.StatusSkipped {
		t.Errorf("dry run ops must be skipped: %+v", result)
	}
	if !strings.Contains(result.Message, "no remote call") {
		t.Errorf("skip message should say no call was made: %q", result.Message)
	}
}

func TestExecuteRequiresConfirmation(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})
	plan := buildTestPlan(t, uc, classEvent("Algorithms", model.Wednesday, "09:00", "10:00"))

	_, err := uc.Execute(context.Background(), plan, schedule.ExecuteOptions{})
	if !errors.Is(err, schedule.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
}

func TestExecuteMixedOps(t *testing.T) {
	cal := &mockCalendar{}
	uc := newTestUseCase(cal)

	plan := buildTestPlan(t, uc, classEvent("Algorithms", model.Wednesday, "09:00", "10:00"))
	plan.Operations = append(plan.Operations,
		schedule.UpdateOp{EventID: "evt-1", Patch: map[string]interface{}{"summary": "Renamed"}},
		schedule.DeleteOp{EventID: "evt-2"},
	)

	report, err := uc.Execute(context.Background(), confirmed(plan), schedule.ExecuteOptions{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if report.ExecutedOps != 3 {
		t.Errorf("unexpected counts: %+v", report)
	}
	if len(cal.updated) != 1 || cal.updated[0].EventID != "evt-1" {
		t.Errorf("update not dispatched: %+v", cal.updated)
	}
	if cal.updated[0].Patch.Summary == nil || *cal.updated[0].Patch.Summary != "Renamed" {
		t.Errorf("patch not lifted: %+v", cal.updated[0].Patch)
	}
	if len(cal.deleted) != 1 || cal.deleted[0].EventID != "evt-2" {
		t.Errorf("delete not dispatched: %+v", cal.deleted)
	}
}

func TestExecuteEmptyPlan(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})
	_, err := uc.Execute(context.Background(), schedule.MutationPlan{}, schedule.ExecuteOptions{})
	if !errors.Is(err, schedule.ErrEmptyPlan) {
		t.Fatalf("expected ErrEmptyPlan, got %v", err)
	}
}
