package usecase

import (
	"context"
	"fmt"

	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/pkg/gcalendar"
)

// Execute applies the plan's operations against the calendar in order.
// A failed operation is recorded and execution moves on to the next
// one; nothing is rolled back. In dry-run mode no remote calls are
// made and every operation is reported as skipped.
func (uc *implUseCase) Execute(ctx context.Context, plan schedule.MutationPlan, opts schedule.ExecuteOptions) (schedule.ExecutionReport, error) {
	if len(plan.Operations) == 0 {
		return schedule.ExecutionReport{}, schedule.ErrEmptyPlan
	}
	if plan.RequiresConfirmation && !opts.DryRun {
		return schedule.ExecutionReport{}, schedule.ErrConfirmationRequired
	}
	// Dry runs make no remote calls, so they work without a calendar.
	if uc.calendar == nil && !opts.DryRun {
		return schedule.ExecutionReport{}, schedule.ErrCalendarUnavailable
	}

	report := schedule.ExecutionReport{
		Preview:  plan.Preview,
		TotalOps: len(plan.Operations),
		Results:  make([]schedule.ExecutionResult, 0, len(plan.Operations)),
	}

	for i, op := range plan.Operations {
		result := schedule.ExecutionResult{
			OpIndex: i,
			OpType:  op.Kind(),
		}

		if opts.DryRun {
			result.Status = schedule.StatusSkipped
			result.Message = "dry run: no remote call was made"
			report.Results = append(report.Results, result)
			continue
		}

		eventID, err := uc.executeOp(ctx, op)
		if err != nil {
			uc.l.Error(ctx, "operation failed",
				"op_index", i,
				"op_type", string(op.Kind()),
				"error", err.Error(),
			)
			result.Status = schedule.StatusFailed
			result.Message = err.Error()
			report.FailedOps++
		} else {
			result.Status = schedule.StatusSuccess
			result.Message = "ok"
			result.EventID = eventID
			report.ExecutedOps++
		}
		report.Results = append(report.Results, result)
	}

	uc.l.Info(ctx, "plan execution complete",
		"total", report.TotalOps,
		"executed", report.ExecutedOps,
		"failed", report.FailedOps,
		"dry_run", opts.DryRun,
	)
	return report, nil
}

// executeOp dispatches one operation to the calendar client and
// returns the affected event ID.
func (uc *implUseCase) executeOp(ctx context.Context, op schedule.MutationOp) (string, error) {
	switch o := op.(type) {
	case schedule.CreateRecurringOp:
		created, err := uc.calendar.CreateRecurringEvent(ctx, gcalendar.CreateRecurringEventRequest{
			CalendarID:  uc.cfg.CalendarID,
			Summary:     o.Event.Title,
			Description: o.Event.Notes,
			Location:    o.Event.Location,
			StartTime:   o.FirstStart,
			EndTime:     o.FirstEnd,
			RRule:       o.RRule,
			Timezone:    o.FirstStart.Location().String(),
		})
		if err != nil {
			return "", err
		}
		return created.ID, nil

	case schedule.UpdateOp:
		updated, err := uc.calendar.UpdateEvent(ctx, gcalendar.UpdateEventRequest{
			CalendarID: uc.cfg.CalendarID,
			EventID:    o.EventID,
			Patch:      patchFromMap(o.Patch),
		})
		if err != nil {
			return "", err
		}
		return updated.ID, nil

	case schedule.DeleteOp:
		err := uc.calendar.DeleteEvent(ctx, gcalendar.DeleteEventRequest{
			CalendarID: uc.cfg.CalendarID,
			EventID:    o.EventID,
		})
		if err != nil {
			return "", err
		}
		return o.EventID, nil

	default:
		return "", fmt.Errorf("unknown operation kind %q", op.Kind())
	}
}

// patchFromMap lifts the wire-format patch into typed calendar fields.
// Unknown keys are ignored.
func patchFromMap(patch map[string]interface{}) gcalendar.EventPatch {
	out := gcalendar.EventPatch{}
	if v, ok := patch["summary"].(string); ok {
		out.Summary = &v
	}
	if v, ok := patch["description"].(string); ok {
		out.Description = &v
	}
	if v, ok := patch["location"].(string); ok {
		out.Location = &v
	}
	if v, ok := patch["rrule"].(string); ok {
		out.RRule = &v
	}
	return out
}
