package usecase

import (
	"context"
	"fmt"
	"time"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/pkg/datemath"
)

// Negotiate resolves overlap conflicts by moving the later of the two
// affected operations to the best free slot near its original time.
// The input plan is never modified; callers get a fresh plan to
// confirm.
func (uc *implUseCase) Negotiate(ctx context.Context, plan schedule.MutationPlan, report schedule.ConflictReport, window model.SemesterWindow) (schedule.NegotiationOutcome, error) {
	if err := window.Validate(); err != nil {
		return schedule.NegotiationOutcome{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}

	parser, err := datemath.NewParser(window.Timezone)
	if err != nil {
		return schedule.NegotiationOutcome{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}
	semesterEnd, err := parser.ParseDate(window.SemesterEnd)
	if err != nil {
		return schedule.NegotiationOutcome{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}

	outcome := schedule.NegotiationOutcome{
		UpdatedPlan:         plan.Clone(),
		AppliedResolutions:  []schedule.ResolutionOption{},
		UnresolvedConflicts: []string{},
	}

	moved := make(map[int]bool)

	for _, conflict := range report.Conflicts {
		if conflict.Type != schedule.ConflictOverlap {
			outcome.UnresolvedConflicts = append(outcome.UnresolvedConflicts,
				fmt.Sprintf("%s: %s", conflict.Type, conflict.Summary))
			continue
		}

		opIndex := pickMovableOp(outcome.UpdatedPlan, conflict, moved)
		if opIndex < 0 {
			outcome.UnresolvedConflicts = append(outcome.UnresolvedConflicts,
				fmt.Sprintf("no movable operation for conflict: %s", conflict.Summary))
			continue
		}

		op := outcome.UpdatedPlan.Operations[opIndex].(schedule.CreateRecurringOp)
		slots, err := uc.slots.FindSlots(ctx, schedule.AlternativeSlot{
			Start: op.FirstStart,
			End:   op.FirstEnd,
		}, window, uc.cfg.MaxSlots)
		if err != nil {
			return schedule.NegotiationOutcome{}, fmt.Errorf("slot search for %q: %w", op.Event.Title, err)
		}
		if len(slots) == 0 {
			outcome.UnresolvedConflicts = append(outcome.UnresolvedConflicts,
				fmt.Sprintf("no free slot found for %q near %s", op.Event.Title, op.FirstStart.Format("2006-01-02 15:04")))
			continue
		}

		best := slots[0]
		resolution := schedule.ResolutionOption{
			OperationIndex: opIndex,
			SuggestedStart: best.Start,
			SuggestedEnd:   best.End,
			Note:           fmt.Sprintf("moved %q to resolve: %s", op.Event.Title, conflict.Summary),
		}

		if err := applyResolution(&outcome.UpdatedPlan, parser, semesterEnd, resolution); err != nil {
			outcome.UnresolvedConflicts = append(outcome.UnresolvedConflicts,
				fmt.Sprintf("could not move %q: %v", op.Event.Title, err))
			continue
		}

		moved[opIndex] = true
		outcome.AppliedResolutions = append(outcome.AppliedResolutions, resolution)
	}

	outcome.UpdatedPlan.Preview = buildPreview(outcome.UpdatedPlan.Operations, resolutionNotes(outcome.AppliedResolutions))
	outcome.UpdatedPlan.RequiresConfirmation = true

	uc.l.Info(ctx, "negotiation complete",
		"conflicts", len(report.Conflicts),
		"resolved", len(outcome.AppliedResolutions),
		"unresolved", len(outcome.UnresolvedConflicts),
	)
	return outcome, nil
}

// pickMovableOp selects the operation to reschedule for a conflict: the
// highest-indexed create operation named in the conflict that has not
// been moved yet. For conflicts with existing calendar events only one
// plan operation is named, so it is the one moved.
func pickMovableOp(plan schedule.MutationPlan, conflict schedule.Conflict, moved map[int]bool) int {
	affected := make(map[string]bool, len(conflict.Affected))
	for _, title := range conflict.Affected {
		affected[title] = true
	}

	best := -1
	for i, op := range plan.Operations {
		create, ok := op.(schedule.CreateRecurringOp)
		if !ok || moved[i] {
			continue
		}
		if affected[create.Event.Title] {
			best = i
		}
	}
	return best
}

// applyResolution moves one create operation to the suggested slot,
// keeping the event's clock fields, weekday, and recurrence rule
// consistent with the new time. Resolutions pointing at invalid
// indices or non-create operations are rejected.
func applyResolution(plan *schedule.MutationPlan, parser *datemath.Parser, semesterEnd time.Time, res schedule.ResolutionOption) error {
	if res.OperationIndex < 0 || res.OperationIndex >= len(plan.Operations) {
		return fmt.Errorf("operation index %d out of range", res.OperationIndex)
	}
	op, ok := plan.Operations[res.OperationIndex].(schedule.CreateRecurringOp)
	if !ok {
		return fmt.Errorf("operation %d is not a create operation", res.OperationIndex)
	}
	if !res.SuggestedStart.Before(res.SuggestedEnd) {
		return fmt.Errorf("suggested slot has non-positive duration")
	}

	loc := parser.Location()
	start := res.SuggestedStart.In(loc)
	end := res.SuggestedEnd.In(loc)

	op.FirstStart = start
	op.FirstEnd = end
	op.Event.StartTime = datemath.Clock{Hour: start.Hour(), Minute: start.Minute()}.String()
	op.Event.EndTime = datemath.Clock{Hour: end.Hour(), Minute: end.Minute()}.String()
	op.Event.DayOfWeek = dayOfWeekFor(start.Weekday())

	rruleLine, err := buildRRule(parser, op.Event, op.FirstStart, semesterEnd)
	if err != nil {
		return err
	}
	op.RRule = rruleLine

	plan.Operations[res.OperationIndex] = op
	return nil
}

func dayOfWeekFor(w time.Weekday) model.DayOfWeek {
	switch w {
	case time.Monday:
		return model.Monday
	case time.Tuesday:
		return model.Tuesday
	case time.Wednesday:
		return model.Wednesday
	case time.Thursday:
		return model.Thursday
	case time.Friday:
		return model.Friday
	case time.Saturday:
		return model.Saturday
	default:
		return model.Sunday
	}
}

func resolutionNotes(resolutions []schedule.ResolutionOption) []string {
	notes := make([]string, len(resolutions))
	for i, res := range resolutions {
		notes[i] = res.Note
	}
	return notes
}
