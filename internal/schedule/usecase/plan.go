package usecase

import (
	"context"
	"fmt"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/pkg/datemath"
)

// BuildPlan converts extracted schedule events into calendar mutations.
// The semester window is validated first and fails the whole call;
// individual bad events are dropped with a note in the preview.
func (uc *implUseCase) BuildPlan(ctx context.Context, events []model.ScheduleEvent, window model.SemesterWindow) (schedule.MutationPlan, error) {
	if err := window.Validate(); err != nil {
		return schedule.MutationPlan{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}
	if len(events) == 0 {
		return schedule.MutationPlan{}, schedule.ErrNoEvents
	}

	parser, err := datemath.NewParser(window.Timezone)
	if err != nil {
		return schedule.MutationPlan{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}

	semesterStart, err := parser.ParseDate(window.SemesterStart)
	if err != nil {
		return schedule.MutationPlan{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}
	semesterEnd, err := parser.ParseDate(window.SemesterEnd)
	if err != nil {
		return schedule.MutationPlan{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}

	ops := make([]schedule.MutationOp, 0, len(events))
	var notes []string

	for _, event := range events {
		if event.Recurrence == model.RecurrenceUnknown {
			uc.l.Warnf(ctx, "dropping event %q: recurrence is unknown", event.Title)
			notes = append(notes, fmt.Sprintf("dropped %q: recurrence could not be determined", event.Title))
			continue
		}

		firstStart, firstEnd, err := firstOccurrence(parser, event, semesterStart)
		if err != nil {
			uc.l.Warnf(ctx, "dropping event %q: %v", event.Title, err)
			notes = append(notes, fmt.Sprintf("dropped %q: %v", event.Title, err))
			continue
		}

		rruleLine, err := buildRRule(parser, event, firstStart, semesterEnd)
		if err != nil {
			uc.l.Warnf(ctx, "dropping event %q: %v", event.Title, err)
			notes = append(notes, fmt.Sprintf("dropped %q: %v", event.Title, err))
			continue
		}

		ops = append(ops, schedule.CreateRecurringOp{
			Event:      event,
			FirstStart: firstStart,
			FirstEnd:   firstEnd,
			RRule:      rruleLine,
		})
	}

	plan := schedule.MutationPlan{
		Operations:           ops,
		Preview:              buildPreview(ops, notes),
		RequiresConfirmation: true,
	}

	uc.l.Info(ctx, "built mutation plan",
		"events_in", len(events),
		"operations", len(ops),
		"dropped", len(events)-len(ops),
	)
	return plan, nil
}
