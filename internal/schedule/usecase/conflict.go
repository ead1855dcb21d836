package usecase

import (
	"context"
	"fmt"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/pkg/datemath"
	"student-calendar-assistant/pkg/gcalendar"
)

// occurrence is a create operation resolved to its first concrete
// interval.
type occurrence struct {
	opIndex int
	op      schedule.CreateRecurringOp
}

// DetectConflicts checks the plan's create operations against each
// other and against events already on the calendar. One conflict is
// reported per offending pair.
func (uc *implUseCase) DetectConflicts(ctx context.Context, plan schedule.MutationPlan, window model.SemesterWindow) (schedule.ConflictReport, error) {
	if uc.calendar == nil {
		return schedule.ConflictReport{}, schedule.ErrCalendarUnavailable
	}
	if err := window.Validate(); err != nil {
		return schedule.ConflictReport{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}

	parser, err := datemath.NewParser(window.Timezone)
	if err != nil {
		return schedule.ConflictReport{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}
	semesterStart, err := parser.ParseDate(window.SemesterStart)
	if err != nil {
		return schedule.ConflictReport{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}
	semesterEnd, err := parser.ParseDate(window.SemesterEnd)
	if err != nil {
		return schedule.ConflictReport{}, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}
	semesterEndOfDay := parser.EndOfDay(semesterEnd)

	var conflicts []schedule.Conflict
	var occurrences []occurrence

	for i, op := range plan.Operations {
		create, ok := op.(schedule.CreateRecurringOp)
		if !ok {
			continue
		}

		// Recompute the first occurrence for plans that arrived over
		// the wire without resolved times.
		if create.FirstStart.IsZero() || create.FirstEnd.IsZero() {
			start, end, err := firstOccurrence(parser, create.Event, semesterStart)
			if err != nil {
				conflicts = append(conflicts, schedule.Conflict{
					Type:        schedule.ConflictAmbiguous,
					Summary:     fmt.Sprintf("%q cannot be placed: %v", create.Event.Title, err),
					Affected:    []string{create.Event.Title},
					Suggestions: []string{"fix the event's day and times, then rebuild the plan"},
				})
				continue
			}
			create.FirstStart = start
			create.FirstEnd = end
		}

		if create.FirstStart.After(semesterEndOfDay) {
			conflicts = append(conflicts, schedule.Conflict{
				Type:        schedule.ConflictOutsideSemester,
				Summary:     fmt.Sprintf("%q first occurs on %s, after the semester ends", create.Event.Title, create.FirstStart.Format(datemath.DateFormat)),
				Affected:    []string{create.Event.Title},
				Suggestions: []string{"check the semester window dates"},
			})
			continue
		}

		occurrences = append(occurrences, occurrence{opIndex: i, op: create})
	}

	// Plan-internal checks: duplicates and pairwise overlaps.
	for i := 0; i < len(occurrences); i++ {
		for j := i + 1; j < len(occurrences); j++ {
			a, b := occurrences[i].op, occurrences[j].op

			if a.Event.Title == b.Event.Title &&
				a.Event.DayOfWeek == b.Event.DayOfWeek &&
				a.Event.StartTime == b.Event.StartTime {
				conflicts = append(conflicts, schedule.Conflict{
					Type:        schedule.ConflictDuplicate,
					Summary:     fmt.Sprintf("%q appears twice at %s %s", a.Event.Title, a.Event.DayOfWeek, a.Event.StartTime),
					Affected:    []string{a.Event.Title, b.Event.Title},
					Suggestions: []string{"remove one of the duplicate entries"},
				})
				continue
			}

			if intervalsOverlap(a.FirstStart, a.FirstEnd, b.FirstStart, b.FirstEnd) {
				conflicts = append(conflicts, schedule.Conflict{
					Type: schedule.ConflictOverlap,
					Summary: fmt.Sprintf("%q (%s-%s) overlaps %q (%s-%s) on %s",
						a.Event.Title, a.Event.StartTime, a.Event.EndTime,
						b.Event.Title, b.Event.StartTime, b.Event.EndTime,
						a.Event.DayOfWeek),
					Affected:    []string{a.Event.Title, b.Event.Title},
					Suggestions: []string{fmt.Sprintf("move %q to a free slot", b.Event.Title)},
				})
			}
		}
	}

	// Checks against events already on the calendar.
	if len(occurrences) > 0 {
		existingConflicts, err := uc.detectExistingConflicts(ctx, occurrences)
		if err != nil {
			return schedule.ConflictReport{}, err
		}
		conflicts = append(conflicts, existingConflicts...)
	}

	report := schedule.ConflictReport{
		Conflicts: conflicts,
		Blocking:  len(conflicts) > 0,
	}

	uc.l.Info(ctx, "conflict detection complete",
		"operations", len(plan.Operations),
		"conflicts", len(conflicts),
		"blocking", report.Blocking,
	)
	return report, nil
}

// detectExistingConflicts compares first occurrences against the
// calendar with one list call spanning all of them.
func (uc *implUseCase) detectExistingConflicts(ctx context.Context, occurrences []occurrence) ([]schedule.Conflict, error) {
	timeMin := occurrences[0].op.FirstStart
	timeMax := occurrences[0].op.FirstEnd
	for _, occ := range occurrences[1:] {
		if occ.op.FirstStart.Before(timeMin) {
			timeMin = occ.op.FirstStart
		}
		if occ.op.FirstEnd.After(timeMax) {
			timeMax = occ.op.FirstEnd
		}
	}

	existing, err := uc.calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: uc.cfg.CalendarID,
		TimeMin:    timeMin,
		TimeMax:    timeMax,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list existing events: %w", err)
	}

	var conflicts []schedule.Conflict
	for _, occ := range occurrences {
		for _, event := range existing {
			if event.StartTime.IsZero() || event.EndTime.IsZero() {
				continue
			}
			if intervalsOverlap(occ.op.FirstStart, occ.op.FirstEnd, event.StartTime, event.EndTime) {
				conflicts = append(conflicts, schedule.Conflict{
					Type: schedule.ConflictOverlap,
					Summary: fmt.Sprintf("%q overlaps existing calendar event %q on %s",
						occ.op.Event.Title, event.Summary, occ.op.FirstStart.Format(datemath.DateFormat)),
					Affected:    []string{occ.op.Event.Title, event.Summary},
					Suggestions: []string{fmt.Sprintf("move %q to a free slot", occ.op.Event.Title)},
				})
			}
		}
	}
	return conflicts, nil
}
