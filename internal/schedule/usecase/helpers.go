package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/pkg/datemath"
)

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// intervalsOverlap reports whether two half-open intervals intersect.
// Touching endpoints do not overlap.
func intervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	maxStart := s1
	if s2.After(maxStart) {
		maxStart = s2
	}
	minEnd := e1
	if e2.Before(minEnd) {
		minEnd = e2
	}
	return maxStart.Before(minEnd)
}

// firstOccurrence resolves an event's first start and end within the
// semester window.
func firstOccurrence(parser *datemath.Parser, event model.ScheduleEvent, semesterStart time.Time) (time.Time, time.Time, error) {
	weekday, err := event.DayOfWeek.Weekday()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	startClock, err := datemath.ParseClock(event.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_time: %w", err)
	}
	endClock, err := datemath.ParseClock(event.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_time: %w", err)
	}
	if !startClock.Before(endClock) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_time %s is not before end_time %s", event.StartTime, event.EndTime)
	}

	day := parser.FirstOnOrAfter(semesterStart, weekday)
	return parser.At(day, startClock), parser.At(day, endClock), nil
}

// buildRRule renders the recurrence line for an event. Weekly events
// repeat until the end of the semester; one-off events carry COUNT=1.
func buildRRule(parser *datemath.Parser, event model.ScheduleEvent, firstStart, semesterEnd time.Time) (string, error) {
	weekday, err := event.DayOfWeek.Weekday()
	if err != nil {
		return "", err
	}

	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday]},
		Dtstart:   firstStart,
	}
	if event.Recurrence == model.RecurrenceOnce {
		opt.Count = 1
	} else {
		opt.Until = parser.EndOfDay(semesterEnd).UTC()
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("failed to build rrule: %w", err)
	}
	return "RRULE:" + rule.String(), nil
}

// buildPreview renders the plan as human-readable lines, one per
// operation, followed by notes about dropped events.
func buildPreview(ops []schedule.MutationOp, notes []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan: %d operation(s)\n", len(ops))

	for i, op := range ops {
		switch o := op.(type) {
		case schedule.CreateRecurringOp:
			label := "weekly"
			if o.Event.Recurrence == model.RecurrenceOnce {
				label = "once"
			}
			fmt.Fprintf(&b, "%d. Create %q %s on %s %s-%s, first on %s\n",
				i+1, o.Event.Title, label, o.Event.DayOfWeek,
				o.Event.StartTime, o.Event.EndTime,
				o.FirstStart.Format("2006-01-02 15:04"))
		case schedule.UpdateOp:
			fmt.Fprintf(&b, "%d. Update event %s\n", i+1, o.EventID)
		case schedule.DeleteOp:
			fmt.Fprintf(&b, "%d. Delete event %s\n", i+1, o.EventID)
		}
	}

	for _, note := range notes {
		fmt.Fprintf(&b, "Note: %s\n", note)
	}
	return b.String()
}
