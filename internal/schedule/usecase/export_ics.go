package usecase

import (
	"context"
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
)

// ExportICS renders the plan's create operations as an iCalendar
// document, so the schedule can be imported into any calendar app
// without executing the plan.
func (uc *implUseCase) ExportICS(ctx context.Context, plan schedule.MutationPlan, window model.SemesterWindow) (string, error) {
	if len(plan.Operations) == 0 {
		return "", schedule.ErrEmptyPlan
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//student-calendar-assistant//EN")

	exported := 0
	for _, op := range plan.Operations {
		create, ok := op.(schedule.CreateRecurringOp)
		if !ok {
			continue
		}

		event := cal.AddEvent(uuid.NewString())
		event.SetCreatedTime(uc.now())
		event.SetDtStampTime(uc.now())
		event.SetSummary(create.Event.Title)
		event.SetStartAt(create.FirstStart)
		event.SetEndAt(create.FirstEnd)
		if create.Event.Location != "" {
			event.SetLocation(create.Event.Location)
		}
		if create.Event.Notes != "" {
			event.SetDescription(create.Event.Notes)
		}
		event.AddRrule(strings.TrimPrefix(create.RRule, "RRULE:"))
		exported++
	}

	if exported == 0 {
		return "", fmt.Errorf("plan has no create operations to export")
	}

	uc.l.Info(ctx, "exported plan to iCalendar", "events", exported)
	return cal.Serialize(), nil
}
