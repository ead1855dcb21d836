package schedule

import (
	"context"
	"time"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/pkg/gcalendar"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// BuildPlan converts extracted schedule events into a mutation plan
	// bounded by the semester window. Invalid events are dropped and
	// noted in the preview; an invalid window fails the whole call.
	BuildPlan(ctx context.Context, events []model.ScheduleEvent, window model.SemesterWindow) (MutationPlan, error)

	// DetectConflicts checks the plan's operations against each other
	// and against existing calendar events.
	DetectConflicts(ctx context.Context, plan MutationPlan, window model.SemesterWindow) (ConflictReport, error)

	// Negotiate searches alternative time slots for conflicting
	// operations and returns an updated plan. The input plan is not
	// modified.
	Negotiate(ctx context.Context, plan MutationPlan, report ConflictReport, window model.SemesterWindow) (NegotiationOutcome, error)

	// Execute applies the plan's operations in order against the
	// calendar. A failed operation is recorded and execution continues.
	Execute(ctx context.Context, plan MutationPlan, opts ExecuteOptions) (ExecutionReport, error)

	// ExportICS renders the plan's create operations as an iCalendar
	// document.
	ExportICS(ctx context.Context, plan MutationPlan, window model.SemesterWindow) (string, error)
}

// Calendar is the slice of the Google Calendar client the schedule
// pipeline needs.
type Calendar interface {
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	CreateRecurringEvent(ctx context.Context, req gcalendar.CreateRecurringEventRequest) (*gcalendar.Event, error)
	UpdateEvent(ctx context.Context, req gcalendar.UpdateEventRequest) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, req gcalendar.DeleteEventRequest) error
	FreeBusy(ctx context.Context, req gcalendar.FreeBusyRequest) ([]gcalendar.BusyInterval, error)
}

// SlotSearcher finds alternative time slots for an event that cannot
// stay at its original time. Results are ordered best first.
type SlotSearcher interface {
	FindSlots(ctx context.Context, original AlternativeSlot, window model.SemesterWindow, limit int) ([]AlternativeSlot, error)
}

// Clock abstracts the current time for deterministic tests.
type Clock func() time.Time
