package usecase

import (
	"context"
	"time"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/pkg/gcalendar"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, kv ...interface{})     {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)      {}
func (m *mockLogger) Info(ctx context.Context, msg string, kv ...interface{})      {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)       {}
func (m *mockLogger) Warn(ctx context.Context, msg string, kv ...interface{})      {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)       {}
func (m *mockLogger) Error(ctx context.Context, msg string, kv ...interface{})     {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)      {}
func (m *mockLogger) Fatal(ctx context.Context, msg string, kv ...interface{})     {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)      {}
func (m *mockLogger) DPanic(ctx context.Context, msg string, kv ...interface{})    {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any)     {}
func (m *mockLogger) Panic(ctx context.Context, msg string, kv ...interface{})     {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)      {}

// Mock calendar for testing
type mockCalendar struct {
	events []gcalendar.Event
	busy   []gcalendar.BusyInterval

	listErr   error
	createErr error
	updateErr error
	deleteErr error
	busyErr   error

	// failOnSummary makes CreateRecurringEvent fail for one title.
	failOnSummary string

	created []gcalendar.CreateRecurringEventRequest
	updated []gcalendar.UpdateEventRequest
	deleted []gcalendar.DeleteEventRequest
}

func (m *mockCalendar) ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
	return m.events, m.listErr
}

func (m *mockCalendar) CreateRecurringEvent(ctx context.Context, req gcalendar.CreateRecurringEventRequest) (*gcalendar.Event, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.failOnSummary != "" && req.Summary == m.failOnSummary {
		return nil, context.DeadlineExceeded
	}
	m.created = append(m.created, req)
	return &gcalendar.Event{ID: "created-" + req.Summary, Summary: req.Summary}, nil
}

func (m *mockCalendar) UpdateEvent(ctx context.Context, req gcalendar.UpdateEventRequest) (*gcalendar.Event, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.updated = append(m.updated, req)
	return &gcalendar.Event{ID: req.EventID}, nil
}

func (m *mockCalendar) DeleteEvent(ctx context.Context, req gcalendar.DeleteEventRequest) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, req)
	return nil
}

func (m *mockCalendar) FreeBusy(ctx context.Context, req gcalendar.FreeBusyRequest) ([]gcalendar.BusyInterval, error) {
	return m.busy, m.busyErr
}

func newTestUseCase(cal *mockCalendar) *implUseCase {
	uc := New(&mockLogger{}, cal, nil, SearchConfig{CalendarID: "primary"})
	uc.now = func() time.Time { return time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC) }
	return uc
}

func testWindow() model.SemesterWindow {
	return model.SemesterWindow{
		SemesterStart: "2025-01-06",
		SemesterEnd:   "2025-05-01",
		Timezone:      "UTC",
	}
}

func classEvent(title string, day model.DayOfWeek, start, end string) model.ScheduleEvent {
	return model.ScheduleEvent{
		Title:      title,
		DayOfWeek:  day,
		StartTime:  start,
		EndTime:    end,
		Recurrence: model.RecurrenceWeekly,
		Source:     model.SourceManual,
	}
}
