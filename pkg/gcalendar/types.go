package gcalendar

import "time"

// CreateEventRequest is the input for creating a single Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "America/New_York"
}

// CreateRecurringEventRequest is the input for creating a recurring event.
// RRule carries the full recurrence line, e.g. "RRULE:FREQ=WEEKLY;BYDAY=WE".
type CreateRecurringEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	RRule       string
	Timezone    string
}

// EventPatch holds the fields to change on an existing event. Nil fields
// are left untouched.
type EventPatch struct {
	Summary     *string
	Description *string
	Location    *string
	StartTime   *time.Time
	EndTime     *time.Time
	RRule       *string
}

// UpdateEventRequest is the input for patching a Google Calendar event.
type UpdateEventRequest struct {
	CalendarID string
	EventID    string
	Patch      EventPatch
	Timezone   string
}

// DeleteEventRequest is the input for deleting a Google Calendar event.
type DeleteEventRequest struct {
	CalendarID string
	EventID    string
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
}

// FreeBusyRequest is the input for a free/busy lookup.
type FreeBusyRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
}

// BusyInterval is one busy block returned by a free/busy lookup.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
	Recurrence  []string
}
