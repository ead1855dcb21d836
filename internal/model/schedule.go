package model

import (
	"fmt"
	"time"
)

// DayOfWeek is a three-letter weekday code used in extracted schedules.
type DayOfWeek string

const (
	Monday    DayOfWeek = "mon"
	Tuesday   DayOfWeek = "tue"
	Wednesday DayOfWeek = "wed"
	Thursday  DayOfWeek = "thu"
	Friday    DayOfWeek = "fri"
	Saturday  DayOfWeek = "sat"
	Sunday    DayOfWeek = "sun"
)

// Weekday maps the code onto Go's time.Weekday.
func (d DayOfWeek) Weekday() (time.Weekday, error) {
	switch d {
	case Monday:
		return time.Monday, nil
	case Tuesday:
		return time.Tuesday, nil
	case Wednesday:
		return time.Wednesday, nil
	case Thursday:
		return time.Thursday, nil
	case Friday:
		return time.Friday, nil
	case Saturday:
		return time.Saturday, nil
	case Sunday:
		return time.Sunday, nil
	default:
		return 0, fmt.Errorf("invalid day of week: %q", string(d))
	}
}

// Valid reports whether the code is one of the seven known weekdays.
func (d DayOfWeek) Valid() bool {
	_, err := d.Weekday()
	return err == nil
}

// Recurrence describes how an extracted event repeats.
type Recurrence string

const (
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceOnce    Recurrence = "once"
	RecurrenceUnknown Recurrence = "unknown"
)

// SourceKind identifies where an extracted event came from.
type SourceKind string

const (
	SourcePDF    SourceKind = "pdf"
	SourceImage  SourceKind = "image"
	SourceManual SourceKind = "manual"
)

// ScheduleEvent is one class meeting extracted from a timetable.
// Times are local HH:MM clock strings; the semester window carries the
// timezone they are interpreted in.
type ScheduleEvent struct {
	Title      string     `json:"title"`
	DayOfWeek  DayOfWeek  `json:"day_of_week"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	Location   string     `json:"location,omitempty"`
	Recurrence Recurrence `json:"recurrence"`
	Notes      string     `json:"notes,omitempty"`

	// Traceability
	Source     SourceKind `json:"source"`
	SourceHint string     `json:"source_hint,omitempty"`
}

// SemesterWindow bounds the academic term the schedule applies to.
type SemesterWindow struct {
	SemesterStart string `json:"semester_start"` // YYYY-MM-DD
	SemesterEnd   string `json:"semester_end"`   // YYYY-MM-DD
	Timezone      string `json:"timezone"`
}

// Validate checks the window's dates and timezone without touching any
// per-event data.
func (w SemesterWindow) Validate() error {
	if w.Timezone == "" {
		return fmt.Errorf("timezone is required")
	}
	if _, err := time.LoadLocation(w.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", w.Timezone, err)
	}

	start, err := time.Parse("2006-01-02", w.SemesterStart)
	if err != nil {
		return fmt.Errorf("invalid semester_start %q: %w", w.SemesterStart, err)
	}
	end, err := time.Parse("2006-01-02", w.SemesterEnd)
	if err != nil {
		return fmt.Errorf("invalid semester_end %q: %w", w.SemesterEnd, err)
	}
	// A single-day window is valid; only an inverted one is rejected.
	if end.Before(start) {
		return fmt.Errorf("semester_end %s is before semester_start %s", w.SemesterEnd, w.SemesterStart)
	}
	return nil
}
