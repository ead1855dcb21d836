package tools

import (
	"context"
	"fmt"
	"time"

	"student-calendar-assistant/pkg/gcalendar"
	pkgLog "student-calendar-assistant/pkg/log"
)

// FreeBusyChecker abstracts the free/busy lookup for mocking.
type FreeBusyChecker interface {
	FreeBusy(ctx context.Context, req gcalendar.FreeBusyRequest) ([]gcalendar.BusyInterval, error)
}

type CheckFreeBusyTool struct {
	calendar   FreeBusyChecker
	l          pkgLog.Logger
	calendarID string
}

func NewCheckFreeBusyTool(calendar FreeBusyChecker, l pkgLog.Logger, calendarID string) *CheckFreeBusyTool {
	return &CheckFreeBusyTool{
		calendar:   calendar,
		l:          l,
		calendarID: calendarID,
	}
}

func (t *CheckFreeBusyTool) Name() string {
	return "check_freebusy"
}

func (t *CheckFreeBusyTool) Description() string {
	return "Check whether the student is free in a time range. Returns the busy intervals inside the range."
}

func (t *CheckFreeBusyTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"start": map[string]interface{}{
				"type":        "string",
				"description": "Range start in RFC3339 format, e.g. 2025-01-08T09:00:00Z",
			},
			"end": map[string]interface{}{
				"type":        "string",
				"description": "Range end in RFC3339 format",
			},
		},
		"required": []string{"start", "end"},
	}
}

type CheckFreeBusyInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type BusySlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type CheckFreeBusyOutput struct {
	Free bool       `json:"free"`
	Busy []BusySlot `json:"busy"`
}

func (t *CheckFreeBusyTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params CheckFreeBusyInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, params.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, params.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end: %w", err)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start must be before end")
	}

	t.l.Infof(ctx, "check_freebusy: %s to %s", params.Start, params.End)

	busy, err := t.calendar.FreeBusy(ctx, gcalendar.FreeBusyRequest{
		CalendarID: t.calendarID,
		TimeMin:    start,
		TimeMax:    end,
	})
	if err != nil {
		return map[string]string{"error": fmt.Sprintf("could not access the calendar: %v", err)}, nil
	}

	out := CheckFreeBusyOutput{Free: len(busy) == 0, Busy: make([]BusySlot, 0, len(busy))}
	for _, interval := range busy {
		out.Busy = append(out.Busy, BusySlot{Start: interval.Start, End: interval.End})
	}
	return out, nil
}
