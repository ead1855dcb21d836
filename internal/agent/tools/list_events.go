package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"student-calendar-assistant/pkg/datemath"
	"student-calendar-assistant/pkg/gcalendar"
	pkgLog "student-calendar-assistant/pkg/log"
)

// EventLister abstracts the calendar read path for mocking.
type EventLister interface {
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
}

type ListEventsTool struct {
	calendar   EventLister
	l          pkgLog.Logger
	calendarID string
	timezone   string
}

func NewListEventsTool(calendar EventLister, l pkgLog.Logger, calendarID, timezone string) *ListEventsTool {
	return &ListEventsTool{
		calendar:   calendar,
		l:          l,
		calendarID: calendarID,
		timezone:   timezone,
	}
}

func (t *ListEventsTool) Name() string {
	return "list_events"
}

func (t *ListEventsTool) Description() string {
	return "List calendar events in a date range. Use this to answer questions about the student's schedule."
}

func (t *ListEventsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"start_date": map[string]interface{}{
				"type":        "string",
				"description": "Start date in YYYY-MM-DD format",
			},
			"end_date": map[string]interface{}{
				"type":        "string",
				"description": "End date in YYYY-MM-DD format (inclusive)",
			},
		},
		"required": []string{"start_date", "end_date"},
	}
}

type ListEventsInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ListedEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Location  string    `json:"location,omitempty"`
}

type ListEventsOutput struct {
	Events     []ListedEvent `json:"events"`
	EventCount int           `json:"event_count"`
}

func (t *ListEventsTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params ListEventsInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}

	parser, err := datemath.NewParser(t.timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	start, err := parser.ParseDate(params.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := parser.ParseDate(params.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}

	t.l.Infof(ctx, "list_events: %s to %s", params.StartDate, params.EndDate)

	events, err := t.calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: t.calendarID,
		TimeMin:    start,
		TimeMax:    parser.EndOfDay(end),
	})
	if err != nil {
		return map[string]string{"error": fmt.Sprintf("could not access the calendar: %v", err)}, nil
	}

	out := ListEventsOutput{Events: make([]ListedEvent, 0, len(events))}
	for _, event := range events {
		out.Events = append(out.Events, ListedEvent{
			ID:        event.ID,
			Title:     event.Summary,
			StartTime: event.StartTime,
			EndTime:   event.EndTime,
			Location:  event.Location,
		})
	}
	out.EventCount = len(out.Events)
	return out, nil
}

// decodeParams round-trips loosely typed tool arguments through JSON
// into a typed input struct.
func decodeParams(input map[string]interface{}, out interface{}) error {
	inputBytes, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}
	if err := json.Unmarshal(inputBytes, out); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	return nil
}
