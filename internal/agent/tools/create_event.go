package tools

import (
	"context"
	"fmt"
	"time"

	"student-calendar-assistant/pkg/gcalendar"
	pkgLog "student-calendar-assistant/pkg/log"
)

// EventCreator abstracts the calendar insert path for mocking.
type EventCreator interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

type CreateEventTool struct {
	calendar   EventCreator
	l          pkgLog.Logger
	calendarID string
	timezone   string
}

func NewCreateEventTool(calendar EventCreator, l pkgLog.Logger, calendarID, timezone string) *CreateEventTool {
	return &CreateEventTool{
		calendar:   calendar,
		l:          l,
		calendarID: calendarID,
		timezone:   timezone,
	}
}

func (t *CreateEventTool) Name() string {
	return "create_event"
}

func (t *CreateEventTool) Description() string {
	return "Create a single (non-recurring) calendar event, e.g. a study session or an appointment."
}

func (t *CreateEventTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"title": map[string]interface{}{
				"type":        "string",
				"description": "Event title",
			},
			"start": map[string]interface{}{
				"type":        "string",
				"description": "Start in RFC3339 format",
			},
			"end": map[string]interface{}{
				"type":        "string",
				"description": "End in RFC3339 format",
			},
			"location": map[string]interface{}{
				"type":        "string",
				"description": "Optional location",
			},
			"description": map[string]interface{}{
				"type":        "string",
				"description": "Optional free-text notes",
			},
		},
		"required": []string{"title", "start", "end"},
	}
}

type CreateEventInput struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type CreateEventOutput struct {
	EventID  string `json:"event_id"`
	HtmlLink string `json:"html_link,omitempty"`
}

func (t *CreateEventTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params CreateEventInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}
	if params.Title == "" {
		return nil, fmt.Errorf("title is required")
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

	t.l.Infof(ctx, "create_event: %q at %s", params.Title, params.Start)

	created, err := t.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  t.calendarID,
		Summary:     params.Title,
		Description: params.Description,
		Location:    params.Location,
		StartTime:   start,
		EndTime:     end,
		Timezone:    t.timezone,
	})
	if err != nil {
		return map[string]string{"error": fmt.Sprintf("could not create the event: %v", err)}, nil
	}

	return CreateEventOutput{EventID: created.ID, HtmlLink: created.HtmlLink}, nil
}
