package tools

import (
	"context"
	"fmt"

	"student-calendar-assistant/pkg/gcalendar"
	pkgLog "student-calendar-assistant/pkg/log"
)

// EventDeleter abstracts the calendar delete path for mocking.
type EventDeleter interface {
	DeleteEvent(ctx context.Context, req gcalendar.DeleteEventRequest) error
}

type DeleteEventTool struct {
	calendar   EventDeleter
	l          pkgLog.Logger
	calendarID string
}

func NewDeleteEventTool(calendar EventDeleter, l pkgLog.Logger, calendarID string) *DeleteEventTool {
	return &DeleteEventTool{
		calendar:   calendar,
		l:          l,
		calendarID: calendarID,
	}
}

func (t *DeleteEventTool) Name() string {
	return "delete_event"
}

func (t *DeleteEventTool) Description() string {
	return "Delete a calendar event by its ID. Use list_events first to find the ID."
}

func (t *DeleteEventTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"event_id": map[string]interface{}{
				"type":        "string",
				"description": "The calendar event ID to delete",
			},
		},
		"required": []string{"event_id"},
	}
}

type DeleteEventInput struct {
	EventID string `json:"event_id"`
}

func (t *DeleteEventTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params DeleteEventInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}
	if params.EventID == "" {
		return nil, fmt.Errorf("event_id is required")
	}

	t.l.Infof(ctx, "delete_event: %s", params.EventID)

	err := t.calendar.DeleteEvent(ctx, gcalendar.DeleteEventRequest{
		CalendarID: t.calendarID,
		EventID:    params.EventID,
	})
	if err != nil {
		return map[string]string{"error": fmt.Sprintf("could not delete the event: %v", err)}, nil
	}

	return map[string]string{"status": "deleted", "event_id": params.EventID}, nil
}
