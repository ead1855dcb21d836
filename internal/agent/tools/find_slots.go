package tools

import (
	"context"
	"fmt"
	"time"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
	pkgLog "student-calendar-assistant/pkg/log"
)

type FindSlotsTool struct {
	searcher schedule.SlotSearcher
	l        pkgLog.Logger
	window   model.SemesterWindow
}

func NewFindSlotsTool(searcher schedule.SlotSearcher, l pkgLog.Logger, window model.SemesterWindow) *FindSlotsTool {
	return &FindSlotsTool{
		searcher: searcher,
		l:        l,
		window:   window,
	}
}

func (t *FindSlotsTool) Name() string {
	return "find_slots"
}

func (t *FindSlotsTool) Description() string {
	return "Find free alternative time slots near a planned event time. Returns candidates ordered best first."
}

func (t *FindSlotsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"start": map[string]interface{}{
				"type":        "string",
				"description": "Original event start in RFC3339 format",
			},
			"end": map[string]interface{}{
				"type":        "string",
				"description": "Original event end in RFC3339 format",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum number of candidates to return",
				"default":     3,
			},
		},
		"required": []string{"start", "end"},
	}
}

type FindSlotsInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Limit int    `json:"limit"`
}

type SlotCandidate struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Score float64   `json:"score"`
}

type FindSlotsOutput struct {
	Slots []SlotCandidate `json:"slots"`
}

func (t *FindSlotsTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params FindSlotsInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}
	if params.Limit <= 0 {
		params.Limit = 3
	}

	start, err := time.Parse(time.RFC3339, params.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, params.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end: %w", err)
	}

	t.l.Infof(ctx, "find_slots: near %s", params.Start)

	slots, err := t.searcher.FindSlots(ctx, schedule.AlternativeSlot{Start: start, End: end}, t.window, params.Limit)
	if err != nil {
		return map[string]string{"error": fmt.Sprintf("slot search failed: %v", err)}, nil
	}

	out := FindSlotsOutput{Slots: make([]SlotCandidate, 0, len(slots))}
	for _, slot := range slots {
		out.Slots = append(out.Slots, SlotCandidate{Start: slot.Start, End: slot.End, Score: slot.Score})
	}
	return out, nil
}
