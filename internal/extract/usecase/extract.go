package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"student-calendar-assistant/internal/extract"
	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/pkg/datemath"
	"student-calendar-assistant/pkg/llmprovider"
)

// Extract sends the document to the LLM inline and parses the returned
// JSON into schedule events. Individual entries that fail validation
// are dropped with a warning; only unusable output fails the call.
func (uc *implUseCase) Extract(ctx context.Context, input extract.ExtractInput) (extract.ExtractOutput, error) {
	if len(input.Data) == 0 {
		return extract.ExtractOutput{}, extract.ErrEmptyDocument
	}

	source, prompt, err := classifyDocument(input.MimeType)
	if err != nil {
		return extract.ExtractOutput{}, err
	}

	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Parts: []llmprovider.Part{{Text: extractSystemPrompt}},
		},
		Messages: []llmprovider.Message{
			{
				Role: "user",
				Parts: []llmprovider.Part{
					{Text: prompt},
					{InlineData: &llmprovider.Blob{
						MimeType: input.MimeType,
						Data:     base64.StdEncoding.EncodeToString(input.Data),
					}},
				},
			},
		},
		Temperature: 0.1,
	}

	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		return extract.ExtractOutput{}, fmt.Errorf("document extraction failed: %w", err)
	}

	raw := responseText(resp)
	events, warnings, err := parseEvents(raw, source, input.Hint)
	if err != nil {
		uc.l.Error(ctx, "unparseable extraction output", "output", truncate(raw, 500))
		return extract.ExtractOutput{}, err
	}

	uc.l.Info(ctx, "document extraction complete",
		"mime_type", input.MimeType,
		"events", len(events),
		"warnings", len(warnings),
	)
	return extract.ExtractOutput{Events: events, Warnings: warnings}, nil
}

func classifyDocument(mimeType string) (model.SourceKind, string, error) {
	switch {
	case mimeType == "application/pdf":
		return model.SourcePDF, extractPDFPrompt, nil
	case strings.HasPrefix(mimeType, "image/"):
		return model.SourceImage, extractImagePrompt, nil
	default:
		return "", "", fmt.Errorf("%w: %q", extract.ErrUnsupportedMimeType, mimeType)
	}
}

func responseText(resp *llmprovider.Response) string {
	var b strings.Builder
	for _, part := range resp.Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// parseEvents decodes the model output entry by entry so one bad row
// does not throw away the whole timetable.
func parseEvents(raw string, source model.SourceKind, hint string) ([]model.ScheduleEvent, []string, error) {
	cleaned := stripCodeFence(raw)

	var rows []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &rows); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", extract.ErrMalformedExtraction, err)
	}

	var events []model.ScheduleEvent
	var warnings []string

	for i, row := range rows {
		var event model.ScheduleEvent
		if err := json.Unmarshal(row, &event); err != nil {
			warnings = append(warnings, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		if err := validateEvent(event); err != nil {
			warnings = append(warnings, fmt.Sprintf("entry %d (%s): %v", i, event.Title, err))
			continue
		}

		if event.Recurrence == "" {
			event.Recurrence = model.RecurrenceWeekly
		}
		event.Source = source
		event.SourceHint = hint
		events = append(events, event)
	}

	return events, warnings, nil
}

func validateEvent(event model.ScheduleEvent) error {
	if strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if !event.DayOfWeek.Valid() {
		return fmt.Errorf("invalid day_of_week %q", event.DayOfWeek)
	}
	start, err := datemath.ParseClock(event.StartTime)
	if err != nil {
		return err
	}
	end, err := datemath.ParseClock(event.EndTime)
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time %s is not before end_time %s", event.StartTime, event.EndTime)
	}
	return nil
}

// stripCodeFence removes a surrounding markdown fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
