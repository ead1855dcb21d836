package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"student-calendar-assistant/internal/extract"
	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/pkg/llmprovider"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, kv ...interface{})  {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Info(ctx context.Context, msg string, kv ...interface{})   {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)    {}
func (m *mockLogger) Warn(ctx context.Context, msg string, kv ...interface{})   {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)    {}
func (m *mockLogger) Error(ctx context.Context, msg string, kv ...interface{})  {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Fatal(ctx context.Context, msg string, kv ...interface{})  {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) DPanic(ctx context.Context, msg string, kv ...interface{}) {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Panic(ctx context.Context, msg string, kv ...interface{})  {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)   {}

// Mock generator for testing
type mockGenerator struct {
	text    string
	err     error
	lastReq *llmprovider.Request
}

func (m *mockGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{Role: "model", Parts: []llmprovider.Part{{Text: m.text}}},
		Usage:   &llmprovider.Usage{},
	}, nil
}

func TestExtract(t *testing.T) {
	gen := &mockGenerator{text: "```json\n[" +
		`{"title": "Algorithms", "day_of_week": "wed", "start_time": "09:00", "end_time": "10:00", "location": "Room 204", "recurrence": "weekly"}` +
		"]\n```"}
	uc := New(&mockLogger{}, gen)

	out, err := uc.Extract(context.Background(), extract.ExtractInput{
		Data:     []byte("%PDF-1.4 fake"),
		MimeType: "application/pdf",
		Hint:     "fall timetable",
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(out.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out.Events))
	}

	event := out.Events[0]
	if event.Title != "Algorithms" || event.DayOfWeek != model.Wednesday {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.Source != model.SourcePDF || event.SourceHint != "fall timetable" {
		t.Errorf("traceability fields not set: %+v", event)
	}

	// The document must be sent inline with its MIME type.
	parts := gen.lastReq.Messages[0].Parts
	if len(parts) != 2 || parts[1].InlineData == nil || parts[1].InlineData.MimeType != "application/pdf" {
		t.Errorf("document not attached inline: %+v", parts)
	}
}

func TestExtractDropsBadEntries(t *testing.T) {
	gen := &mockGenerator{text: `[
		{"title": "Algorithms", "day_of_week": "wed", "start_time": "09:00", "end_time": "10:00"},
		{"title": "", "day_of_week": "thu", "start_time": "09:00", "end_time": "10:00"},
		{"title": "Backwards", "day_of_week": "fri", "start_time": "15:00", "end_time": "14:00"},
		{"title": "Nowhere", "day_of_week": "someday", "start_time": "09:00", "end_time": "10:00"}
	]`}
	uc := New(&mockLogger{}, gen)

	out, err := uc.Extract(context.Background(), extract.ExtractInput{
		Data:     []byte{0x89, 'P', 'N', 'G'},
		MimeType: "image/png",
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(out.Events) != 1 {
		t.Fatalf("expected only the valid event, got %d", len(out.Events))
	}
	if len(out.Warnings) != 3 {
		t.Errorf("expected 3 warnings, got %v", out.Warnings)
	}
	if out.Events[0].Source != model.SourceImage {
		t.Errorf("image source not recorded: %+v", out.Events[0])
	}
	if out.Events[0].Recurrence != model.RecurrenceWeekly {
		t.Errorf("missing recurrence should default to weekly: %+v", out.Events[0])
	}
}

func TestExtractErrors(t *testing.T) {
	uc := New(&mockLogger{}, &mockGenerator{text: "[]"})

	_, err := uc.Extract(context.Background(), extract.ExtractInput{MimeType: "application/pdf"})
	if !errors.Is(err, extract.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}

	_, err = uc.Extract(context.Background(), extract.ExtractInput{
		Data:     []byte("hello"),
		MimeType: "text/html",
	})
	if !errors.Is(err, extract.ErrUnsupportedMimeType) {
		t.Errorf("expected ErrUnsupportedMimeType, got %v", err)
	}

	badOutput := New(&mockLogger{}, &mockGenerator{text: "I could not read the document, sorry."})
	_, err = badOutput.Extract(context.Background(), extract.ExtractInput{
		Data:     []byte("x"),
		MimeType: "image/jpeg",
	})
	if !errors.Is(err, extract.ErrMalformedExtraction) {
		t.Errorf("expected ErrMalformedExtraction, got %v", err)
	}

	failing := New(&mockLogger{}, &mockGenerator{err: errors.New("quota exceeded")})
	_, err = failing.Extract(context.Background(), extract.ExtractInput{
		Data:     []byte("x"),
		MimeType: "image/jpeg",
	})
	if err == nil || !strings.Contains(err.Error(), "quota") {
		t.Errorf("provider error should propagate: %v", err)
	}
}
