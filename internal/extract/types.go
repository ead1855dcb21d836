package extract

import "student-calendar-assistant/internal/model"

// ExtractInput carries the raw document to read.
type ExtractInput struct {
	// Data is the raw document bytes.
	Data []byte
	// MimeType is the document's MIME type, e.g. "application/pdf" or
	// "image/png".
	MimeType string
	// Hint is an optional caller note recorded on each extracted
	// event for traceability.
	Hint string
}

// ExtractOutput is the structured result of reading a document.
type ExtractOutput struct {
	Events   []model.ScheduleEvent `json:"events"`
	Warnings []string              `json:"warnings,omitempty"`
}
