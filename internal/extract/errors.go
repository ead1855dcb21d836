package extract

import "errors"

var (
	// ErrEmptyDocument is returned when no document bytes were provided.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrUnsupportedMimeType is returned for documents that are neither
	// PDFs nor images.
	ErrUnsupportedMimeType = errors.New("unsupported document type")

	// ErrMalformedExtraction is returned when the model's output cannot
	// be parsed as a list of schedule events at all.
	ErrMalformedExtraction = errors.New("malformed extraction output")
)
