package extract

import (
	"context"

	"student-calendar-assistant/pkg/llmprovider"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Extract reads a timetable document (PDF or image) and returns
	// the structured class events found in it. Entries that fail
	// validation are dropped and reported as warnings.
	Extract(ctx context.Context, input ExtractInput) (ExtractOutput, error)
}

// Generator is the slice of the LLM provider manager the extractor
// needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}
