package usecase

import (
	"student-calendar-assistant/internal/extract"
	pkgLog "student-calendar-assistant/pkg/log"
)

type implUseCase struct {
	l   pkgLog.Logger
	llm extract.Generator
}

// New creates a new extract UseCase instance.
func New(l pkgLog.Logger, llm extract.Generator) *implUseCase {
	return &implUseCase{
		l:   l,
		llm: llm,
	}
}
