package http

import (
	"student-calendar-assistant/internal/extract"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/internal/schedule/session"
	"student-calendar-assistant/pkg/log"
)

type handler struct {
	l        log.Logger
	uc       schedule.UseCase
	extract  extract.UseCase
	sessions *session.Store
}

// New creates a new HTTP handler for the schedule domain.
func New(l log.Logger, uc schedule.UseCase, extractUC extract.UseCase, sessions *session.Store) *handler {
	return &handler{
		l:        l,
		uc:       uc,
		extract:  extractUC,
		sessions: sessions,
	}
}
