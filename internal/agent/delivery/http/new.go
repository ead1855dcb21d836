package http

import (
	"student-calendar-assistant/internal/agent/orchestrator"
	"student-calendar-assistant/pkg/log"
)

type handler struct {
	l    log.Logger
	orch *orchestrator.Orchestrator
}

// New creates a new HTTP handler for the agent domain.
func New(l log.Logger, orch *orchestrator.Orchestrator) *handler {
	return &handler{l: l, orch: orch}
}
