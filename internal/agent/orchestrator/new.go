package orchestrator

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"student-calendar-assistant/internal/agent"
	"student-calendar-assistant/pkg/llmprovider"
	pkgLog "student-calendar-assistant/pkg/log"
)

// Generator is the slice of the LLM provider manager the orchestrator
// needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

type Orchestrator struct {
	llm      Generator
	registry *agent.ToolRegistry
	l        pkgLog.Logger
	timezone string
	sessions *expirable.LRU[string, *SessionMemory]
	now      func() time.Time
}

func New(llm Generator, registry *agent.ToolRegistry, l pkgLog.Logger, timezone string) *Orchestrator {
	if timezone == "" {
		timezone = "UTC"
	}
	return &Orchestrator{
		llm:      llm,
		registry: registry,
		l:        l,
		timezone: timezone,
		sessions: expirable.NewLRU[string, *SessionMemory](256, nil, 10*time.Minute),
		now:      time.Now,
	}
}
