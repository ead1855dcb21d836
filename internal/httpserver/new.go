package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"student-calendar-assistant/internal/agent/orchestrator"
	"student-calendar-assistant/internal/extract"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/internal/schedule/session"
	"student-calendar-assistant/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Schedule domain
	scheduleUC schedule.UseCase
	extractUC  extract.UseCase
	sessions   *session.Store

	// Agent domain (optional, nil when no LLM provider is configured)
	orchestrator *orchestrator.Orchestrator
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	ScheduleUseCase schedule.UseCase
	ExtractUseCase  extract.UseCase
	Sessions        *session.Store
	Orchestrator    *orchestrator.Orchestrator
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:            logger,
		gin:          gin.Default(),
		port:         cfg.Port,
		mode:         cfg.Mode,
		environment:  cfg.Environment,
		scheduleUC:   cfg.ScheduleUseCase,
		extractUC:    cfg.ExtractUseCase,
		sessions:     cfg.Sessions,
		orchestrator: cfg.Orchestrator,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.scheduleUC == nil {
		return errors.New("schedule usecase is required")
	}
	if srv.sessions == nil {
		return errors.New("session store is required")
	}
	return nil
}
