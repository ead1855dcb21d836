package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	agentHTTP "student-calendar-assistant/internal/agent/delivery/http"
)

// setupAgentDomain registers the conversational assistant routes. The
// domain is skipped when no LLM provider is configured.
func (srv HTTPServer) setupAgentDomain(ctx context.Context, api *gin.RouterGroup) error {
	if srv.orchestrator == nil {
		srv.l.Infof(ctx, "Agent orchestrator not configured, skipping chat route")
		return nil
	}

	h := agentHTTP.New(srv.l, srv.orchestrator)

	// Registers /api/v1/chat
	agentHTTP.RegisterRoutes(api, h)

	srv.l.Infof(ctx, "Agent domain registered")
	return nil
}
