package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	scheduleHTTP "student-calendar-assistant/internal/schedule/delivery/http"
)

// setupScheduleDomain registers the schedule pipeline routes.
//
// Pattern to follow when adding a new domain:
//  1. Create UseCase in main and pass it through Config
//  2. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc, ...)
//  3. Register Routes:     mydomainHTTP.RegisterRoutes(api.Group("/myresource"), h)
func (srv HTTPServer) setupScheduleDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := scheduleHTTP.New(srv.l, srv.scheduleUC, srv.extractUC, srv.sessions)

	// Registers /api/v1/schedule/extract and /api/v1/schedule/sessions...
	scheduleHTTP.RegisterRoutes(api.Group("/schedule"), h)

	srv.l.Infof(ctx, "Schedule domain registered")
	return nil
}
