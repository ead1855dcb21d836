package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	rg.POST("/extract", h.Extract)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/plan", h.BuildPlan)
		sessions.POST("/:id/conflicts", h.DetectConflicts)
		sessions.POST("/:id/negotiate", h.Negotiate)
		sessions.POST("/:id/execute", h.Execute)
		sessions.GET("/:id/plan.ics", h.ExportICS)
	}
}
