package project

import (
	"github.com/gin-gonic/gin"

	"easyweb/internal/middleware"
)

// RegisterRoutes registers project routes under the authenticated group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	projects := r.Group("/projects")
	{
		projects.GET("", h.List)
		projects.POST("", h.Create)
		projects.GET("/:id", h.Get)
		projects.PUT("/:id", h.Update)
		projects.DELETE("/:id", middleware.AdminOnly(), h.Delete)
		projects.POST("/:id/permissions", h.GrantPermission)
	}
}
