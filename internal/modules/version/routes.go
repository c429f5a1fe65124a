package version

import "github.com/gin-gonic/gin"

// RegisterRoutes registers version routes under the authenticated group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	versions := r.Group("/versions")
	{
		versions.GET("/project/:projectId", h.ListByProject)
		versions.PUT("/:id/activate", h.Activate)
		versions.DELETE("/:id", h.Delete)
	}
}
