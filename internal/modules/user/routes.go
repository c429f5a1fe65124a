package user

import (
	"github.com/gin-gonic/gin"

	"easyweb/internal/middleware"
)

// RegisterRoutes registers user routes. Lookup is open to any
// authenticated user (the service limits it to admin or self); management
// stays admin-only.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	users := r.Group("/users")
	{
		users.GET("/:id", h.Get)

		users.GET("", middleware.AdminOnly(), h.List)
		users.PUT("/:id/role", middleware.AdminOnly(), h.UpdateRole)
		users.DELETE("/:id", middleware.AdminOnly(), h.Delete)
	}
}
