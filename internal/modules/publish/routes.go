package publish

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the upload endpoint under the authenticated group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/upload", h.Upload)
}
