package preview

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public preview endpoints. r is the /api
// group, static is the engine root for the canonical /static path.
func RegisterRoutes(r *gin.RouterGroup, static *gin.RouterGroup, h *Handler) {
	pv := r.Group("/preview")
	{
		pv.GET("/share/:shareCode/*filepath", h.Share)
		pv.GET("/info/:shareCode", h.Info)
	}

	static.GET("/static/projects/:projectId/:label/*filepath", h.Direct)
}
