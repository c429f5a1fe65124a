package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes registers auth routes: register/login/logout are public,
// profile requires authentication.
func RegisterRoutes(public *gin.RouterGroup, protected *gin.RouterGroup, h *Handler) {
	a := public.Group("/auth")
	{
		a.POST("/register", h.Register)
		a.POST("/login", h.Login)
		a.POST("/logout", h.Logout)
	}

	protected.GET("/auth/profile", h.Profile)
}
