package auth

import (
	"hr-hub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts on the public group: login must work without a session.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	auth := r.Group("/auth")
	{
		// 5 attempts burst, then one every 5 seconds per client IP.
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", gate.Authenticated(handler.Me))
	}
}

// RegisterCronRoutes mounts scheduler endpoints on a group already guarded by CronAuth.
func RegisterCronRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/sessions/purge", handler.PurgeSessions)
}
