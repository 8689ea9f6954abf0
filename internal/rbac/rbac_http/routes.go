package rbac_http

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *rbac.Handler, gate *middleware.Gate) {
	group := r.Group("/rbac")
	{
		group.GET("/roles", gate.Handle(rbac.ModuleSettings, rbac.ActionView, handler.ListRoles))
		group.GET("/permissions/me", gate.Authenticated(handler.MyPermissions))
	}
}
