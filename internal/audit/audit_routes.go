package audit

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	logs := r.Group("/audit")
	{
		logs.GET("/logs", gate.Handle(rbac.ModuleAudit, rbac.ActionView, handler.List))
	}
}
