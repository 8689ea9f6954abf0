package analytics

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	analytics := r.Group("/analytics")
	{
		analytics.GET("/dashboard", gate.Handle(rbac.ModuleAnalytics, rbac.ActionView, handler.Dashboard))
		analytics.GET("/attrition/:employeeId", gate.Handle(rbac.ModuleAnalytics, rbac.ActionView, handler.Attrition))
	}
}
