package compliance

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	compliance := r.Group("/compliance")
	{
		compliance.GET("/rules", gate.Handle(rbac.ModuleCompliance, rbac.ActionView, handler.ListRules))
		compliance.GET("/rules/:country", gate.Handle(rbac.ModuleCompliance, rbac.ActionView, handler.GetRule))

		compliance.GET("/consents", gate.Handle(rbac.ModuleCompliance, rbac.ActionView, handler.ListConsents))
		compliance.POST("/consents", gate.Handle(rbac.ModuleCompliance, rbac.ActionCreate, handler.Grant))
		compliance.POST("/consents/:id/revoke", gate.Handle(rbac.ModuleCompliance, rbac.ActionUpdate, handler.Revoke))
	}
}
