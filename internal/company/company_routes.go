package company

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	companies := r.Group("/companies")
	{
		companies.GET("", gate.Handle(rbac.ModuleSettings, rbac.ActionView, handler.List))
		companies.GET("/:id", gate.Handle(rbac.ModuleSettings, rbac.ActionView, handler.GetByID))
		companies.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			gate.Handle(rbac.ModuleSettings, rbac.ActionUpdate, handler.Update),
		)
	}
}
