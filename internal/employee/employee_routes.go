package employee

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	employees := r.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			gate.Handle(rbac.ModuleEmployees, rbac.ActionView, handler.List),
		)
		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			gate.Handle(rbac.ModuleEmployees, rbac.ActionView, handler.GetByID),
		)
		employees.POST("",
			middleware.RateLimitByUser(1, 5),
			gate.Handle(rbac.ModuleEmployees, rbac.ActionCreate, handler.Create),
		)
		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			gate.Handle(rbac.ModuleEmployees, rbac.ActionUpdate, handler.Update),
		)
		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			gate.Handle(rbac.ModuleEmployees, rbac.ActionDelete, handler.Delete),
		)
	}
}
