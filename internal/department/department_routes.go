package department

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

// Departments are employee master data and share the employees grants.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	departments := r.Group("/departments")
	{
		departments.GET("", gate.Handle(rbac.ModuleEmployees, rbac.ActionView, handler.List))
		departments.GET("/:id", gate.Handle(rbac.ModuleEmployees, rbac.ActionView, handler.GetByID))
		departments.POST("", gate.Handle(rbac.ModuleEmployees, rbac.ActionCreate, handler.Create))
		departments.PUT("/:id", gate.Handle(rbac.ModuleEmployees, rbac.ActionUpdate, handler.Update))
		departments.DELETE("/:id", gate.Handle(rbac.ModuleEmployees, rbac.ActionDelete, handler.Delete))
	}
}
