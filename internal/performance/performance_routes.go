package performance

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	cycles := r.Group("/performance/cycles")
	{
		cycles.GET("", gate.Handle(rbac.ModulePerformance, rbac.ActionView, handler.List))
		cycles.GET("/:id", gate.Handle(rbac.ModulePerformance, rbac.ActionView, handler.GetByID))
		cycles.POST("", gate.Handle(rbac.ModulePerformance, rbac.ActionCreate, handler.Create))
		cycles.POST("/:id/advance", gate.Handle(rbac.ModulePerformance, rbac.ActionUpdate, handler.Advance))
	}
}
