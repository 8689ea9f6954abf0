package onboarding

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	register(r.Group("/onboarding/checklists"), handler, gate, KindOnboarding, rbac.ModuleOnboarding)
	register(r.Group("/offboarding/checklists"), handler, gate, KindOffboarding, rbac.ModuleOffboarding)
}

func register(g *gin.RouterGroup, handler *Handler, gate *middleware.Gate, kind Kind, module rbac.Module) {
	g.GET("", gate.Handle(module, rbac.ActionView, handler.List(kind)))
	g.GET("/:id", gate.Handle(module, rbac.ActionView, handler.GetByID(kind)))
	g.POST("", gate.Handle(module, rbac.ActionCreate, handler.Create(kind)))
	g.PATCH("/tasks/:taskId", gate.Handle(module, rbac.ActionUpdate, handler.UpdateTask(kind)))
}
