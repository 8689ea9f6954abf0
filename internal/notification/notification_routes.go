package notification

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", gate.Handle(rbac.ModuleNotifications, rbac.ActionView, handler.List))
		notifications.POST("/read-all", gate.Handle(rbac.ModuleNotifications, rbac.ActionUpdate, handler.MarkAllRead))
		notifications.POST("/:id/read", gate.Handle(rbac.ModuleNotifications, rbac.ActionUpdate, handler.MarkRead))
	}
}
