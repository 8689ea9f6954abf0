package attendance

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	attendance := r.Group("/attendance")
	{
		attendance.GET("", gate.Handle(rbac.ModuleAttendance, rbac.ActionView, handler.List))
		attendance.GET("/summary", gate.Handle(rbac.ModuleAttendance, rbac.ActionView, handler.Summary))
		attendance.POST("/clock-in", gate.Handle(rbac.ModuleAttendance, rbac.ActionCreate, handler.ClockIn))
		attendance.POST("/clock-out", gate.Handle(rbac.ModuleAttendance, rbac.ActionCreate, handler.ClockOut))
	}
}
