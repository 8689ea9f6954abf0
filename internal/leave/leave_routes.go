package leave

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	leave := r.Group("/leave")
	{
		leave.GET("/balances", gate.Handle(rbac.ModuleLeave, rbac.ActionView, handler.ListBalances))
		leave.POST("/balances", gate.Handle(rbac.ModuleLeave, rbac.ActionUpdate, handler.CreateBalance))

		leave.GET("/requests",
			middleware.RateLimitByUser(3, 10),
			gate.Handle(rbac.ModuleLeave, rbac.ActionView, handler.ListRequests),
		)
		leave.GET("/requests/:id", gate.Handle(rbac.ModuleLeave, rbac.ActionView, handler.GetRequest))
		leave.POST("/requests",
			middleware.RateLimitByUser(0.5, 3),
			gate.Handle(rbac.ModuleLeave, rbac.ActionCreate, handler.Create),
		)
		leave.POST("/requests/:id/approve", gate.Handle(rbac.ModuleLeave, rbac.ActionApprove, handler.Approve))
		leave.POST("/requests/:id/reject", gate.Handle(rbac.ModuleLeave, rbac.ActionApprove, handler.Reject))
		leave.POST("/requests/:id/cancel", gate.Handle(rbac.ModuleLeave, rbac.ActionCreate, handler.Cancel))
	}
}

// RegisterCronRoutes mounts scheduler endpoints on a group already guarded by CronAuth.
func RegisterCronRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/leave-balances/accrue", handler.Accrue)
}
