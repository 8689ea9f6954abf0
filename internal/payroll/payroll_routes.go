package payroll

import (
	"time"

	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	runs := r.Group("/payroll/runs")
	{
		runs.GET("", gate.Handle(rbac.ModulePayroll, rbac.ActionView, handler.List))
		runs.GET("/:id", gate.Handle(rbac.ModulePayroll, rbac.ActionView, handler.GetByID))
		runs.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(redisClient, idempotencyTTL, handler.logger),
			gate.Handle(rbac.ModulePayroll, rbac.ActionCreate, handler.Create),
		)
		runs.POST("/:id/calculate", gate.Handle(rbac.ModulePayroll, rbac.ActionUpdate, handler.Calculate))
		runs.POST("/:id/approve", gate.Handle(rbac.ModulePayroll, rbac.ActionApprove, handler.Approve))
		runs.POST("/:id/pay",
			middleware.Idempotency(redisClient, idempotencyTTL, handler.logger),
			gate.Handle(rbac.ModulePayroll, rbac.ActionApprove, handler.Pay),
		)
		runs.POST("/:id/cancel", gate.Handle(rbac.ModulePayroll, rbac.ActionUpdate, handler.Cancel))
	}

	r.POST("/payroll/imports/kpmg", gate.Handle(rbac.ModulePayroll, rbac.ActionCreate, handler.ImportKPMG))
}
