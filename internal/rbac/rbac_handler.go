package rbac

import (
	"net/http"

	"hr-hub/internal/session"
	"hr-hub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// ListRoles shows the static role table.
func (h *Handler) ListRoles(c *gin.Context, p session.Principal) {
	h.logger.Debug("http list roles", zap.String("user_id", p.UserID))
	response.Success(c, http.StatusOK, h.service.Roles())
}

func (h *Handler) MyPermissions(c *gin.Context, p session.Principal) {
	response.Success(c, http.StatusOK, MyPermissionsResponse{
		Role:        string(p.Role),
		Permissions: h.service.PermissionsFor(p.Role),
	})
}
