package audit

import (
	"hr-hub/internal/session"
	"hr-hub/internal/shared/request"
	"hr-hub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(c *gin.Context, p session.Principal) {
	var q ListLogsQuery
	if err := request.BindQuery(c, &q); err != nil {
		response.Fail(c, err)
		return
	}
	h.logger.Debug("http list audit logs", zap.String("company_id", p.CompanyID), zap.Int("page", q.Page))

	logs, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, logs, response.NewPagination(total, q.Page, q.Limit))
}
