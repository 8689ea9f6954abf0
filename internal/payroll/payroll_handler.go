package payroll

import (
	"context"
	"net/http"

	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"
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
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Fail(c, err)
}

func (h *Handler) Create(c *gin.Context, p session.Principal) {
	var req CreateRunRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *Handler) List(c *gin.Context, p session.Principal) {
	var q ListRunsQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.writeServiceError(c, err)
		return
	}

	rows, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Paginated(c, rows, response.NewPagination(total, q.Page, q.Limit))
}

func (h *Handler) GetByID(c *gin.Context, p session.Principal) {
	h.withID(c, h.service.GetByID)
}

func (h *Handler) Calculate(c *gin.Context, p session.Principal) {
	h.withID(c, h.service.Calculate)
}

func (h *Handler) Approve(c *gin.Context, p session.Principal) {
	h.withID(c, h.service.Approve)
}

func (h *Handler) Pay(c *gin.Context, p session.Principal) {
	h.withID(c, h.service.Pay)
}

func (h *Handler) Cancel(c *gin.Context, p session.Principal) {
	h.withID(c, h.service.Cancel)
}

func (h *Handler) ImportKPMG(c *gin.Context, p session.Principal) {
	h.writeServiceError(c, h.service.ImportKPMG(c.Request.Context()))
}

func (h *Handler) withID(c *gin.Context, op func(ctx context.Context, id string) (RunResponse, error)) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := op(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}
