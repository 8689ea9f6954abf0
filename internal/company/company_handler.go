package company

import (
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
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("company request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Fail(c, err)
}

func (h *Handler) List(c *gin.Context, p session.Principal) {
	var q ListCompaniesQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.writeServiceError(c, err)
		return
	}

	companies, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Paginated(c, companies, response.NewPagination(total, q.Page, q.Limit))
}

func (h *Handler) GetByID(c *gin.Context, p session.Principal) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	comp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comp)
}

func (h *Handler) Update(c *gin.Context, p session.Principal) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req UpdateCompanyRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http update company", zap.String("company_id", id), zap.String("actor", p.UserID))

	comp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comp)
}
