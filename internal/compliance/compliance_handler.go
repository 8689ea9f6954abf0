package compliance

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
	l := zap.L().Named("compliance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compliance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("compliance request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Fail(c, err)
}

func (h *Handler) ListRules(c *gin.Context, p session.Principal) {
	response.Success(c, http.StatusOK, h.service.Rules())
}

func (h *Handler) GetRule(c *gin.Context, p session.Principal) {
	rule, err := h.service.Rule(c.Param("country"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rule)
}

func (h *Handler) ListConsents(c *gin.Context, p session.Principal) {
	var q ListConsentsQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !p.IsStaff() {
		if q.EmployeeID != "" && q.EmployeeID != p.EmployeeID {
			h.writeServiceError(c, apperror.ErrForbidden)
			return
		}
		q.EmployeeID = p.EmployeeID
	}

	rows, total, err := h.service.ListConsents(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Paginated(c, rows, response.NewPagination(total, q.Page, q.Limit))
}

func (h *Handler) Grant(c *gin.Context, p session.Principal) {
	var req GrantConsentRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Grant(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *Handler) Revoke(c *gin.Context, p session.Principal) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Revoke(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}
