package attendance

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
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

// ownOnly is true for principals that may only see their own attendance.
func ownOnly(p session.Principal) bool {
	return p.Role == session.RoleEmployee
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Fail(c, err)
}

func (h *Handler) ClockIn(c *gin.Context, p session.Principal) {
	var req ClockInRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp, err := h.service.ClockIn(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *Handler) ClockOut(c *gin.Context, p session.Principal) {
	var req ClockOutRequest
	if c.Request.ContentLength > 0 {
		if err := request.BindJSON(c, &req); err != nil {
			h.writeServiceError(c, err)
			return
		}
	}
	resp, err := h.service.ClockOut(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) List(c *gin.Context, p session.Principal) {
	var q ListQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if ownOnly(p) {
		q.EmployeeID = p.EmployeeID
	}
	rows, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Paginated(c, rows, response.NewPagination(total, q.Page, q.Limit))
}

func (h *Handler) Summary(c *gin.Context, p session.Principal) {
	var q SummaryQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if ownOnly(p) || q.EmployeeID == "" {
		if q.EmployeeID != "" && q.EmployeeID != p.EmployeeID {
			h.writeServiceError(c, apperror.Forbidden("Employees can only view their own attendance"))
			return
		}
		q.EmployeeID = p.EmployeeID
	}
	if q.EmployeeID == "" {
		h.writeServiceError(c, apperror.BadRequest("employee_id is required"))
		return
	}
	resp, err := h.service.WeeklySummary(c.Request.Context(), q.EmployeeID, q.WeekStart)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}
