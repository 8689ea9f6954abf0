package employee

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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Fail(c, err)
}

func present(p session.Principal, e EmployeeResponse) EmployeeResponse {
	if p.IsStaff() {
		return e
	}
	return e.Redacted()
}

func (h *Handler) Create(c *gin.Context, p session.Principal) {
	var req CreateEmployeeRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http create employee", zap.String("company_id", p.CompanyID))

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *Handler) List(c *gin.Context, p session.Principal) {
	var q ListEmployeesQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.writeServiceError(c, err)
		return
	}

	rows, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	for i := range rows {
		rows[i] = present(p, rows[i])
	}
	response.Paginated(c, rows, response.NewPagination(total, q.Page, q.Limit))
}

func (h *Handler) GetByID(c *gin.Context, p session.Principal) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, present(p, resp))
}

func (h *Handler) Update(c *gin.Context, p session.Principal) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var req UpdateEmployeeRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http update employee", zap.String("employee_id", id))

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context, p session.Principal) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http delete employee", zap.String("employee_id", id))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
