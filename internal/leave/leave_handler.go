package leave

import (
	"net/http"

	leaveerrors "hr-hub/internal/leave/errors"
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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

// ownOnly is true for principals that may only see and file their own leave.
func ownOnly(p session.Principal) bool {
	return p.Role == session.RoleEmployee
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Fail(c, err)
}

func (h *Handler) ListBalances(c *gin.Context, p session.Principal) {
	var q ListBalancesQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if ownOnly(p) {
		q.EmployeeID = p.EmployeeID
	}

	rows, total, err := h.service.ListBalances(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Paginated(c, rows, response.NewPagination(total, q.Page, q.Limit))
}

func (h *Handler) CreateBalance(c *gin.Context, p session.Principal) {
	var req CreateBalanceRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.CreateBalance(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *Handler) ListRequests(c *gin.Context, p session.Principal) {
	var q ListRequestsQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if ownOnly(p) {
		q.EmployeeID = p.EmployeeID
	}

	rows, total, err := h.service.ListRequests(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Paginated(c, rows, response.NewPagination(total, q.Page, q.Limit))
}

func (h *Handler) GetRequest(c *gin.Context, p session.Principal) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if ownOnly(p) && resp.EmployeeID != p.EmployeeID {
		h.writeServiceError(c, leaveerrors.ErrLeaveNotFound)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context, p session.Principal) {
	var req CreateLeaveRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if ownOnly(p) && req.EmployeeID != p.EmployeeID {
		h.writeServiceError(c, apperror.Forbidden("Employees can only request leave for themselves"))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *Handler) Approve(c *gin.Context, p session.Principal) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Reject(c *gin.Context, p session.Principal) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var req RejectLeaveRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Cancel(c *gin.Context, p session.Principal) {
	id, err := request.ParamUUID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Accrue is called by the scheduler, not by a signed-in user.
func (h *Handler) Accrue(c *gin.Context) {
	var req AccrueRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	result, err := h.service.Accrue(c.Request.Context(), req.Year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
