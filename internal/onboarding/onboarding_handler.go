package onboarding

import (
	"net/http"

	"hr-hub/internal/middleware"
	onboardingerrors "hr-hub/internal/onboarding/errors"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/request"
	"hr-hub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves both checklist kinds; each method returns the handler bound to one kind.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("onboarding.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("onboarding.handler")
	}
	return &Handler{service: service, logger: l}
}

func ownOnly(p session.Principal) bool {
	return p.Role == session.RoleEmployee
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("checklist request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Fail(c, err)
}

func (h *Handler) Create(kind Kind) middleware.HandlerFunc {
	return func(c *gin.Context, p session.Principal) {
		var req CreateChecklistRequest
		if err := request.BindJSON(c, &req); err != nil {
			h.writeServiceError(c, err)
			return
		}
		resp, err := h.service.Create(c.Request.Context(), kind, req)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Created(c, resp)
	}
}

func (h *Handler) List(kind Kind) middleware.HandlerFunc {
	return func(c *gin.Context, p session.Principal) {
		var q ListChecklistsQuery
		if err := request.BindQuery(c, &q); err != nil {
			h.writeServiceError(c, err)
			return
		}
		if ownOnly(p) {
			q.EmployeeID = p.EmployeeID
		}
		rows, total, err := h.service.List(c.Request.Context(), kind, q)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Paginated(c, rows, response.NewPagination(total, q.Page, q.Limit))
	}
}

func (h *Handler) GetByID(kind Kind) middleware.HandlerFunc {
	return func(c *gin.Context, p session.Principal) {
		id, err := request.ParamUUID(c, "id")
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		resp, err := h.service.GetByID(c.Request.Context(), kind, id)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		if ownOnly(p) && resp.EmployeeID != p.EmployeeID {
			h.writeServiceError(c, onboardingerrors.ErrChecklistNotFound)
			return
		}
		response.Success(c, http.StatusOK, resp)
	}
}

func (h *Handler) UpdateTask(kind Kind) middleware.HandlerFunc {
	return func(c *gin.Context, p session.Principal) {
		taskID, err := request.ParamUUID(c, "taskId")
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		var req UpdateTaskRequest
		if err := request.BindJSON(c, &req); err != nil {
			h.writeServiceError(c, err)
			return
		}
		resp, err := h.service.UpdateTask(c.Request.Context(), kind, taskID, req.Status)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp)
	}
}
