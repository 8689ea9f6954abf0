package files

import (
	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *middleware.Gate) {
	files := r.Group("/files")
	{
		files.POST("/upload-url", gate.Handle(rbac.ModuleFiles, rbac.ActionCreate, handler.UploadURL))
		files.GET("/download-url", gate.Handle(rbac.ModuleFiles, rbac.ActionView, handler.DownloadURL))
	}
}
