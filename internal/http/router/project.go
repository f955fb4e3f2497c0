package router

import (
	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/http/handler"
)

// ProjectRouter mounts the project resource and its creative and comment
// collections.
func ProjectRouter(rg *gin.RouterGroup, projects *handler.ProjectHandler, creatives *handler.CreativeHandler, comments *handler.CommentHandler) {
	rg.GET("", projects.List)
	rg.POST("", projects.Create)
	rg.GET("/:id", projects.Get)

	rg.POST("/:id/status", projects.ChangeStatus)
	rg.POST("/:id/approve", projects.Approve)
	rg.POST("/:id/revision", projects.RequestRevision)

	rg.GET("/:id/creatives", creatives.List)
	rg.POST("/:id/creatives", creatives.Ingest)

	rg.GET("/:id/comments", comments.List)
	rg.POST("/:id/comments", comments.Add)
}

func CreativeRouter(rg *gin.RouterGroup, h *handler.CreativeHandler) {
	rg.DELETE("/:id", h.Delete)
}
