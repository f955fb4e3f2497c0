package router

import (
	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/http/handler"
)

func BrandRouter(rg *gin.RouterGroup, h *handler.BrandHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id/templates", h.ListTemplates)
}

func TemplateRouter(rg *gin.RouterGroup, h *handler.TemplateHandler) {
	rg.POST("", h.Create)
}

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler) {
	rg.GET("/:id/quota", h.Quota)
	rg.GET("/:id/activity", h.Activity)
}

func StatusRouter(rg *gin.RouterGroup, h *handler.StatusHandler) {
	rg.GET("", h.List)
}

func UploadRouter(rg *gin.RouterGroup, h *handler.UploadHandler) {
	rg.POST("/sign", h.Sign)
}
