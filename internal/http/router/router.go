package router

import (
	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/blob"
	"adflow.app/tracker/internal/http/handler"
	"adflow.app/tracker/internal/http/middleware"
	"adflow.app/tracker/internal/service"
)

type RouterConfig struct {
	// GatewayAPIKey, when set, must accompany every /api/v1 request.
	GatewayAPIKey string
	// Signer is nil when object storage is not configured.
	Signer blob.Signer
	// Limiter is nil when rate limiting is off.
	Limiter *middleware.RateLimiter
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	lifecycle := services.Lifecycle()
	catalog := services.Catalog()

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity(cfg.GatewayAPIKey), cfg.Limiter.Middleware())
	{
		StatusRouter(v1.Group("/project-statuses"), handler.NewStatusHandler())

		ProjectRouter(v1.Group("/projects"),
			handler.NewProjectHandler(lifecycle, catalog),
			handler.NewCreativeHandler(lifecycle, catalog),
			handler.NewCommentHandler(lifecycle, catalog),
		)
		CreativeRouter(v1.Group("/creatives"), handler.NewCreativeHandler(lifecycle, catalog))

		BrandRouter(v1.Group("/brands"), handler.NewBrandHandler(lifecycle, catalog))
		TemplateRouter(v1.Group("/templates"), handler.NewTemplateHandler(lifecycle))
		OrganizationRouter(v1.Group("/organizations"), handler.NewOrganizationHandler(catalog))

		UploadRouter(v1.Group("/uploads"), handler.NewUploadHandler(cfg.Signer))
	}
}
