package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/http/dto"
	"adflow.app/tracker/internal/service"
)

type TemplateHandler struct {
	lifecycle service.LifecycleService
}

func NewTemplateHandler(lifecycle service.LifecycleService) *TemplateHandler {
	return &TemplateHandler{lifecycle: lifecycle}
}

// Create registers a template directly (operators only).
func (h *TemplateHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: brand_id is required")
		return
	}

	template, err := h.lifecycle.CreateTemplate(ctx, caller, req.ToParams())
	if err != nil {
		respondError(c, err, "create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}
