package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/http/dto"
	"adflow.app/tracker/internal/service"
)

type BrandHandler struct {
	lifecycle service.LifecycleService
	catalog   service.CatalogService
}

func NewBrandHandler(lifecycle service.LifecycleService, catalog service.CatalogService) *BrandHandler {
	return &BrandHandler{
		lifecycle: lifecycle,
		catalog:   catalog,
	}
}

func (h *BrandHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req dto.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: organization_id is required")
		return
	}

	brand, err := h.lifecycle.CreateBrand(ctx, caller, req.ToParams())
	if err != nil {
		respondError(c, err, "create brand")
		return
	}

	c.JSON(http.StatusCreated, brand)
}

func (h *BrandHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	brands, err := h.catalog.ListBrands(ctx, caller)
	if err != nil {
		respondError(c, err, "list brands")
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// ListTemplates returns the brand's active templates.
func (h *BrandHandler) ListTemplates(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	brandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	templates, err := h.catalog.ListTemplates(ctx, caller, brandID)
	if err != nil {
		respondError(c, err, "list templates")
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}
