package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/http/dto"
	"adflow.app/tracker/internal/service"
)

type OrganizationHandler struct {
	catalog service.CatalogService
}

func NewOrganizationHandler(catalog service.CatalogService) *OrganizationHandler {
	return &OrganizationHandler{catalog: catalog}
}

func (h *OrganizationHandler) Quota(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}

	usage, err := h.catalog.GetQuota(ctx, caller, orgID)
	if err != nil {
		respondError(c, err, "get quota")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuotaResponse(usage))
}

// Activity pages through the organization's audit trail, newest first.
func (h *OrganizationHandler) Activity(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit, ok := queryInt32(c, "limit", 50)
	if !ok {
		return
	}
	offset, ok := queryInt32(c, "offset", 0)
	if !ok {
		return
	}

	logs, err := h.catalog.ListActivity(ctx, caller, orgID, limit, offset)
	if err != nil {
		respondError(c, err, "list activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": logs})
}
