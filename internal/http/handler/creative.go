package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/http/dto"
	"adflow.app/tracker/internal/service"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type CreativeHandler struct {
	lifecycle service.LifecycleService
	catalog   service.CatalogService
}

func NewCreativeHandler(lifecycle service.LifecycleService, catalog service.CatalogService) *CreativeHandler {
	return &CreativeHandler{
		lifecycle: lifecycle,
		catalog:   catalog,
	}
}

// Ingest adds a batch of creatives. The idempotency key may come from the
// body or the Idempotency-Key header; the body wins when both are set.
func (h *CreativeHandler) Ingest(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.IngestCreativesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.IdempotencyKey == nil {
		if key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)); key != "" {
			req.IdempotencyKey = &key
		}
	}

	result, err := h.lifecycle.IngestCreatives(ctx, caller, req.ToParams(projectID))
	if err != nil {
		respondError(c, err, "ingest creatives")
		return
	}

	status := http.StatusCreated
	if result.Duplicated {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToIngestCreativesResponse(result))
}

func (h *CreativeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	creatives, err := h.catalog.ListCreatives(ctx, caller, projectID)
	if err != nil {
		respondError(c, err, "list creatives")
		return
	}

	c.JSON(http.StatusOK, gin.H{"creatives": creatives})
}

func (h *CreativeHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	creativeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.lifecycle.DeleteCreative(ctx, caller, creativeID)
	if err != nil {
		respondError(c, err, "delete creative")
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectResponse(project)})
}
