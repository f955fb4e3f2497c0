package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/http/dto"
	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/service"
)

type ProjectHandler struct {
	lifecycle service.LifecycleService
	catalog   service.CatalogService
}

func NewProjectHandler(lifecycle service.LifecycleService, catalog service.CatalogService) *ProjectHandler {
	return &ProjectHandler{
		lifecycle: lifecycle,
		catalog:   catalog,
	}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: brand_id is required")
		return
	}

	project, err := h.lifecycle.CreateProject(ctx, caller, req.ToParams())
	if err != nil {
		respondError(c, err, "create project")
		return
	}

	slog.InfoContext(ctx, "project created via API", "project_id", project.ID)
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.catalog.GetProject(ctx, caller, projectID)
	if err != nil {
		respondError(c, err, "get project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// List accepts status, brand_id, limit and offset query parameters.
func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var params service.ListProjectsParams
	if raw := c.Query("status"); raw != "" {
		status := model.ProjectStatus(raw)
		params.Status = &status
	}
	if raw := c.Query("brand_id"); raw != "" {
		brandID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "invalid brand_id")
			return
		}
		params.BrandID = &brandID
	}
	if params.Limit, ok = queryInt32(c, "limit", 50); !ok {
		return
	}
	if params.Offset, ok = queryInt32(c, "offset", 0); !ok {
		return
	}

	projects, err := h.catalog.ListProjects(ctx, caller, params)
	if err != nil {
		respondError(c, err, "list projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectResponses(projects)})
}

func (h *ProjectHandler) ChangeStatus(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: status is required")
		return
	}

	project, err := h.lifecycle.ChangeStatus(ctx, caller, service.ChangeStatusParams{
		ProjectID: projectID,
		Status:    req.Status,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err, "change project status")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Approve(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	// The body is optional.
	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.lifecycle.Approve(ctx, caller, service.ApproveParams{
		ProjectID: projectID,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err, "approve project")
		return
	}

	c.JSON(http.StatusOK, dto.ToApproveResponse(result))
}

func (h *ProjectHandler) RequestRevision(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RequestRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	project, err := h.lifecycle.RequestRevision(ctx, caller, service.RequestRevisionParams{
		ProjectID: projectID,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err, "request revision")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}
