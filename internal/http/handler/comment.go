package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/http/dto"
	"adflow.app/tracker/internal/service"
)

type CommentHandler struct {
	lifecycle service.LifecycleService
	catalog   service.CatalogService
}

func NewCommentHandler(lifecycle service.LifecycleService, catalog service.CatalogService) *CommentHandler {
	return &CommentHandler{
		lifecycle: lifecycle,
		catalog:   catalog,
	}
}

func (h *CommentHandler) Add(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	comment, err := h.lifecycle.AddComment(ctx, caller, service.AddCommentParams{
		ProjectID: projectID,
		Content:   req.Content,
	})
	if err != nil {
		respondError(c, err, "add comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.catalog.ListComments(ctx, caller, projectID)
	if err != nil {
		respondError(c, err, "list comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
