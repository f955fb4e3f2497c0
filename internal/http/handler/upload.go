package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/blob"
	"adflow.app/tracker/internal/http/dto"
)

type UploadHandler struct {
	signer blob.Signer
}

// NewUploadHandler accepts a nil signer; Sign then answers 503.
func NewUploadHandler(signer blob.Signer) *UploadHandler {
	return &UploadHandler{signer: signer}
}

func (h *UploadHandler) Sign(c *gin.Context) {
	ctx := c.Request.Context()
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	if h.signer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads are not configured", "code": "unavailable"})
		return
	}

	var req dto.SignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: organization_id, kind, filename and content_type are required")
		return
	}

	if !caller.CanAccess(req.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access to this organization is not allowed", "code": "forbidden"})
		return
	}

	ticket, err := h.signer.SignUpload(ctx, blob.UploadRequest{
		OrganizationID: req.OrganizationID,
		Kind:           blob.Kind(req.Kind),
		Filename:       req.Filename,
		ContentType:    req.ContentType,
	})
	if err != nil {
		if errors.Is(err, blob.ErrUnsupportedContentType) || errors.Is(err, blob.ErrUnsupportedKind) {
			badRequest(c, err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to sign upload", "error", err, "organization_id", req.OrganizationID)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to sign upload", "code": "unavailable"})
		return
	}

	c.JSON(http.StatusCreated, ticket)
}
