package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/model"
)

type StatusHandler struct{}

func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// List serves the lifecycle table so clients render badges and buttons from
// the same graph the server enforces.
func (h *StatusHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"statuses": model.ProjectStatuses()})
}
