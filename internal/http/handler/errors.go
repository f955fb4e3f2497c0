package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adflow.app/tracker/internal/http/middleware"
	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/service"
)

// respondError maps a service error onto a status code. action names the
// failed operation in the 503 body, e.g. "approve project".
func respondError(c *gin.Context, err error, action string) {
	ctx := c.Request.Context()

	var (
		validationErr *service.ValidationError
		quotaErr      *service.QuotaError
		transitionErr *service.TransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"code":   "validation_failed",
			"fields": validationErr.Fields,
		})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation_failed"})
	case errors.As(err, &quotaErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     quotaErr.Error(),
			"code":      "quota_exceeded",
			"resource":  quotaErr.Resource,
			"available": quotaErr.Available,
			"requested": quotaErr.Requested,
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "access to this organization is not allowed", "code": "forbidden"})
	case errors.As(err, &transitionErr):
		status, code := http.StatusConflict, "invalid_transition"
		switch {
		case errors.Is(err, service.ErrTerminalState):
			code = "terminal_state"
		case errors.Is(err, service.ErrPreconditionFailed):
			status, code = http.StatusUnprocessableEntity, "precondition_failed"
		}
		c.JSON(status, gin.H{
			"error":  transitionErr.Error(),
			"code":   code,
			"from":   transitionErr.From,
			"to":     transitionErr.To,
			"reason": transitionErr.Reason,
		})
	case errors.Is(err, service.ErrTerminalState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "terminal_state"})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "invalid_transition"})
	case errors.Is(err, service.ErrPreconditionFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "precondition_failed"})
	default:
		slog.ErrorContext(ctx, "failed to "+action, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to " + action, "code": "unavailable"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "code": "bad_request"})
}

// callerFrom aborts with 401 when the identity middleware did not run.
func callerFrom(c *gin.Context) (model.Caller, bool) {
	caller, ok := middleware.GetCaller(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	}
	return caller, ok
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryInt32(c *gin.Context, name string, fallback int32) (int32, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return int32(v), true
}
