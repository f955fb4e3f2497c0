package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"adflow.app/tracker/common/logger"
	"adflow.app/tracker/internal/model"
)

// Headers set by the identity gateway in front of the tracker.
const (
	GatewayKeyHeader      = "X-Gateway-Key"
	ActorIDHeader         = "X-Actor-ID"
	ActorRoleHeader       = "X-Actor-Role"
	OrganizationIDsHeader = "X-Organization-IDs"

	RoleOperator = "operator"
	RoleMember   = "member"
)

type contextKey string

const callerContextKey contextKey = "caller"

// Identity trusts the gateway's identity headers and attaches the caller to
// the request context. When gatewayKey is set, requests without the matching
// X-Gateway-Key are rejected before any header is believed.
func Identity(gatewayKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gatewayKey != "" {
			presented := c.GetHeader(GatewayKeyHeader)
			if subtle.ConstantTimeCompare([]byte(presented), []byte(gatewayKey)) != 1 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing gateway key"})
				return
			}
		}

		caller, err := parseCaller(c.Request.Header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		ctx := context.WithValue(c.Request.Context(), callerContextKey, caller)
		ctx = logger.WithLogFields(ctx, logger.LogFields{ActorID: &caller.ActorID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCaller returns the caller attached by Identity. ok is false on routes
// mounted without it.
func GetCaller(ctx context.Context) (model.Caller, bool) {
	caller, ok := ctx.Value(callerContextKey).(model.Caller)
	return caller, ok
}

type identityError string

func (e identityError) Error() string { return string(e) }

func parseCaller(h http.Header) (model.Caller, error) {
	actorID, err := strconv.ParseInt(strings.TrimSpace(h.Get(ActorIDHeader)), 10, 64)
	if err != nil || actorID <= 0 {
		return model.Caller{}, identityError("missing or invalid " + ActorIDHeader)
	}

	caller := model.Caller{ActorID: actorID}
	switch strings.ToLower(strings.TrimSpace(h.Get(ActorRoleHeader))) {
	case RoleOperator:
		caller.Operator = true
	case RoleMember, "":
	default:
		return model.Caller{}, identityError("unknown " + ActorRoleHeader)
	}

	caller.OrganizationIDs = []int64{}
	for _, raw := range strings.Split(h.Get(OrganizationIDsHeader), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		orgID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || orgID <= 0 {
			return model.Caller{}, identityError("invalid " + OrganizationIDsHeader)
		}
		caller.OrganizationIDs = append(caller.OrganizationIDs, orgID)
	}

	return caller, nil
}
