package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/assetflow/assetflow/internal/shared/authorization"
)

const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	HeaderRequestID = "X-Request-ID"
)

// CurrentUser returns the identity set by RequireAuth.
func CurrentUser(c *gin.Context) (uint, authorization.UserRole, bool) {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, "", false
	}
	userID, ok := v.(uint)
	if !ok || userID == 0 {
		return 0, "", false
	}
	role, ok := authorization.ParseUserRole(c.GetString(ContextKeyUserRole))
	if !ok {
		return 0, "", false
	}
	return userID, role, true
}
