package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/assetflow/assetflow/internal/infrastructure/permission"
	realtimehandlers "github.com/assetflow/assetflow/internal/interfaces/http/handlers/realtime"
	"github.com/assetflow/assetflow/internal/interfaces/http/middleware"
)

type RealtimeRouteConfig struct {
	Handler              *realtimehandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupRealtimeRoutes registers the live status feed. Browsers cannot set
// headers on a WebSocket upgrade, so the token may come from the query.
func SetupRealtimeRoutes(engine *gin.Engine, config *RealtimeRouteConfig) {
	engine.GET("/ws/asset-status",
		config.AuthMiddleware.RequireAuthOrQueryToken(),
		config.PermissionMiddleware.RequirePermission(permission.ResourceAssetStatus, permission.ActionRead),
		config.Handler.StatusFeed)
}
