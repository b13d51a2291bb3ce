package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/assetflow/assetflow/internal/infrastructure/permission"
	assethandlers "github.com/assetflow/assetflow/internal/interfaces/http/handlers/asset"
	"github.com/assetflow/assetflow/internal/interfaces/http/middleware"
)

type AssetRouteConfig struct {
	Handler              *assethandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAssetRoutes(engine *gin.Engine, config *AssetRouteConfig) {
	perm := config.PermissionMiddleware
	assets := engine.Group("/assets")
	assets.Use(config.AuthMiddleware.RequireAuth())
	{
		// Batch endpoint is static and must not be shadowed by /:id.
		assets.POST("/status",
			perm.RequirePermission(permission.ResourceAssetStatus, permission.ActionUpdate),
			config.Handler.BatchChangeStatus)

		assets.PATCH("/:id/status",
			perm.RequirePermission(permission.ResourceAssetStatus, permission.ActionUpdate),
			config.Handler.ChangeStatus)
		assets.GET("/:id/status-history",
			perm.RequirePermission(permission.ResourceAssetStatus, permission.ActionRead),
			config.Handler.GetStatusHistory)
	}
}
