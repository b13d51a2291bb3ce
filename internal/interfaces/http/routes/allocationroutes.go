package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/assetflow/assetflow/internal/infrastructure/permission"
	allocationhandlers "github.com/assetflow/assetflow/internal/interfaces/http/handlers/allocation"
	"github.com/assetflow/assetflow/internal/interfaces/http/middleware"
)

type AllocationRouteConfig struct {
	Handler              *allocationhandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAllocationRoutes(engine *gin.Engine, config *AllocationRouteConfig) {
	perm := config.PermissionMiddleware
	authed := engine.Group("")
	authed.Use(config.AuthMiddleware.RequireAuth())
	{
		authed.POST("/assets/assign",
			perm.RequirePermission(permission.ResourceAssignment, permission.ActionCreate),
			config.Handler.Assign)
		authed.DELETE("/assets/assign",
			perm.RequirePermission(permission.ResourceAssignment, permission.ActionDelete),
			config.Handler.Unassign)

		authed.GET("/qa/asset-lists",
			perm.RequirePermission(permission.ResourceQAAssetList, permission.ActionRead),
			config.Handler.ListQAAssetLists)

		authed.GET("/allocation-lists/:id",
			perm.RequirePermission(permission.ResourceAllocationList, permission.ActionRead),
			config.Handler.GetAllocationList)
	}
}
