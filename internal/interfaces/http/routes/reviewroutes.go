package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/assetflow/assetflow/internal/infrastructure/permission"
	reviewhandlers "github.com/assetflow/assetflow/internal/interfaces/http/handlers/review"
	"github.com/assetflow/assetflow/internal/interfaces/http/middleware"
)

type ReviewRouteConfig struct {
	Handler              *reviewhandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	// RateLimiter guards the anonymous token routes per client IP.
	RateLimiter *middleware.RateLimiter
}

func SetupReviewRoutes(engine *gin.Engine, config *ReviewRouteConfig) {
	perm := config.PermissionMiddleware

	engine.POST("/shared-reviews",
		config.AuthMiddleware.RequireAuth(),
		perm.RequirePermission(permission.ResourceSharedReview, permission.ActionCreate),
		config.Handler.CreateInvitation)
	engine.DELETE("/review-invitations/:id",
		config.AuthMiddleware.RequireAuth(),
		perm.RequirePermission(permission.ResourceSharedReview, permission.ActionDelete),
		config.Handler.CancelInvitation)

	shared := engine.Group("/shared-reviews/:token")
	if config.RateLimiter != nil {
		shared.Use(config.RateLimiter.Limit())
	}
	{
		shared.GET("", config.Handler.GetOverview)
		shared.POST("/submit", config.Handler.Submit)

		shared.GET("/annotations", config.Handler.ListAnnotations)
		shared.POST("/annotations", config.Handler.CreateAnnotation)
		shared.PUT("/annotations/:annotationId", config.Handler.UpdateAnnotation)
		shared.DELETE("/annotations/:annotationId", config.Handler.DeleteAnnotation)
	}
}
