package http

import (
	"context"

	"github.com/assetflow/assetflow/internal/interfaces/http/handlers"
	allocationHandlers "github.com/assetflow/assetflow/internal/interfaces/http/handlers/allocation"
	assetHandlers "github.com/assetflow/assetflow/internal/interfaces/http/handlers/asset"
	realtimeHandlers "github.com/assetflow/assetflow/internal/interfaces/http/handlers/realtime"
	reviewHandlers "github.com/assetflow/assetflow/internal/interfaces/http/handlers/review"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler     *handlers.HealthHandler
	allocationHandler *allocationHandlers.Handler
	assetHandler      *assetHandlers.Handler
	reviewHandler     *reviewHandlers.Handler
	realtimeHandler   *realtimeHandlers.Handler
}

func newHandlers(c *Container) *allHandlers {
	ucs := c.ucs
	log := c.log

	checks := map[string]handlers.Pinger{
		"database": handlers.PingerFunc(func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		"redis": handlers.PingerFunc(func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}),
	}

	return &allHandlers{
		healthHandler: handlers.NewHealthHandler(checks),
		allocationHandler: allocationHandlers.NewHandler(
			ucs.assign, ucs.unassign, ucs.listQAAssetLists, ucs.getAllocationList, log,
		),
		assetHandler: assetHandlers.NewHandler(
			ucs.changeStatus, ucs.batchChangeStatus, ucs.getStatusHistory, log,
		),
		reviewHandler: reviewHandlers.NewHandler(
			ucs.createInvitation, ucs.cancelInvitation, ucs.reviewOverview, ucs.submitResponses, ucs.annotations, log,
		),
		realtimeHandler: realtimeHandlers.NewHandler(c.statusHub, c.cfg.Server.AllowedOrigins, log),
	}
}
