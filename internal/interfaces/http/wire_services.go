package http

import (
	"context"
	"fmt"

	"github.com/assetflow/assetflow/internal/application/notification"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/infrastructure/auth"
	"github.com/assetflow/assetflow/internal/infrastructure/cache"
	"github.com/assetflow/assetflow/internal/infrastructure/email"
	"github.com/assetflow/assetflow/internal/infrastructure/permission"
	"github.com/assetflow/assetflow/internal/infrastructure/ratelimit"
	"github.com/assetflow/assetflow/internal/infrastructure/realtime"
	"github.com/assetflow/assetflow/internal/interfaces/http/middleware"
)

const (
	eventBufferSize = 1024

	reviewRateLimitScope = "shared-review"
)

// initInfrastructure connects Redis and builds repositories, auth and
// permission enforcement.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	redisClient, err := cache.NewRedisClient(context.Background(), &cfg.Redis)
	if err != nil {
		return err
	}
	c.redis = redisClient
	log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())

	c.repos = newRepositories(c.db, log)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	if err := enforcer.SeedDefaultPolicies(); err != nil {
		return fmt.Errorf("failed to seed permission policies: %w", err)
	}
	c.enforcer = enforcer
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, log)

	c.reviewRateLimiter = middleware.NewRateLimiter(
		ratelimit.NewRedisRateLimiter(c.redis),
		reviewRateLimitScope,
		ratelimit.Policy{PerMinute: cfg.Review.RateLimitPerMinute, PerHour: cfg.Review.RateLimitPerHour},
		log,
	)
	return nil
}

// initEvents starts the dispatcher and subscribes notification handlers and
// the live status hub.
func (c *Container) initEvents() error {
	log := c.log

	c.dispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, log.Named("events"))
	c.statusHub = realtime.NewStatusHub(log.Named("status-hub"), nil)

	c.notifier = notification.NewNotifier(
		c.repos.userRepo,
		email.NewMailer(&c.cfg.Email, log),
		cache.NewNotificationDeduplicator(c.redis),
		c.statusHub,
		c.cfg.Review.NotifyDedupWindow(),
		log.Named("notifier"),
	)
	if err := c.notifier.Register(c.dispatcher); err != nil {
		return err
	}

	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	return nil
}

// Shutdown stops background services in reverse start order.
func (c *Container) Shutdown() {
	if c.statusHub != nil {
		c.statusHub.Shutdown()
	}
	if c.dispatcher != nil {
		if err := c.dispatcher.Stop(); err != nil {
			c.log.Warnw("failed to stop event dispatcher", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
