package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/assetflow/assetflow/internal/application/notification"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/infrastructure/auth"
	"github.com/assetflow/assetflow/internal/infrastructure/config"
	"github.com/assetflow/assetflow/internal/infrastructure/permission"
	"github.com/assetflow/assetflow/internal/infrastructure/realtime"
	"github.com/assetflow/assetflow/internal/interfaces/http/middleware"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

// Container holds infrastructure components, repositories, use cases,
// handlers and background services, and owns their shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	reviewRateLimiter    *middleware.RateLimiter

	jwtSvc     *auth.JWTService
	enforcer   *permission.Enforcer
	dispatcher *events.InMemoryEventDispatcher
	statusHub  *realtime.StatusHub
	notifier   *notification.Notifier
}

// NewContainer wires everything in dependency order. The event dispatcher is
// started before any handler can publish.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Redis, repositories, auth, permissions
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Event dispatcher, live status hub, notifications
	if err := c.initEvents(); err != nil {
		return nil, err
	}

	// Section 3: Use cases and handlers
	c.ucs = newUseCases(c.repos, c.db, c.dispatcher, cfg, log)
	c.hdlrs = newHandlers(c)

	return c, nil
}
