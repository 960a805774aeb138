package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	settingsApp "github.com/ilim-academy/website/internal/application/settings"
	uploadApp "github.com/ilim-academy/website/internal/application/upload"
	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/infrastructure/config"
	"github.com/ilim-academy/website/internal/infrastructure/ratelimit"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	"github.com/ilim-academy/website/internal/shared/logger"
)

// Container holds the infrastructure, services, handlers and middlewares of
// the site and wires them together. Shutdown releases what it opened.
type Container struct {
	// Core infrastructure
	engine   *gin.Engine
	cfg      *config.Config
	log      logger.Interface
	version  string
	redis    *redis.Client
	backend  *backend.Client
	limiter  ratelimit.RateLimiter
	renderer *view.Renderer

	// Locale
	resolver *locale.Resolver
	switcher *locale.Switcher

	// Application services
	settingsService *settingsApp.Service
	uploadService   *uploadApp.Service

	// Handlers
	pageBase *common.PageBase
	hdlrs    *allHandlers

	// Middlewares
	authMiddleware   *middleware.AuthMiddleware
	formRateLimiter  *middleware.RateLimiter
	loginRateLimiter *middleware.RateLimiter
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(cfg *config.Config, version string, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:  gin.New(),
		cfg:     cfg,
		log:     log,
		version: version,
	}

	// Section 1: Infrastructure - Redis, backend client, rate limiting
	c.initInfrastructure()

	// Section 2: Display timezone, locale bundles, resolver and switcher
	if err := c.initLocale(); err != nil {
		return nil, err
	}

	// Section 3: Application services - settings cache, image uploads
	c.initServices()

	// Section 4: Views, handlers and middlewares
	if err := c.initHandlers(); err != nil {
		return nil, err
	}

	return c, nil
}

// WarmUp loads the site settings once so the first page view does not wait
// on the backend.
func (c *Container) WarmUp(ctx context.Context) {
	if state := c.settingsService.Refresh(ctx); state.Failed() {
		c.log.Warnw("site settings unavailable at startup, using configured fallback", "error", state.Err)
		return
	}
	c.log.Infow("site settings loaded")
}

// Shutdown closes the Redis connection when one was opened.
func (c *Container) Shutdown() {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		c.log.Warnw("failed to close redis client", "error", err)
	}
}
