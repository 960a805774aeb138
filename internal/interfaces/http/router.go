package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/infrastructure/config"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	"github.com/ilim-academy/website/internal/interfaces/http/routes"
	"github.com/ilim-academy/website/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(cfg *config.Config, version string, log logger.Interface) (*Router, error) {
	c, err := NewContainer(cfg, version, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	base := r.pageBase

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.Recovery(r.log, base.RenderError))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.Language(r.resolver.DefaultLanguage(), r.cfg.Cookie))

	routes.SetupSiteRoutes(r.engine, &routes.SiteRouteConfig{
		PageHandler:     r.hdlrs.pageHandler,
		FormHandler:     r.hdlrs.formHandler,
		LanguageHandler: r.hdlrs.languageHandler,
		HealthHandler:   r.hdlrs.healthHandler,
		FormRateLimiter: r.formRateLimiter,
	})

	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		AuthHandler:      r.hdlrs.authHandler,
		DashboardHandler: r.hdlrs.dashboardHandler,
		ContactHandler:   r.hdlrs.contactHandler,
		VolunteerHandler: r.hdlrs.volunteerHandler,
		UserHandler:      r.hdlrs.userHandler,
		SettingHandler:   r.hdlrs.settingHandler,
		AuthMiddleware:   r.authMiddleware,
		LoginRateLimiter: r.loginRateLimiter,
		CookieConfig:     r.cfg.Cookie,
		OnReject:         base.RenderError,
		Logger:           r.log,
	})

	r.engine.NoRoute(base.NotFound)
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Shutdown releases the router's connections.
func (r *Router) Shutdown() {
	r.Container.Shutdown()
}
