package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilim-academy/website/internal/interfaces/http/handlers/admin"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/site"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	"github.com/ilim-academy/website/internal/shared/services/markdown"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// Public site
	pageHandler     *site.PageHandler
	formHandler     *site.FormHandler
	languageHandler *site.LanguageHandler
	healthHandler   *site.HealthHandler

	// Admin
	authHandler      *admin.AuthHandler
	dashboardHandler *admin.DashboardHandler
	contactHandler   *admin.ContactHandler
	volunteerHandler *admin.VolunteerHandler
	userHandler      *admin.UserHandler
	settingHandler   *admin.SettingHandler
}

func (c *Container) initHandlers() error {
	renderer, err := view.NewRenderer(markdown.NewRenderer())
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	c.renderer = renderer
	c.engine.HTMLRender = renderer

	cfg := c.cfg
	log := c.log
	api := c.backend

	c.pageBase = common.NewPageBase(c.resolver, c.settingsService, cfg.Cookie, log.Named("http"))
	base := c.pageBase

	c.hdlrs = &allHandlers{
		pageHandler:     site.NewPageHandler(base),
		formHandler:     site.NewFormHandler(base, api.Contacts, api.Volunteers),
		languageHandler: site.NewLanguageHandler(base, c.switcher),
		healthHandler:   site.NewHealthHandler(c.version, c.healthChecks()),

		authHandler:      admin.NewAuthHandler(base, api.Auth),
		dashboardHandler: admin.NewDashboardHandler(base, api.Dashboard),
		contactHandler:   admin.NewContactHandler(base, api.Contacts),
		volunteerHandler: admin.NewVolunteerHandler(base, api.Volunteers),
		userHandler:      admin.NewUserHandler(base, api.Users),
		settingHandler:   admin.NewSettingHandler(base, c.settingsService, c.uploadService),
	}

	limits := c.rateLimitConfig()
	c.authMiddleware = middleware.NewAuthMiddleware(cfg.Cookie, log)
	c.formRateLimiter = middleware.NewRateLimiter(c.limiter, limits, "forms", log)
	c.loginRateLimiter = middleware.NewRateLimiter(c.limiter, limits, "login", log)
	return nil
}

// healthChecks reports the backend through the cached settings and Redis
// when it is in use.
func (c *Container) healthChecks() map[string]site.Pinger {
	checks := map[string]site.Pinger{
		"backend": func(ctx context.Context) error {
			if state := c.settingsService.Current(ctx); state.Failed() {
				return errors.New(state.Err)
			}
			return nil
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	return checks
}
