package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/interfaces/http/handlers/site"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
)

// SiteRouteConfig holds dependencies for the public site.
type SiteRouteConfig struct {
	PageHandler     *site.PageHandler
	FormHandler     *site.FormHandler
	LanguageHandler *site.LanguageHandler
	HealthHandler   *site.HealthHandler
	FormRateLimiter *middleware.RateLimiter
}

// SetupSiteRoutes configures the public pages, form submissions and the
// language switch.
func SetupSiteRoutes(engine *gin.Engine, cfg *SiteRouteConfig) {
	engine.GET("/health", cfg.HealthHandler.Health)

	engine.GET("/", cfg.PageHandler.Home)
	engine.GET("/about", cfg.PageHandler.About)
	engine.GET("/programs", cfg.PageHandler.Programs)
	engine.GET("/faq", cfg.PageHandler.FAQ)

	engine.GET("/contact", cfg.FormHandler.ContactPage)
	engine.GET("/volunteer", cfg.FormHandler.VolunteerPage)

	limit := cfg.FormRateLimiter.Limit(cfg.FormHandler.RateLimited)
	engine.POST("/contact", limit, cfg.FormHandler.SubmitContact)
	engine.POST("/volunteer", limit, cfg.FormHandler.SubmitVolunteer)

	engine.POST("/language", cfg.LanguageHandler.Switch)
}
