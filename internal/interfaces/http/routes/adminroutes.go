package routes

import (
	"github.com/gin-gonic/gin"

	adminHandlers "github.com/ilim-academy/website/internal/interfaces/http/handlers/admin"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	"github.com/ilim-academy/website/internal/shared/config"
	"github.com/ilim-academy/website/internal/shared/logger"
)

// AdminRouteConfig holds dependencies for the administration area.
type AdminRouteConfig struct {
	AuthHandler      *adminHandlers.AuthHandler
	DashboardHandler *adminHandlers.DashboardHandler
	ContactHandler   *adminHandlers.ContactHandler
	VolunteerHandler *adminHandlers.VolunteerHandler
	UserHandler      *adminHandlers.UserHandler
	SettingHandler   *adminHandlers.SettingHandler
	AuthMiddleware   *middleware.AuthMiddleware
	LoginRateLimiter *middleware.RateLimiter
	CookieConfig     config.CookieConfig
	// OnReject renders CSRF and rate limit rejections for browser requests.
	OnReject middleware.Rejector
	Logger   logger.Interface
}

// SetupAdminRoutes configures the admin routes. Every admin POST except the
// login form carries a CSRF token.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(middleware.CSRF(cfg.CookieConfig, cfg.OnReject, middleware.LoginPath))

	admin.GET("/login", cfg.AuthMiddleware.OptionalAuth(), cfg.AuthHandler.LoginPage)
	admin.POST("/login", cfg.LoginRateLimiter.Limit(cfg.OnReject), cfg.AuthHandler.Login)

	protected := admin.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/logout", cfg.AuthHandler.Logout)
		protected.GET("", cfg.DashboardHandler.Dashboard)

		protected.GET("/contacts", cfg.ContactHandler.List)
		protected.POST("/contacts/:id/status", cfg.ContactHandler.UpdateStatus)
		protected.POST("/contacts/:id/delete", cfg.ContactHandler.Delete)

		protected.GET("/volunteers", cfg.VolunteerHandler.List)
		protected.POST("/volunteers/:id/review", cfg.VolunteerHandler.Review)
		protected.POST("/volunteers/:id/delete", cfg.VolunteerHandler.Delete)

		protected.GET("/users", cfg.UserHandler.List)
		protected.POST("/users/:id/delete", cfg.UserHandler.Delete)

		protected.GET("/settings", cfg.SettingHandler.Page)
		protected.POST("/settings", cfg.SettingHandler.Save)
		protected.POST("/uploads", middleware.ErrorHandler(cfg.Logger), cfg.SettingHandler.Upload)
	}
}
