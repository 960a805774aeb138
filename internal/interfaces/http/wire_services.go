package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	settingsApp "github.com/ilim-academy/website/internal/application/settings"
	uploadApp "github.com/ilim-academy/website/internal/application/upload"
	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/infrastructure/config"
	"github.com/ilim-academy/website/internal/infrastructure/imaging"
	localeInfra "github.com/ilim-academy/website/internal/infrastructure/locale"
	"github.com/ilim-academy/website/internal/infrastructure/ratelimit"
	"github.com/ilim-academy/website/internal/shared/biztime"
	"github.com/ilim-academy/website/internal/shared/logger"
)

const redisPingTimeout = 3 * time.Second

func (c *Container) initInfrastructure() {
	cfg := c.cfg
	log := c.log

	c.backend = backend.NewClient(cfg.Backend.BaseURL,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithUploadTimeout(cfg.Backend.UploadTimeout),
		backend.WithLogger(log.Named("backend")),
	)

	if cfg.Redis.Enabled {
		c.redis = initRedis(cfg, log)
	}
	if c.redis != nil {
		c.limiter = ratelimit.NewRedisRateLimiter(c.redis)
	} else {
		c.limiter = ratelimit.NewMemoryRateLimiter()
	}
}

// initRedis creates and tests the Redis client connection. An unreachable
// server is logged and nil is returned so rate limiting stays in-process.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, using in-process rate limiting", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = redisClient.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient
}

func (c *Container) initLocale() error {
	if err := biztime.Init(c.cfg.Site.Timezone); err != nil {
		return err
	}

	defaultLang, ok := locale.ParseLanguage(c.cfg.Locale.DefaultLanguage)
	if !ok {
		return fmt.Errorf("unsupported default language %q", c.cfg.Locale.DefaultLanguage)
	}

	bundles, err := localeInfra.NewLoader(c.cfg.Locale.Dir, c.log.Named("locale")).Load()
	if err != nil {
		return fmt.Errorf("failed to load locale bundles: %w", err)
	}
	if gaps := locale.Check(bundles, defaultLang); len(gaps) > 0 {
		c.log.Warnw("locale bundles have missing translations", "gaps", len(gaps))
	}

	c.resolver = locale.NewResolver(bundles, defaultLang, c.log.Named("locale"))
	c.switcher = locale.NewSwitcher(c.cfg.Locale.SwitchCooldown)
	return nil
}

func (c *Container) initServices() {
	cfg := c.cfg

	fallback := backend.Settings{
		SiteName: cfg.Site.Name,
		Email:    cfg.Site.Email,
		Phone:    cfg.Site.Phone,
		Address:  cfg.Site.Address,
	}
	c.settingsService = settingsApp.NewService(c.backend.Settings, fallback, cfg.Backend.SettingsTTL, c.log.Named("settings"))

	compressor := imaging.NewJPEGCompressor(cfg.Upload.MaxBytes, cfg.Upload.MinQuality)
	c.uploadService = uploadApp.NewService(c.backend.Uploads, compressor, cfg.Upload.MaxBytes, c.log.Named("upload"))
}

func (c *Container) rateLimitConfig() ratelimit.RateLimitConfig {
	return ratelimit.RateLimitConfig{
		RequestsPerMinute: c.cfg.RateLimit.RequestsPerMinute,
		RequestsPerHour:   c.cfg.RateLimit.RequestsPerHour,
		BurstSize:         c.cfg.RateLimit.Burst,
	}
}
