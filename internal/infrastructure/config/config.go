package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/ilim-academy/website/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Backend   sharedConfig.BackendConfig   `mapstructure:"backend"`
	Locale    sharedConfig.LocaleConfig    `mapstructure:"locale"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
	Upload    sharedConfig.UploadConfig    `mapstructure:"upload"`
	Cookie    sharedConfig.CookieConfig    `mapstructure:"cookie"`
	Site      sharedConfig.SiteConfig      `mapstructure:"site"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// The config file is optional; defaults cover every key.
func Load(env string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("WEBSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Backend defaults
	v.SetDefault("backend.base_url", "http://localhost:5000/api")
	v.SetDefault("backend.timeout", "15s")
	v.SetDefault("backend.upload_timeout", "30s")
	v.SetDefault("backend.settings_ttl", "30s")

	// Locale defaults
	v.SetDefault("locale.default_language", "ar")
	v.SetDefault("locale.dir", "")
	v.SetDefault("locale.switch_cooldown", "300ms")

	// Redis defaults (disabled: in-process rate limiting)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Form submission rate limits
	v.SetDefault("ratelimit.requests_per_minute", 5)
	v.SetDefault("ratelimit.requests_per_hour", 30)
	v.SetDefault("ratelimit.burst", 3)

	// Upload defaults
	v.SetDefault("upload.max_bytes", 1<<20)
	v.SetDefault("upload.min_quality", 40)

	// Cookie defaults
	v.SetDefault("cookie.domain", "")
	v.SetDefault("cookie.path", "/")
	v.SetDefault("cookie.secure", false)
	v.SetDefault("cookie.same_site", "Lax")
	v.SetDefault("cookie.session_max_age", "24h")

	// Site fallback defaults
	v.SetDefault("site.name", "Ilim Academy")
	v.SetDefault("site.email", "info@ilim.academy")
	v.SetDefault("site.phone", "")
	v.SetDefault("site.address", "")
	v.SetDefault("site.timezone", "Europe/Istanbul")
}
