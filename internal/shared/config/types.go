package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// BackendConfig points at the external REST API that owns contacts, volunteers, users and settings.
type BackendConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
	// SettingsTTL is how long fetched site settings are reused before refreshing.
	SettingsTTL time.Duration `mapstructure:"settings_ttl"`
}

type LocaleConfig struct {
	DefaultLanguage string        `mapstructure:"default_language"`
	Dir             string        `mapstructure:"dir"`
	SwitchCooldown  time.Duration `mapstructure:"switch_cooldown"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RateLimitConfig bounds public form submissions per client IP.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	RequestsPerHour   int `mapstructure:"requests_per_hour"`
	Burst             int `mapstructure:"burst"`
}

type UploadConfig struct {
	MaxBytes   int64 `mapstructure:"max_bytes"`
	MinQuality int   `mapstructure:"min_quality"`
}

type CookieConfig struct {
	Domain   string `mapstructure:"domain"`
	Path     string `mapstructure:"path"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
	// SessionMaxAge bounds the lifetime of the admin token cookies.
	SessionMaxAge time.Duration `mapstructure:"session_max_age"`
}

// SiteConfig is the static fallback used when the backend settings cannot be fetched.
type SiteConfig struct {
	Name    string `mapstructure:"name"`
	Email   string `mapstructure:"email"`
	Phone   string `mapstructure:"phone"`
	Address string `mapstructure:"address"`
	// Timezone is the IANA zone used to display backend timestamps.
	Timezone string `mapstructure:"timezone"`
}
