package config

import "time"

// ServerConfig holds the HTTP and websocket server configuration
type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`

	// AllowedOrigins for websocket upgrades; empty allows same-origin only
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// Rate limiting settings, applied per client address
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Grace period for in-flight requests on shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// GinMode: debug, release, test
	GinMode string `mapstructure:"gin_mode" validate:"required,oneof=debug release test"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}
