package config

import (
	"time"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/catalog"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Catalog defaults
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "data/modules.json"
	}
	if cfg.Catalog.ExcludedFlags == nil {
		cfg.Catalog.ExcludedFlags = append([]string(nil), catalog.DefaultExcludedFlags...)
	}

	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimit.Requests == 0 {
		cfg.Server.RateLimit.Requests = 20
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 40
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.GinMode == "" {
		cfg.Server.GinMode = "release"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Planner defaults
	if cfg.Planner.DefaultBody == "" {
		cfg.Planner.DefaultBody = string(habitat.EarthLEO)
	}
	if cfg.Planner.DefaultType == "" {
		cfg.Planner.DefaultType = string(habitat.Station)
	}
}
