package config

// PlannerConfig holds defaults for newly created habitats
type PlannerConfig struct {
	DefaultBody string `mapstructure:"default_body" validate:"required,solar_body"`
	DefaultType string `mapstructure:"default_type" validate:"required,oneof=station base"`
}
