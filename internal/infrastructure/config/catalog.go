package config

// CatalogConfig locates the module dataset and the optional rule overrides
type CatalogConfig struct {
	// Path to the module catalog JSON array
	Path string `mapstructure:"path" validate:"required"`

	// RulesPath is an optional YAML file overriding the built-in rule tables
	RulesPath string `mapstructure:"rules_path"`

	// ExcludedFlags drops records carrying any of these boolean flags
	ExcludedFlags []string `mapstructure:"excluded_flags" validate:"dive,required"`
}
