package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents user preferences stored in ~/.habplanner/config.json
// This file stores ONLY preferences, never catalog data
type UserConfig struct {
	// Default solar body for new habitats when not specified via CLI
	DefaultBody string `json:"default_body,omitempty"`

	// Habitat file opened by commands when no --file flag is given
	DefaultHabitat string `json:"default_habitat,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a new user config handler
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".habplanner"))
}

// NewUserConfigHandlerAt creates a handler storing config.json under configDir
func NewUserConfigHandlerAt(configDir string) (*UserConfigHandler, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: filepath.Join(configDir, "config.json"),
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultBody sets the default solar body
func (h *UserConfigHandler) SetDefaultBody(body string) error {
	if !IsKnownBody(body) {
		return fmt.Errorf("unknown solar body %q", body)
	}
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultBody = body
	return h.Save(config)
}

// SetDefaultHabitat sets the habitat file used when none is given
func (h *UserConfigHandler) SetDefaultHabitat(path string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve habitat path: %w", err)
	}
	config.DefaultHabitat = abs
	return h.Save(config)
}

// Clear removes every stored preference
func (h *UserConfigHandler) Clear() error {
	return h.Save(&UserConfig{})
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
