package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	// Arrange
	path := writeFile(t, "config.yaml", `
catalog:
  path: /srv/modules.json
server:
  port: 9090
  shutdown_timeout: 3s
planner:
  default_type: base
  default_body: Mars
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/srv/modules.json", cfg.Catalog.Path)
	assert.Equal(t, []string{"alienModule", "destroyed", "automated"}, cfg.Catalog.ExcludedFlags)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "base", cfg.Planner.DefaultType)
	assert.Equal(t, "Mars", cfg.Planner.DefaultBody)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "server:\n  port: 9090\n")
	t.Setenv("HP_SERVER_PORT", "7070")
	t.Setenv("HP_LOGGING_LEVEL", "debug")
	t.Setenv("HABPLANNER_CATALOG", "/tmp/catalog.json")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/catalog.json", cfg.Catalog.Path)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := map[string]string{
		"bad log level":   "logging:\n  level: loud\n",
		"bad gin mode":    "server:\n  gin_mode: turbo\n",
		"unknown body":    "planner:\n  default_body: Pluto\n",
		"bad type":        "planner:\n  default_type: moon\n",
		"file needs path": "logging:\n  output: file\n",
		"metrics path":    "metrics:\n  path: metrics\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadConfig(writeFile(t, "config.yaml", content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoadConfigOrDefault(t *testing.T) {
	cfg := config.LoadConfigOrDefault(writeFile(t, "config.yaml", "logging:\n  level: loud\n"))

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadRules_MergesOverrides(t *testing.T) {
	// Arrange
	input := `
solar_modifiers:
  Mars: 0.5
farm_supply:
  Greenhouse: 120
construction_bonus_cap: 0.6
mining_tier_multipliers:
  3: 2.5
`

	// Act
	rules, err := config.ParseRules(strings.NewReader(input))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0.5, rules.SolarModifier(habitat.Mars))
	assert.Equal(t, 6.672, rules.SolarModifier(habitat.Mercury))
	assert.Equal(t, 120.0, rules.FarmSupply["Greenhouse"])
	assert.Equal(t, 300.0, rules.FarmSupply["Farm"])
	assert.Equal(t, 0.6, rules.ConstructionBonusCap)
	assert.Equal(t, 2.5, rules.MiningMultiplierForTier(3))
	assert.Equal(t, 1.5, rules.MiningMultiplierForTier(2))
	assert.Len(t, rules.FoundingTiers, 3)
}

func TestLoadRules_Rejections(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "solar_modifer:\n  Mars: 1\n",
		"negative solar":   "solar_modifiers:\n  Mars: -1\n",
		"cap above one":    "construction_bonus_cap: 1.5\n",
		"bad mining cell":  "mining_cell: middle\n",
		"negative mining":  "mining_tier_multipliers:\n  1: -1\n",
		"not yaml mapping": "- a\n- b\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.ParseRules(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestLoadRules_EmptyPathAndEmptyFile(t *testing.T) {
	rules, err := config.LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, habitat.DefaultRules(), rules)

	rules, err = config.LoadRules(writeFile(t, "rules.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, habitat.DefaultRules(), rules)

	_, err = config.LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestUserConfigHandler(t *testing.T) {
	// Arrange
	h, err := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), ".habplanner"))
	require.NoError(t, err)

	// Act
	empty, err := h.Load()
	require.NoError(t, err)
	require.NoError(t, h.SetDefaultBody("Venus"))
	require.NoError(t, h.SetDefaultHabitat("habitats/ceres.json"))
	loaded, err := h.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &config.UserConfig{}, empty)
	assert.Equal(t, "Venus", loaded.DefaultBody)
	assert.True(t, filepath.IsAbs(loaded.DefaultHabitat))
	assert.Equal(t, "ceres.json", filepath.Base(loaded.DefaultHabitat))
	assert.Error(t, h.SetDefaultBody("Pluto"))

	require.NoError(t, h.Clear())
	cleared, err := h.Load()
	require.NoError(t, err)
	assert.Equal(t, &config.UserConfig{}, cleared)
}
