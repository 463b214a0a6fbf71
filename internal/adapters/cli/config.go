package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage habplanner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (HP_* prefix, plus HABPLANNER_CATALOG)
2. Config file (config.yaml)
3. Default values

User preferences (default body, default habitat file) are stored in
~/.habplanner/config.json

Examples:
  habplanner config show
  habplanner config set-body Mars
  habplanner config set-habitat ./ceres.json
  habplanner config clear`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetBodyCommand())
	cmd.AddCommand(newConfigSetHabitatCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and user preferences.

Example:
  habplanner config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			// Display configuration
			fmt.Fprintln(out, "Habitat Planner Configuration")
			fmt.Fprintln(out, "=============================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			fmt.Fprintf(out, "  Default Body:     %s\n", orNotSet(userCfg.DefaultBody))
			fmt.Fprintf(out, "  Default Habitat:  %s\n", orNotSet(userCfg.DefaultHabitat))

			fmt.Fprintln(out, "\nCatalog:")
			fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
			fmt.Fprintf(out, "  Rules:            %s\n", orValue(cfg.Catalog.RulesPath, "(built-in)"))
			fmt.Fprintf(out, "  Excluded Flags:   %v\n", cfg.Catalog.ExcludedFlags)

			fmt.Fprintln(out, "\nPlanner:")
			fmt.Fprintf(out, "  Default Body:     %s\n", cfg.Planner.DefaultBody)
			fmt.Fprintf(out, "  Default Type:     %s\n", cfg.Planner.DefaultType)

			fmt.Fprintln(out, "\nServer:")
			fmt.Fprintf(out, "  Address:          %s:%d\n", cfg.Server.Host, cfg.Server.Port)
			fmt.Fprintf(out, "  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)
			fmt.Fprintf(out, "  Shutdown Timeout: %s\n", cfg.Server.ShutdownTimeout)
			fmt.Fprintf(out, "  Gin Mode:         %s\n", cfg.Server.GinMode)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Path:             %s\n", cfg.Metrics.Path)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetBodyCommand creates the config set-body subcommand
func newConfigSetBodyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-body <solar-body>",
		Short: "Set the default body for new habitats",
		Long: `Set the solar body used by 'habplanner habitat new' when --body is not given.

Example:
  habplanner config set-body "Middle Belt Asteroids"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultBody(args[0]); err != nil {
				return fmt.Errorf("failed to set default body: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Default body set successfully")
			fmt.Fprintf(cmd.OutOrStdout(), "  Body: %s\n", args[0])
			return nil
		},
	}

	return cmd
}

// newConfigSetHabitatCommand creates the config set-habitat subcommand
func newConfigSetHabitatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-habitat <file>",
		Short: "Set the default habitat file",
		Long: `Set the habitat file used when --file is not given.

Example:
  habplanner config set-habitat ./ceres.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultHabitat(args[0]); err != nil {
				return fmt.Errorf("failed to set default habitat: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				return fmt.Errorf("failed to load user config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Default habitat set successfully")
			fmt.Fprintf(cmd.OutOrStdout(), "  File: %s\n", userCfg.DefaultHabitat)
			return nil
		},
	}

	return cmd
}

// newConfigClearCommand creates the config clear subcommand
func newConfigClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear user preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.Clear(); err != nil {
				return fmt.Errorf("failed to clear user config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ User preferences cleared")
			return nil
		},
	}

	return cmd
}

func orNotSet(s string) string {
	return orValue(s, "(not set)")
}

func orValue(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
