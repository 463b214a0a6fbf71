package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	catalogPath string
	rulesPath   string
	habitatFile string
	verbose     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "habplanner",
		Short: "Terra Invicta habitat planner",
		Long: `habplanner designs space stations and surface bases: place modules on a
habitat grid and see power, crew, upkeep, research and founding bonuses.

Habitats are stored as compact JSON files that round-trip exactly.

Examples:
  habplanner habitat new --core Outpost --body "Earth (LEO)" --file leo.json
  habplanner habitat place 1_2 "Solar Collector" --file leo.json
  habplanner stats --file leo.json
  habplanner modules list --core Colony --mining
  habplanner serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml (default: search ., ./configs, /etc/habplanner)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"Module catalog JSON (overrides catalog.path)")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "",
		"Rule table overrides YAML (overrides catalog.rules_path)")
	rootCmd.PersistentFlags().StringVarP(&habitatFile, "file", "f", "",
		"Habitat file (default: the one set with 'habplanner config set-habitat')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewHabitatCommand())
	rootCmd.AddCommand(NewModulesCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
