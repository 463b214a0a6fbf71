package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/commands"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

var (
	newCore string
	newBody string
	newName string
)

// NewHabitatCommand creates the habitat command with subcommands
func NewHabitatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habitat",
		Short: "Create and edit habitats",
		Long: `Create and edit habitat files.

Every edit loads the habitat named by --file (or the default habitat set
with 'habplanner config set-habitat'), applies the change, and saves it
back. A rejected edit leaves the file untouched.

Cells are addressed as <row>_<col>, the same labels used in the file.

Examples:
  habplanner habitat new --core Outpost --file leo.json
  habplanner habitat place 1_2 "Solar Collector" --file leo.json
  habplanner habitat clear 1_2 --file leo.json
  habplanner habitat site metals 2.5 --file ceres.json
  habplanner habitat body Mars --file ceres.json
  habplanner habitat rename "Red Dust" --file ceres.json`,
	}

	// Add subcommands
	cmd.AddCommand(newHabitatNewCommand())
	cmd.AddCommand(newHabitatPlaceCommand())
	cmd.AddCommand(newHabitatClearCommand())
	cmd.AddCommand(newHabitatSiteCommand())
	cmd.AddCommand(newHabitatBodyCommand())
	cmd.AddCommand(newHabitatRenameCommand())
	cmd.AddCommand(newHabitatShowCommand())
	cmd.AddCommand(newHabitatImportCommand())
	cmd.AddCommand(newHabitatExportCommand())

	return cmd
}

// newHabitatNewCommand creates the habitat new subcommand
func newHabitatNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a habitat around a core module",
		Long: `Start an empty habitat around a core module. The core decides the
habitat type (station or base), its tier and its slot layout.

The habitat is saved to --file, or to the default habitat file. When
neither is set it is written to stdout.

Examples:
  habplanner habitat new --core Outpost --file leo.json
  habplanner habitat new --core Colony --body "Middle Belt Asteroids" --name "Ceres Forge" --file ceres.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			body := habitat.SolarBody(newBody)
			if body == "" {
				body = defaultBody(app.Config)
			}

			ctx := appContext(app)
			resp, err := app.Mediator.Send(ctx, &commands.NewHabitatCommand{
				Core: newCore,
				Body: body,
				Name: newName,
			})
			if err != nil {
				return err
			}
			state := resp.(*commands.HabitatResponse).State

			// no --file and no default: print instead of saving
			path, _ := resolveHabitatFile()
			exported, err := app.Mediator.Send(ctx, &commands.ExportHabitatCommand{State: state, Path: path})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if path == "" {
				fmt.Fprintln(out, string(exported.(*commands.ExportHabitatResponse).Data))
				return nil
			}
			fmt.Fprintf(out, "✓ Created %s %s (tier %d) at %s: %s\n",
				state.Core(), state.Type(), state.Tier(), state.Body(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&newCore, "core", "", "Core module name (required)")
	cmd.Flags().StringVar(&newBody, "body", "", "Solar body (default: user preference, then planner.default_body)")
	cmd.Flags().StringVar(&newName, "name", "", "Habitat name")
	cmd.MarkFlagRequired("core")

	return cmd
}

// newHabitatPlaceCommand creates the habitat place subcommand
func newHabitatPlaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place <cell> <module>",
		Short: "Install a module in a cell",
		Long: `Install a module in a module or mining cell, replacing what was there.

The module may be given by data name or friendly name. It must fit the
core's habitat type and tier; mining cells take mining modules only.

Examples:
  habplanner habitat place 1_2 SolarCollector --file leo.json
  habplanner habitat place 0_3 "Mining Complex" --file ceres.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := editHabitat(func(state habitat.HabitatState) mediator.Request {
				return &commands.PlaceModuleCommand{State: state, Cell: args[0], Module: args[1]}
			})
			if err != nil {
				return err
			}
			label, _ := habitat.ParseCellLabel(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Placed %s at %s\n", state.ModuleAt(label), args[0])
			return nil
		},
	}

	return cmd
}

// newHabitatClearCommand creates the habitat clear subcommand
func newHabitatClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <cell>",
		Short: "Remove the module from a cell",
		Long: `Remove the module from a module or mining cell. The core cell cannot
be cleared.

Example:
  habplanner habitat clear 1_2 --file leo.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := editHabitat(func(state habitat.HabitatState) mediator.Request {
				return &commands.ClearCellCommand{State: state, Cell: args[0]}
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %s\n", args[0])
			return nil
		},
	}

	return cmd
}

// newHabitatSiteCommand creates the habitat site subcommand
func newHabitatSiteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site <resource> <amount>",
		Short: "Declare a base's site resource yield",
		Long: `Declare the monthly yield of one material at a base's site. The mining
module in the mining cell scales it.

Resources: water, volatiles, metals, nobleMetals, fissiles

Example:
  habplanner habitat site metals 2.75 --file ceres.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			if _, err := editHabitat(func(state habitat.HabitatState) mediator.Request {
				return &commands.SetSiteCommand{State: state, Resource: habitat.Resource(args[0]), Amount: amount}
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Site %s set to %s\n", args[0], args[1])
			return nil
		},
	}

	return cmd
}

// newHabitatBodyCommand creates the habitat body subcommand
func newHabitatBodyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "body <solar-body>",
		Short: "Move the habitat to another solar body",
		Long: `Move the habitat to another solar body. The body scales solar power
output and decides whether LEO bonuses apply.

Example:
  habplanner habitat body "Outer Belt Asteroids" --file ceres.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := editHabitat(func(state habitat.HabitatState) mediator.Request {
				return &commands.SetBodyCommand{State: state, Body: habitat.SolarBody(args[0])}
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Body set to %s\n", state.Body())
			return nil
		},
	}

	return cmd
}

// newHabitatRenameCommand creates the habitat rename subcommand
func newHabitatRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the habitat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := editHabitat(func(state habitat.HabitatState) mediator.Request {
				return &commands.RenameHabitatCommand{State: state, Name: args[0]}
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Renamed to %q\n", state.Name())
			return nil
		},
	}

	return cmd
}

// newHabitatShowCommand creates the habitat show subcommand
func newHabitatShowCommand() *cobra.Command {
	var useColors bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Draw the habitat layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			state, path, err := loadHabitat(appContext(app), app)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", path)
			if state.Name() != "" {
				fmt.Fprintf(out, "Name: %s\n", state.Name())
			}
			fmt.Fprintf(out, "Core: %s (%s, tier %d)\n", state.Core(), state.Type(), state.Tier())
			fmt.Fprintf(out, "Body: %s\n\n", state.Body())
			fmt.Fprint(out, NewGridFormatter(useColors).FormatGrid(state))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useColors, "color", false, "Colorize the layout drawing")

	return cmd
}

// newHabitatImportCommand creates the habitat import subcommand
func newHabitatImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <source>",
		Short: "Validate a habitat file and copy it to --file",
		Long: `Validate a habitat file and write it to --file in canonical form.
A malformed source is rejected and --file is left untouched.

Example:
  habplanner habitat import shared/ceres.json --file ceres.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveHabitatFile()
			if err != nil {
				return err
			}

			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := appContext(app)
			resp, err := app.Mediator.Send(ctx, &commands.ImportHabitatCommand{Path: args[0]})
			if err != nil {
				return err
			}
			state := resp.(*commands.HabitatResponse).State
			if _, err := app.Mediator.Send(ctx, &commands.ExportHabitatCommand{State: state, Path: target}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %s into %s\n", args[0], target)
			return nil
		},
	}

	return cmd
}

// newHabitatExportCommand creates the habitat export subcommand
func newHabitatExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the habitat in its compact JSON form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := appContext(app)
			state, _, err := loadHabitat(ctx, app)
			if err != nil {
				return err
			}
			resp, err := app.Mediator.Send(ctx, &commands.ExportHabitatCommand{State: state})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(resp.(*commands.ExportHabitatResponse).Data))
			return nil
		},
	}

	return cmd
}
