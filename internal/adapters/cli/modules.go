package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/catalog"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/queries"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

var (
	listCore    string
	listMining  bool
	listTiers   []int
	listIncomes []string
	coresType   string
)

// NewModulesCommand creates the modules command with subcommands
func NewModulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Browse the module catalog",
		Long: `Browse the module catalog: list placeable modules, list cores, and show
the tooltip of a single module.

Examples:
  habplanner modules list --core Outpost
  habplanner modules list --core Colony --mining
  habplanner modules list --income incomeResearch_month --tier 2
  habplanner modules cores --type base
  habplanner modules show "Trade Hub"`,
	}

	// Add subcommands
	cmd.AddCommand(newModulesListCommand())
	cmd.AddCommand(newModulesCoresCommand())
	cmd.AddCommand(newModulesShowCommand())

	return cmd
}

// newModulesListCommand creates the modules list subcommand
func newModulesListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List placeable modules",
		Long: `List non-core modules ordered by tier then name.

With --core only modules that fit a habitat built around that core are
listed; add --mining to list what the mining cell accepts.

Income keys for --income: ` + fmt.Sprint(catalog.IncomeFilterKeys()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			cellType := habitat.CellModule
			if listMining {
				cellType = habitat.CellMining
			}
			resp, err := app.Mediator.Send(appContext(app), &queries.ListModulesQuery{
				Core:     listCore,
				CellType: cellType,
				Filter:   catalog.Filter{Tiers: listTiers, Incomes: listIncomes},
			})
			if err != nil {
				return err
			}
			mods := resp.(*queries.ListModulesResponse).Modules

			out := cmd.OutOrStdout()
			if len(mods) == 0 {
				fmt.Fprintln(out, "No modules match.")
				return nil
			}
			printModuleTable(cmd, mods)
			return nil
		},
	}

	cmd.Flags().StringVar(&listCore, "core", "", "Only modules that fit this core")
	cmd.Flags().BoolVar(&listMining, "mining", false, "List modules for the mining cell (requires --core)")
	cmd.Flags().IntSliceVar(&listTiers, "tier", nil, "Restrict to tiers (repeatable)")
	cmd.Flags().StringSliceVar(&listIncomes, "income", nil, "Keep modules with a positive value in any of these keys")

	return cmd
}

// newModulesCoresCommand creates the modules cores subcommand
func newModulesCoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cores",
		Short: "List core modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := app.Mediator.Send(appContext(app), &queries.ListCoresQuery{Type: habitat.HabitatType(coresType)})
			if err != nil {
				return err
			}
			printModuleTable(cmd, resp.(*queries.ListCoresResponse).Cores)
			return nil
		},
	}

	cmd.Flags().StringVar(&coresType, "type", "", "station or base (default: both)")

	return cmd
}

// newModulesShowCommand creates the modules show subcommand
func newModulesShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <module>",
		Short: "Show a module's tooltip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := app.Mediator.Send(appContext(app), &queries.ModuleTooltipQuery{Module: args[0]})
			if err != nil {
				return err
			}
			result := resp.(*queries.ModuleTooltipResponse)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", result.Module.FriendlyName, result.Module.DataName)
			fmt.Fprintf(out, "Tier %d, %s\n\n", result.Module.Tier, result.Module.HabType)
			fmt.Fprintln(out, result.Tooltip)
			return nil
		},
	}

	return cmd
}

func printModuleTable(cmd *cobra.Command, mods []*habitat.Module) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDATA NAME\tTIER\tTYPE\tPOWER\tCREW")
	fmt.Fprintln(w, "----\t---------\t----\t----\t-----\t----")
	for _, m := range mods {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			m.FriendlyName, m.DataName, m.Tier, m.HabType, display.Number(m.Power), display.Number(m.Crew))
	}
	w.Flush()
}
