package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/queries"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

var (
	statsJSON   bool
	statsNoGrid bool
	statsColors bool
)

// statsOutput is the --json document
type statsOutput struct {
	Summary *habitat.Summary `json:"summary"`
	Report  display.Report   `json:"report"`
}

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show habitat statistics",
		Long: `Recompute and display every derived value of a habitat: power, crew,
incomes, net upkeep after farm discounts and site yield, build costs,
tech and LEO bonuses, and the construction bonus of founding modules.

Modules missing from the catalog are ignored and listed at the end.

Examples:
  habplanner stats --file leo.json
  habplanner stats --file ceres.json --json`,
		Args: cobra.NoArgs,
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

			resp, err := app.Mediator.Send(ctx, &queries.ComputeStatsQuery{State: state})
			if err != nil {
				return fmt.Errorf("failed to compute stats: %w", err)
			}
			result := resp.(*queries.ComputeStatsResponse)

			out := cmd.OutOrStdout()
			if statsJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(statsOutput{Summary: result.Summary, Report: result.Report})
			}

			formatter := NewGridFormatter(statsColors)
			if !statsNoGrid {
				fmt.Fprintf(out, "%s (%s, tier %d) at %s\n\n", state.Core(), state.Type(), state.Tier(), state.Body())
				fmt.Fprintln(out, formatter.FormatGrid(state))
			}
			fmt.Fprint(out, formatter.FormatReport(result.Report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&statsJSON, "json", false, "Output summary and rendered report as JSON")
	cmd.Flags().BoolVar(&statsNoGrid, "no-grid", false, "Skip the layout drawing")
	cmd.Flags().BoolVar(&statsColors, "color", false, "Colorize the layout drawing")

	return cmd
}
