package cli

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/commands"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/setup"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/config"
	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/logging"
)

// loadApp reads configuration, applies global flag overrides and builds the planner
func loadApp() (*setup.App, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if rulesPath != "" {
		cfg.Catalog.RulesPath = rulesPath
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	app, err := setup.Build(cfg, logger)
	if err != nil {
		logger.Close()
		return nil, nil, err
	}
	return app, func() { logger.Close() }, nil
}

// appContext carries the app logger to handlers
func appContext(app *setup.App) context.Context {
	return common.WithLogger(context.Background(), app.Logger)
}

// resolveHabitatFile resolves the habitat file from flags or defaults
// Priority: --file flag > User config default habitat
func resolveHabitatFile() (string, error) {
	if habitatFile != "" {
		return habitatFile, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no habitat file specified and failed to load user config: %w", err)
	}
	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no habitat file specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultHabitat != "" {
		return userCfg.DefaultHabitat, nil
	}

	return "", fmt.Errorf("no habitat file specified: use --file, or set a default with 'habplanner config set-habitat'")
}

// loadHabitat imports the habitat named by --file or the user default
func loadHabitat(ctx context.Context, app *setup.App) (habitat.HabitatState, string, error) {
	path, err := resolveHabitatFile()
	if err != nil {
		return habitat.HabitatState{}, "", err
	}
	resp, err := app.Mediator.Send(ctx, &commands.ImportHabitatCommand{Path: path})
	if err != nil {
		return habitat.HabitatState{}, "", err
	}
	return resp.(*commands.HabitatResponse).State, path, nil
}

// editHabitat loads the habitat, applies one command built from it, and saves the result
func editHabitat(build func(state habitat.HabitatState) mediator.Request) (habitat.HabitatState, error) {
	app, cleanup, err := loadApp()
	if err != nil {
		return habitat.HabitatState{}, err
	}
	defer cleanup()

	ctx := appContext(app)
	state, path, err := loadHabitat(ctx, app)
	if err != nil {
		return habitat.HabitatState{}, err
	}

	resp, err := app.Mediator.Send(ctx, build(state))
	if err != nil {
		return habitat.HabitatState{}, err
	}
	next := resp.(*commands.HabitatResponse).State

	if _, err := app.Mediator.Send(ctx, &commands.ExportHabitatCommand{State: next, Path: path}); err != nil {
		return habitat.HabitatState{}, err
	}
	return next, nil
}

// defaultBody returns the body for new habitats: user preference, then config
func defaultBody(cfg *config.Config) habitat.SolarBody {
	if h, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := h.Load(); err == nil && userCfg.DefaultBody != "" {
			return habitat.SolarBody(userCfg.DefaultBody)
		}
	}
	return habitat.SolarBody(cfg.Planner.DefaultBody)
}
