// Package setup assembles the planner from configuration: rule tables,
// catalog, engine, metrics and the mediator.
package setup

import (
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/catalog"
	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/metrics"
	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/persistence"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/config"
)

// App holds every long-lived planner dependency
type App struct {
	Config   *config.Config
	Rules    *habitat.Rules
	Catalog  *catalog.Source
	Engine   *habitat.Engine
	Store    *persistence.FileHabitatRepository
	Mediator mediator.Mediator
	Logger   common.Logger

	// Collectors are nil when metrics are disabled
	CommandMetrics *metrics.CommandMetricsCollector
	PlannerMetrics *metrics.PlannerMetricsCollector
	APIMetrics     *metrics.APIMetricsCollector
}

// Build loads the rule tables and catalog named by cfg and wires the mediator.
// Catalog problems are fatal.
func Build(cfg *config.Config, logger common.Logger) (*App, error) {
	rules, err := config.LoadRules(cfg.Catalog.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule tables: %w", err)
	}

	opts := catalog.LoadOptions{
		ExcludedFlags:         cfg.Catalog.ExcludedFlags,
		MiningTierMultipliers: rules.MiningTierMultipliers,
	}
	source, err := catalog.NewSource(cfg.Catalog.Path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load module catalog: %w", err)
	}

	return assemble(cfg, rules, source, logger)
}

// BuildWithCatalog wires the planner around an already loaded catalog
func BuildWithCatalog(cfg *config.Config, rules *habitat.Rules, c *catalog.Catalog, logger common.Logger) (*App, error) {
	if rules == nil {
		rules = habitat.DefaultRules()
	}
	return assemble(cfg, rules, catalog.StaticSource(c), logger)
}

func assemble(cfg *config.Config, rules *habitat.Rules, source *catalog.Source, logger common.Logger) (*App, error) {
	engine, err := habitat.NewEngine(source, rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	app := &App{
		Config:  cfg,
		Rules:   rules,
		Catalog: source,
		Engine:  engine,
		Store:   persistence.NewFileHabitatRepository(),
		Logger:  logger,
	}

	if cfg.Metrics.Enabled {
		if err := app.initMetrics(); err != nil {
			return nil, err
		}
	}

	middleware := []mediator.Middleware{planner.LoggerMiddleware(logger)}
	if app.CommandMetrics != nil {
		middleware = append(middleware, metrics.PrometheusMiddleware(app.CommandMetrics))
	}
	m, err := planner.NewMediator(planner.Dependencies{
		Catalog: source,
		Engine:  engine,
		Store:   app.Store,
	}, middleware...)
	if err != nil {
		return nil, err
	}
	app.Mediator = m

	logger.Log("INFO", "Planner ready", map[string]interface{}{
		"modules": source.Current().Len(),
		"metrics": cfg.Metrics.Enabled,
	})
	return app, nil
}

func (a *App) initMetrics() error {
	metrics.InitRegistry()

	a.CommandMetrics = metrics.NewCommandMetricsCollector()
	a.PlannerMetrics = metrics.NewPlannerMetricsCollector()
	a.APIMetrics = metrics.NewAPIMetricsCollector()
	for _, c := range []interface{ Register() error }{a.CommandMetrics, a.PlannerMetrics, a.APIMetrics} {
		if err := c.Register(); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	a.PlannerMetrics.SetCatalogModules(a.Catalog.Current().Len())
	metrics.SetGlobalPlannerCollector(a.PlannerMetrics)
	return nil
}

// ReloadCatalog re-reads the catalog file. On failure the previous catalog
// stays active.
func (a *App) ReloadCatalog() (*catalog.Catalog, error) {
	c, err := a.Catalog.Reload()
	if err != nil {
		metrics.RecordCatalogReload(false, 0)
		a.Logger.Log("ERROR", "Catalog reload failed, keeping previous catalog", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	metrics.RecordCatalogReload(true, c.Len())
	a.Logger.Log("INFO", "Catalog reloaded", map[string]interface{}{
		"modules": c.Len(),
	})
	return c, nil
}
