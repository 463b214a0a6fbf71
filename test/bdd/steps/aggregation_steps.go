package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/persistence"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/test/helpers"
	"github.com/cucumber/godog"
)

// sharedSummary is read by the display steps so a rendered report can be
// checked against the same aggregation scenario
var sharedSummary *habitat.Summary

type aggregationContext struct {
	rules   *habitat.Rules
	engine  *habitat.Engine
	modules []*habitat.Module
	site    habitat.SiteContext
	state   habitat.HabitatState
	summary *habitat.Summary
	err     error
}

func (ac *aggregationContext) reset() {
	ac.rules = nil
	ac.engine = nil
	ac.modules = nil
	ac.site = habitat.SiteContext{Site: make(habitat.ResourceMap)}
	ac.state = habitat.HabitatState{}
	ac.summary = nil
	ac.err = nil
	sharedSummary = nil
}

var totalGetters = map[string]func(t *habitat.Totals) float64{
	"crew":                   func(t *habitat.Totals) float64 { return t.Crew },
	"power":                  func(t *habitat.Totals) float64 { return t.Power },
	"baseMass_tons":          func(t *habitat.Totals) float64 { return t.BaseMassTons },
	"incomeMoney_month":      func(t *habitat.Totals) float64 { return t.IncomeMoney },
	"incomeInfluence_month":  func(t *habitat.Totals) float64 { return t.IncomeInfluence },
	"incomeOps_month":        func(t *habitat.Totals) float64 { return t.IncomeOps },
	"incomeResearch_month":   func(t *habitat.Totals) float64 { return t.IncomeResearch },
	"incomeProjects":         func(t *habitat.Totals) float64 { return t.IncomeProjects },
	"incomeAntimatter_month": func(t *habitat.Totals) float64 { return t.IncomeAntimatter },
	"missionControl":         func(t *habitat.Totals) float64 { return t.MissionControl },
	"spaceCombatValue":       func(t *habitat.Totals) float64 { return t.SpaceCombatValue },
}

// Background

func (ac *aggregationContext) theDefaultRuleTablesAndTheFixtureCatalog() error {
	ac.rules = habitat.DefaultRules()
	ac.engine, ac.err = habitat.NewEngine(helpers.FixtureStaticCatalog(), ac.rules)
	return ac.err
}

// Given

func (ac *aggregationContext) aHabitatAtWithModules(habType, body string, table *godog.Table) error {
	typ := habitat.HabitatType(habType)
	if !typ.IsValid() {
		return fmt.Errorf("unknown habitat type %q", habType)
	}
	ac.site.Type = typ
	ac.site.Body = habitat.SolarBody(body)

	for _, name := range tableColumn(table, "module") {
		m := helpers.FixtureModule(name)
		if m == nil {
			return fmt.Errorf("fixture module %q does not exist", name)
		}
		ac.modules = append(ac.modules, m)
	}
	return nil
}

func (ac *aggregationContext) theMiningCellHolds(name string) error {
	m := helpers.FixtureModule(name)
	if m == nil {
		return fmt.Errorf("fixture module %q does not exist", name)
	}
	ac.site.MiningModule = m
	ac.modules = append(ac.modules, m)
	return nil
}

func (ac *aggregationContext) theSiteYields(amount float64, resource string) error {
	ac.site.Site[habitat.Resource(resource)] = amount
	return nil
}

func (ac *aggregationContext) aHabitatDocument(doc *godog.DocString) error {
	ac.state, ac.err = persistence.DecodeHabitat([]byte(doc.Content))
	return ac.err
}

// When

func (ac *aggregationContext) theHabitatIsSummarized() error {
	if ac.engine == nil {
		return fmt.Errorf("engine not initialised")
	}
	if !ac.state.IsZero() {
		ac.summary = ac.engine.Summarize(ac.state)
	} else {
		ac.summary = ac.engine.Compute(ac.modules, ac.site)
	}
	sharedSummary = ac.summary
	return nil
}

// Then

func (ac *aggregationContext) requireSummary() error {
	if ac.summary == nil {
		return fmt.Errorf("no summary computed")
	}
	return nil
}

func (ac *aggregationContext) theTotalShouldBe(field string, expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	get, ok := totalGetters[field]
	if !ok {
		return fmt.Errorf("unknown total %q", field)
	}
	return assertFloat(field, expected, get(ac.summary.Totals))
}

func (ac *aggregationContext) netMoneyShouldBe(expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	return assertFloat("net money", expected, ac.summary.NetMoney)
}

func (ac *aggregationContext) theRawUpkeepOfShouldBe(resource string, expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	return assertFloat("raw upkeep of "+resource, expected, ac.summary.Totals.SupportMaterials.Get(habitat.Resource(resource)))
}

func (ac *aggregationContext) theFarmDiscountOfShouldBe(resource string, expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	return assertFloat("farm discount of "+resource, expected, ac.summary.FarmDiscount.Get(habitat.Resource(resource)))
}

func (ac *aggregationContext) theNetUpkeepOfShouldBe(resource string, expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	return assertFloat("net upkeep of "+resource, expected, ac.summary.NetUpkeep.Get(habitat.Resource(resource)))
}

func (ac *aggregationContext) theSiteYieldOfShouldBe(resource string, expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	return assertFloat("site yield of "+resource, expected, ac.summary.SiteYield.Get(habitat.Resource(resource)))
}

func (ac *aggregationContext) theMiningMultiplierShouldBe(expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	return assertFloat("mining multiplier", expected, ac.summary.MiningMultiplier)
}

func (ac *aggregationContext) theBuildCostOfShouldBe(resource string, expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	return assertFloat("build cost of "+resource, expected, ac.summary.Totals.WeightedBuildMaterials.Get(habitat.Resource(resource)))
}

func (ac *aggregationContext) theTechBonusShouldBe(category string, expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	return assertFloat("tech bonus "+category, expected, ac.summary.Totals.TechBonuses[category])
}

func (ac *aggregationContext) theLEOBonusShouldBe(category string, expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	return assertFloat("LEO bonus "+category, expected, ac.summary.Totals.LeoBonuses[category])
}

func (ac *aggregationContext) thereShouldBeNoLEOBonuses() error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	if len(ac.summary.Totals.LeoBonuses) != 0 {
		return fmt.Errorf("expected no LEO bonuses, got %v", ac.summary.Totals.LeoBonuses)
	}
	return nil
}

func (ac *aggregationContext) theHabitatShouldAllow(flag string) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	t := ac.summary.Totals
	var set bool
	switch flag {
	case "allowsResupply":
		set = t.AllowsResupply
	case "allowsShipConstruction":
		set = t.AllowsShipConstruction
	case "CanFoundHabs":
		set = t.CanFoundHabs
	default:
		return fmt.Errorf("unknown flag %q", flag)
	}
	if !set {
		return fmt.Errorf("expected %s to be set", flag)
	}
	return nil
}

func (ac *aggregationContext) theUnknownModulesShouldBe(list string) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	got := strings.Join(ac.summary.UnknownModules, ", ")
	if got != list {
		return fmt.Errorf("expected unknown modules %q, got %q", list, got)
	}
	return nil
}

func (ac *aggregationContext) theConstructionBonusShouldBe(expected float64) error {
	if err := ac.requireSummary(); err != nil {
		return err
	}
	return assertFloat("construction bonus", expected, ac.summary.ConstructionBonus)
}

func (ac *aggregationContext) theConstructionBonusForBuildingsShouldBe(tier3, tier2, tier1 int, expected float64) error {
	if ac.rules == nil {
		return fmt.Errorf("rule tables not loaded")
	}
	return assertFloat(
		fmt.Sprintf("construction bonus (%d,%d,%d)", tier3, tier2, tier1),
		expected,
		ac.rules.ConstructionBonusFor(tier3, tier2, tier1),
	)
}

func InitializeAggregationScenario(sc *godog.ScenarioContext) {
	ac := &aggregationContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		ac.reset()
		return ctx, nil
	})

	// Background
	sc.Step(`^the default rule tables and the fixture catalog$`, ac.theDefaultRuleTablesAndTheFixtureCatalog)

	// Given
	sc.Step(`^a "([^"]*)" habitat at "([^"]*)" with modules:$`, ac.aHabitatAtWithModules)
	sc.Step(`^the mining cell holds "([^"]*)"$`, ac.theMiningCellHolds)
	sc.Step(`^the site yields (\d+(?:\.\d+)?) "([^"]*)"$`, ac.theSiteYields)
	sc.Step(`^a habitat document:$`, ac.aHabitatDocument)

	// When
	sc.Step(`^the habitat is summarized$`, ac.theHabitatIsSummarized)

	// Then
	sc.Step(`^the total "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, ac.theTotalShouldBe)
	sc.Step(`^net money should be (-?\d+(?:\.\d+)?)$`, ac.netMoneyShouldBe)
	sc.Step(`^the raw upkeep of "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, ac.theRawUpkeepOfShouldBe)
	sc.Step(`^the farm discount of "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, ac.theFarmDiscountOfShouldBe)
	sc.Step(`^the net upkeep of "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, ac.theNetUpkeepOfShouldBe)
	sc.Step(`^the site yield of "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, ac.theSiteYieldOfShouldBe)
	sc.Step(`^the mining multiplier should be (-?\d+(?:\.\d+)?)$`, ac.theMiningMultiplierShouldBe)
	sc.Step(`^the build cost of "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, ac.theBuildCostOfShouldBe)
	sc.Step(`^the tech bonus "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, ac.theTechBonusShouldBe)
	sc.Step(`^the LEO bonus "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, ac.theLEOBonusShouldBe)
	sc.Step(`^there should be no LEO bonuses$`, ac.thereShouldBeNoLEOBonuses)
	sc.Step(`^the habitat should allow "([^"]*)"$`, ac.theHabitatShouldAllow)
	sc.Step(`^the unknown modules should be "([^"]*)"$`, ac.theUnknownModulesShouldBe)
	sc.Step(`^the construction bonus should be (\d+(?:\.\d+)?)$`, ac.theConstructionBonusShouldBe)
	sc.Step(`^the construction bonus for (\d+) tier 3, (\d+) tier 2 and (\d+) tier 1 buildings should be (\d+(?:\.\d+)?)$`, ac.theConstructionBonusForBuildingsShouldBe)
}
