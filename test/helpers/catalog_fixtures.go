package helpers

import (
	"encoding/json"
	"sort"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/catalog"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// StaticCatalog is a map-backed habitat.ModuleCatalog for domain tests
type StaticCatalog map[string]*habitat.Module

// Lookup implements habitat.ModuleCatalog
func (c StaticCatalog) Lookup(dataName string) (*habitat.Module, bool) {
	m, ok := c[dataName]
	return m, ok
}

// NewStaticCatalog indexes modules by dataName
func NewStaticCatalog(modules ...*habitat.Module) StaticCatalog {
	c := make(StaticCatalog, len(modules))
	for _, m := range modules {
		c[m.DataName] = m
	}
	return c
}

// FixtureStaticCatalog returns every fixture module in a StaticCatalog
func FixtureStaticCatalog() StaticCatalog {
	return NewStaticCatalog(FixtureModules()...)
}

// NewFixtureCatalog builds the adapter catalog from the fixture modules
func NewFixtureCatalog() *catalog.Catalog {
	c, err := catalog.New(FixtureModules())
	if err != nil {
		panic("fixture catalog is invalid: " + err.Error())
	}
	return c
}

// FixtureModule returns a fresh copy of one fixture module, or nil
func FixtureModule(dataName string) *habitat.Module {
	for _, m := range FixtureModules() {
		if m.DataName == dataName {
			return m
		}
	}
	return nil
}

// FixtureModuleNames lists every fixture dataName, sorted
func FixtureModuleNames() []string {
	var names []string
	for _, m := range FixtureModules() {
		names = append(names, m.DataName)
	}
	sort.Strings(names)
	return names
}

// FixtureModules returns a small but representative module set. Each call
// returns new records so tests may modify them.
func FixtureModules() []*habitat.Module {
	return []*habitat.Module{
		// Cores
		{DataName: "Outpost", FriendlyName: "Outpost", Tier: 1, HabType: "Station", CoreModule: true,
			Power: -5, Crew: 10, BaseMassTons: 1200, MissionControl: 1,
			SupportMaterials:       habitat.ResourceMap{"money": 2},
			WeightedBuildMaterials: habitat.ResourceMap{"metals": 400, "volatiles": 50}},
		{DataName: "Platform", FriendlyName: "Platform", Tier: 2, HabType: "Station", CoreModule: true,
			Power: -10, Crew: 40, BaseMassTons: 4800, MissionControl: 2,
			SupportMaterials: habitat.ResourceMap{"money": 4}},
		{DataName: "Ring", FriendlyName: "Ring", Tier: 3, HabType: "Station", CoreModule: true,
			Power: -20, Crew: 120, BaseMassTons: 19200, MissionControl: 3,
			SupportMaterials: habitat.ResourceMap{"money": 8}},
		{DataName: "Settlement", FriendlyName: "Settlement", Tier: 1, HabType: "Base", CoreModule: true,
			Power: -5, Crew: 10, BaseMassTons: 1600, MissionControl: 1},
		{DataName: "Colony", FriendlyName: "Colony", Tier: 2, HabType: "Base", CoreModule: true,
			Power: -10, Crew: 50, BaseMassTons: 6400, MissionControl: 2},
		{DataName: "Citadel", FriendlyName: "Citadel", Tier: 3, HabType: "Base", CoreModule: true,
			Power: -20, Crew: 150, BaseMassTons: 25600, MissionControl: 3},

		// Power
		{DataName: "SolarCollector", FriendlyName: "Solar Collector", Tier: 1, HabType: "Any",
			Power: 60, Crew: 2, BaseMassTons: 300,
			SpecialRules: []string{habitat.SolarVariableOutputRule}},
		{DataName: "FissionPile", FriendlyName: "Fission Pile", Tier: 1, HabType: "Any",
			Power: 100, Crew: 12, BaseMassTons: 600,
			SupportMaterials: habitat.ResourceMap{"fissiles": 0.5}},

		// Farms
		{DataName: "HydroponicsBay", FriendlyName: "Hydroponics Bay", Tier: 1, HabType: "Any",
			Power: -10, Crew: 6, BaseMassTons: 500,
			WeightedBuildMaterials: habitat.ResourceMap{"water": 20, "volatiles": 40}},
		{DataName: "Farm", FriendlyName: "Farm", Tier: 2, HabType: "Base",
			Power: -20, Crew: 24, BaseMassTons: 2000,
			WeightedBuildMaterials: habitat.ResourceMap{"water": 80, "volatiles": 120}},
		{DataName: "AgricultureComplex", FriendlyName: "Agriculture Complex", Tier: 3, HabType: "Base",
			Power: -60, Crew: 80, BaseMassTons: 8000},

		// Founding line
		{DataName: "ConstructionModule", FriendlyName: "Construction Module", Tier: 1, HabType: "Any",
			Power: -10, Crew: 20, BaseMassTons: 800,
			SpecialRules:           []string{"CanFoundTier1"},
			WeightedBuildMaterials: habitat.ResourceMap{"metals": 100, "nobleMetals": 5}},
		{DataName: "Nanofactory", FriendlyName: "Nanofactory", Tier: 2, HabType: "Any",
			Power: -40, Crew: 30, BaseMassTons: 2400,
			SpecialRules: []string{"CanFoundTier2"},
			TechBonuses:  []habitat.TechBonus{{Category: "Economy", Bonus: 0.02}}},
		{DataName: "NanofacturingComplex", FriendlyName: "Nanofacturing Complex", Tier: 3, HabType: "Any",
			Power: -100, Crew: 60, BaseMassTons: 9600,
			SpecialRules: []string{"CanFoundTier3"}},

		// Research
		{DataName: "EconomicsLab", FriendlyName: "Economics Lab", Tier: 1, HabType: "Any",
			Power: -5, Crew: 10, BaseMassTons: 400, IncomeResearch: 4,
			TechBonuses: []habitat.TechBonus{{Category: "Economy", Bonus: 0.02}}},
		{DataName: "LifeScienceLab", FriendlyName: "Life Science Lab", Tier: 1, HabType: "Station",
			Power: -5, Crew: 10, BaseMassTons: 400, IncomeResearch: 5,
			TechBonuses: []habitat.TechBonus{{Category: "Welfare", Bonus: 0.03}}},
		{DataName: "MilitaryScienceLab", FriendlyName: "Military Science Lab", Tier: 1, HabType: "Station",
			Power: -5, Crew: 10, BaseMassTons: 400, IncomeResearch: 3,
			TechBonuses: []habitat.TechBonus{{Category: "Military", Bonus: 0.01}}},

		// Economy
		{DataName: "Shipyard", FriendlyName: "Shipyard", Tier: 2, HabType: "Station",
			Power: -30, Crew: 40, BaseMassTons: 3000, AllowsShipConstruction: true, AllowsResupply: true,
			SupportMaterials: habitat.ResourceMap{"money": 6, "metals": 1}},
		{DataName: "TradeHub", FriendlyName: "Trade Hub", Tier: 1, HabType: "Any",
			Power: -5, Crew: 8, BaseMassTons: 300, IncomeMoney: 12, IncomeInfluence: 0.5, IncomeOps: 0.25},
		{DataName: "AntimatterCollider", FriendlyName: "Antimatter Collider", Tier: 3, HabType: "Station",
			Power: -300, Crew: 30, BaseMassTons: 5000, IncomeAntimatter: 0.0000025, IncomeProjects: 1},
		{DataName: "Armory", FriendlyName: "Armory", Tier: 1, HabType: "Any",
			Power: -5, Crew: 20, BaseMassTons: 800, SpaceCombatValue: 15},

		// Mines
		{DataName: "MiningComplex", FriendlyName: "Mining Complex", Tier: 1, HabType: "Base",
			Power: -20, Crew: 20, BaseMassTons: 1000, Mine: true, MiningModifier: 1},
		{DataName: "AdvancedMiningComplex", FriendlyName: "Advanced Mining Complex", Tier: 2, HabType: "Base",
			Power: -40, Crew: 30, BaseMassTons: 2000, Mine: true, MiningModifier: 1.5},
		{DataName: "OrbitalMiningCenter", FriendlyName: "Orbital Mining Center", Tier: 3, HabType: "Base",
			Power: -80, Crew: 50, BaseMassTons: 4000, Mine: true, MiningModifier: 2},
	}
}

// FixtureCatalogJSON renders the fixture modules in the catalog file format
func FixtureCatalogJSON() []byte {
	data, err := json.Marshal(FixtureModules())
	if err != nil {
		panic("fixture catalog does not marshal: " + err.Error())
	}
	return data
}
