package steps

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/commands"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/queries"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/setup"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/config"
	"github.com/andrescamacho/ti-habitat-planner/test/helpers"
	"github.com/cucumber/godog"
)

type plannerContext struct {
	app      *setup.App
	state    habitat.HabitatState
	previous habitat.HabitatState
	exported []byte
	stats    *queries.ComputeStatsResponse
	before   *habitat.Summary
	err      error
}

func (pc *plannerContext) reset() {
	pc.app = nil
	pc.state = habitat.HabitatState{}
	pc.previous = habitat.HabitatState{}
	pc.exported = nil
	pc.stats = nil
	pc.before = nil
	pc.err = nil
}

func (pc *plannerContext) aPlannerWithTheFixtureCatalog() error {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	app, err := setup.BuildWithCatalog(cfg, nil, helpers.NewFixtureCatalog(), helpers.NewRecordingLogger())
	if err != nil {
		return fmt.Errorf("failed to build planner: %w", err)
	}
	pc.app = app
	return nil
}

// send runs a habitat command. The current state only changes on success.
func (pc *plannerContext) send(req mediator.Request) error {
	if pc.app == nil {
		return fmt.Errorf("planner not initialised")
	}
	pc.previous = pc.state
	resp, err := pc.app.Mediator.Send(context.Background(), req)
	pc.err = err
	if err != nil {
		return nil
	}
	hr, ok := resp.(*commands.HabitatResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %T", resp)
	}
	pc.state = hr.State
	return nil
}

// When

func (pc *plannerContext) iCreateAHabitatWithCore(core string) error {
	return pc.send(&commands.NewHabitatCommand{Core: core})
}

func (pc *plannerContext) iCreateAHabitatWithCoreAtNamed(core, body, name string) error {
	return pc.send(&commands.NewHabitatCommand{Core: core, Body: habitat.SolarBody(body), Name: name})
}

func (pc *plannerContext) iPlaceAt(module, cell string) error {
	return pc.send(&commands.PlaceModuleCommand{State: pc.state, Cell: cell, Module: module})
}

func (pc *plannerContext) iClearCell(cell string) error {
	return pc.send(&commands.ClearCellCommand{State: pc.state, Cell: cell})
}

func (pc *plannerContext) iSetTheSiteYieldOfTo(resource string, amount float64) error {
	return pc.send(&commands.SetSiteCommand{State: pc.state, Resource: habitat.Resource(resource), Amount: amount})
}

func (pc *plannerContext) iMoveTheHabitatTo(body string) error {
	return pc.send(&commands.SetBodyCommand{State: pc.state, Body: habitat.SolarBody(body)})
}

func (pc *plannerContext) iRenameTheHabitatTo(name string) error {
	return pc.send(&commands.RenameHabitatCommand{State: pc.state, Name: name})
}

func (pc *plannerContext) iExportTheHabitat() error {
	resp, err := pc.app.Mediator.Send(context.Background(), &commands.ExportHabitatCommand{State: pc.state})
	pc.err = err
	if err != nil {
		return nil
	}
	pc.exported = resp.(*commands.ExportHabitatResponse).Data
	pc.before = pc.app.Engine.Summarize(pc.state)
	return nil
}

func (pc *plannerContext) iImportTheExportedHabitat() error {
	if len(pc.exported) == 0 {
		return fmt.Errorf("nothing was exported")
	}
	return pc.send(&commands.ImportHabitatCommand{Data: pc.exported})
}

func (pc *plannerContext) iImportTheDocument(doc *godog.DocString) error {
	return pc.send(&commands.ImportHabitatCommand{Data: []byte(doc.Content)})
}

func (pc *plannerContext) iComputeTheStats() error {
	resp, err := pc.app.Mediator.Send(context.Background(), &queries.ComputeStatsQuery{State: pc.state})
	pc.err = err
	if err != nil {
		return nil
	}
	pc.stats = resp.(*queries.ComputeStatsResponse)
	return nil
}

// Then

func (pc *plannerContext) theCommandShouldSucceed() error {
	if pc.err != nil {
		return fmt.Errorf("expected success, got %v", pc.err)
	}
	return nil
}

func (pc *plannerContext) theCommandShouldFailWith(fragment string) error {
	if pc.err == nil {
		return fmt.Errorf("expected an error containing %q, got none", fragment)
	}
	if !strings.Contains(pc.err.Error(), fragment) {
		return fmt.Errorf("expected an error containing %q, got %q", fragment, pc.err.Error())
	}
	return nil
}

func (pc *plannerContext) theHabitatShouldBeUnchanged() error {
	if !reflect.DeepEqual(pc.previous.Data(), pc.state.Data()) {
		return fmt.Errorf("habitat changed after a rejected command")
	}
	return nil
}

func (pc *plannerContext) theHabitatShouldBeAOfTierAt(habType string, tier int, body string) error {
	if string(pc.state.Type()) != habType || pc.state.Tier() != tier || string(pc.state.Body()) != body {
		return fmt.Errorf("expected %s tier %d at %s, got %s tier %d at %s",
			habType, tier, body, pc.state.Type(), pc.state.Tier(), pc.state.Body())
	}
	return nil
}

func (pc *plannerContext) theHabitatShouldBeNamed(name string) error {
	if pc.state.Name() != name {
		return fmt.Errorf("expected name %q, got %q", name, pc.state.Name())
	}
	return nil
}

func (pc *plannerContext) cellShouldHold(cell, module string) error {
	label, err := habitat.ParseCellLabel(cell)
	if err != nil {
		return err
	}
	if got := pc.state.ModuleAt(label); got != module {
		return fmt.Errorf("expected cell %s to hold %q, got %q", cell, module, got)
	}
	return nil
}

func (pc *plannerContext) cellShouldBeEmpty(cell string) error {
	return pc.cellShouldHold(cell, "")
}

func (pc *plannerContext) theExportedJSONShouldBe(doc *godog.DocString) error {
	if string(pc.exported) != strings.TrimSpace(doc.Content) {
		return fmt.Errorf("expected export:\n%s\ngot:\n%s", doc.Content, pc.exported)
	}
	return nil
}

func (pc *plannerContext) theImportedHabitatShouldSummarizeIdentically() error {
	if pc.before == nil {
		return fmt.Errorf("no summary recorded at export")
	}
	after := pc.app.Engine.Summarize(pc.state)
	if !reflect.DeepEqual(pc.before, after) {
		return fmt.Errorf("summary changed across export and import:\nbefore %+v\nafter  %+v", pc.before, after)
	}
	return nil
}

func (pc *plannerContext) theReportStatShouldRead(label, expected string) error {
	if pc.stats == nil {
		return fmt.Errorf("no stats computed")
	}
	for _, l := range pc.stats.Report.Stats {
		if l.Label == label {
			if l.Value != expected {
				return fmt.Errorf("report stat %q: expected %q, got %q", label, expected, l.Value)
			}
			return nil
		}
	}
	return fmt.Errorf("report stat %q not shown", label)
}

func (pc *plannerContext) theReportSiteLineShouldBe(expected string) error {
	if pc.stats == nil {
		return fmt.Errorf("no stats computed")
	}
	if pc.stats.Report.Site != expected {
		return fmt.Errorf("expected site line %q, got %q", expected, pc.stats.Report.Site)
	}
	return nil
}

func (pc *plannerContext) theReportShouldListUnknownModules(list string) error {
	if pc.stats == nil {
		return fmt.Errorf("no stats computed")
	}
	if got := strings.Join(pc.stats.Report.Unknown, ", "); got != list {
		return fmt.Errorf("expected unknown modules %q, got %q", list, got)
	}
	return nil
}

func (pc *plannerContext) theReportShouldHaveSection(title string) error {
	if pc.stats == nil {
		return fmt.Errorf("no stats computed")
	}
	for _, sec := range []*display.Section{pc.stats.Report.Tech, pc.stats.Report.Leo} {
		if sec != nil && sec.Title == title {
			return nil
		}
	}
	return fmt.Errorf("report has no %q section", title)
}

func InitializePlannerScenario(sc *godog.ScenarioContext) {
	pc := &plannerContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	// Background
	sc.Step(`^a planner with the fixture catalog$`, pc.aPlannerWithTheFixtureCatalog)

	// When
	sc.Step(`^I create a habitat with core "([^"]*)"$`, pc.iCreateAHabitatWithCore)
	sc.Step(`^I create a habitat with core "([^"]*)" at "([^"]*)" named "([^"]*)"$`, pc.iCreateAHabitatWithCoreAtNamed)
	sc.Step(`^I place "([^"]*)" at "([^"]*)"$`, pc.iPlaceAt)
	sc.Step(`^I clear cell "([^"]*)"$`, pc.iClearCell)
	sc.Step(`^I set the site yield of "([^"]*)" to (-?\d+(?:\.\d+)?)$`, pc.iSetTheSiteYieldOfTo)
	sc.Step(`^I move the habitat to "([^"]*)"$`, pc.iMoveTheHabitatTo)
	sc.Step(`^I rename the habitat to "([^"]*)"$`, pc.iRenameTheHabitatTo)
	sc.Step(`^I export the habitat$`, pc.iExportTheHabitat)
	sc.Step(`^I import the exported habitat$`, pc.iImportTheExportedHabitat)
	sc.Step(`^I import the document:$`, pc.iImportTheDocument)
	sc.Step(`^I compute the stats$`, pc.iComputeTheStats)

	// Then
	sc.Step(`^the command should succeed$`, pc.theCommandShouldSucceed)
	sc.Step(`^the command should fail with "([^"]*)"$`, pc.theCommandShouldFailWith)
	sc.Step(`^the habitat should be unchanged$`, pc.theHabitatShouldBeUnchanged)
	sc.Step(`^the habitat should be a "([^"]*)" of tier (\d+) at "([^"]*)"$`, pc.theHabitatShouldBeAOfTierAt)
	sc.Step(`^the habitat should be named "([^"]*)"$`, pc.theHabitatShouldBeNamed)
	sc.Step(`^cell "([^"]*)" should hold "([^"]*)"$`, pc.cellShouldHold)
	sc.Step(`^cell "([^"]*)" should be empty$`, pc.cellShouldBeEmpty)
	sc.Step(`^the exported JSON should be:$`, pc.theExportedJSONShouldBe)
	sc.Step(`^the imported habitat should summarize identically$`, pc.theImportedHabitatShouldSummarizeIdentically)
	sc.Step(`^the report stat "([^"]*)" should read "([^"]*)"$`, pc.theReportStatShouldRead)
	sc.Step(`^the report site line should be "([^"]*)"$`, pc.theReportSiteLineShouldBe)
	sc.Step(`^the report should list unknown modules "([^"]*)"$`, pc.theReportShouldListUnknownModules)
	sc.Step(`^the report should have a "([^"]*)" section$`, pc.theReportShouldHaveSection)
}
