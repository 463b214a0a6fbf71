package bdd

import (
	"testing"

	"github.com/andrescamacho/ti-habitat-planner/test/bdd/steps"
	"github.com/cucumber/godog"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// NOTE: godog uses the first matching registration, so the domain
	// aggregation steps go first and own the shared "summarized" wording
	steps.InitializeAggregationScenario(sc)
	steps.InitializeDisplayScenario(sc)
	steps.InitializePlannerScenario(sc)
}
