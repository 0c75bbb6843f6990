package e2e

import (
	"github.com/cucumber/godog"

	"datalayer/e2e/steps/datalayer"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	datalayer.RegisterSteps(ctx, tc)
}
