package e2e

import (
	"context"

	"github.com/cucumber/godog"

	"testament/e2e/steps/common"
	"testament/e2e/steps/estate"
	"testament/e2e/steps/ratelimit"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.Reset()
		return ctx, nil
	})

	// Service health and generic response assertions
	common.RegisterSteps(ctx, tc)

	// Will lifecycle, registry records and settlement
	estate.RegisterSteps(ctx, tc)

	ratelimit.RegisterSteps(ctx, tc)
}
