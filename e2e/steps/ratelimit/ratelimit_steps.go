package ratelimit

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(ctx context.Context, method, path string, headers map[string]string, body any) error
	Identity(role string) string
	GetLastResponseStatus() int
	GetLastResponseHeader(name string) string
}

// RegisterSteps registers rate-limiting step definitions. The scenarios
// assume the server's read budget is small enough to exhaust.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}
	ctx.Step(`^"([^"]*)" reads a will state up to (\d+) times$`, steps.readsUpTo)
	ctx.Step(`^"([^"]*)" should have been rate limited$`, steps.shouldBeLimited)
	ctx.Step(`^the response should carry a Retry-After header$`, steps.hasRetryAfter)
	ctx.Step(`^"([^"]*)" can still read a will state$`, steps.canStillRead)
}

type ratelimitSteps struct {
	tc      TestContext
	limited map[string]bool
}

func (s *ratelimitSteps) read(ctx context.Context, role string) error {
	return s.tc.Do(ctx, http.MethodGet, "/wills/"+s.tc.Identity("owner")+"/state",
		map[string]string{"X-Caller-ID": s.tc.Identity(role)}, nil)
}

// readsUpTo stops at the first 429.
func (s *ratelimitSteps) readsUpTo(ctx context.Context, role string, n int) error {
	if s.limited == nil {
		s.limited = map[string]bool{}
	}
	s.limited[role] = false
	for range n {
		if err := s.read(ctx, role); err != nil {
			return err
		}
		if s.tc.GetLastResponseStatus() == http.StatusTooManyRequests {
			s.limited[role] = true
			return nil
		}
	}
	return nil
}

func (s *ratelimitSteps) shouldBeLimited(role string) error {
	if !s.limited[role] {
		return fmt.Errorf("%s was never rate limited", role)
	}
	return nil
}

func (s *ratelimitSteps) hasRetryAfter() error {
	if s.tc.GetLastResponseHeader("Retry-After") == "" {
		return fmt.Errorf("missing Retry-After header")
	}
	return nil
}

func (s *ratelimitSteps) canStillRead(ctx context.Context, role string) error {
	if err := s.read(ctx, role); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() == http.StatusTooManyRequests {
		return fmt.Errorf("%s shares another caller's budget", role)
	}
	return nil
}
