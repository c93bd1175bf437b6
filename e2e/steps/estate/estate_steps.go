package estate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(ctx context.Context, method, path string, headers map[string]string, body any) error
	Identity(role string) string
	NationalID(role string) string
	GetAdminToken() string
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers will lifecycle step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &estateSteps{tc: tc}

	// Setup while the will is in creation
	ctx.Step(`^"([^"]*)" creates a will$`, steps.createsWill)
	ctx.Step(`^"([^"]*)" funds the will of "([^"]*)" with (\d+)$`, steps.fundsWill)
	ctx.Step(`^"([^"]*)" sets "([^"]*)" as residual beneficiary$`, steps.setsResidual)
	ctx.Step(`^"([^"]*)" allocates (\d+) percent to "([^"]*)"$`, steps.allocates)

	// Registry records
	ctx.Step(`^the registry records the death of "([^"]*)"$`, steps.recordsDeath)
	ctx.Step(`^the registry records an approved grant of probate for "([^"]*)"$`, steps.recordsGrant)

	// Operator actions
	ctx.Step(`^the operator confirms the death of "([^"]*)"$`, steps.confirmsDeath)
	ctx.Step(`^the operator confirms probate for "([^"]*)"$`, steps.confirmsProbate)
	ctx.Step(`^the operator distributes the estate of "([^"]*)"$`, steps.distributesEstate)

	// Reads
	ctx.Step(`^the will of "([^"]*)" should be in state "([^"]*)"$`, steps.willShouldBeInState)
	ctx.Step(`^"([^"]*)" checks the balance of "([^"]*)"$`, steps.checksBalance)
}

type estateSteps struct {
	tc TestContext
}

func (s *estateSteps) as(role string) map[string]string {
	return map[string]string{"X-Caller-ID": s.tc.Identity(role)}
}

func (s *estateSteps) operator() map[string]string {
	return map[string]string{"X-Admin-Token": s.tc.GetAdminToken()}
}

// expect runs a request and fails the step unless it returns want.
func (s *estateSteps) expect(ctx context.Context, want int, method, path string, headers map[string]string, body any) error {
	if err := s.tc.Do(ctx, method, path, headers, body); err != nil {
		return err
	}
	if got := s.tc.GetLastResponseStatus(); got != want {
		return fmt.Errorf("%s %s: expected %d, got %d: %s", method, path, want, got, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *estateSteps) createsWill(ctx context.Context, owner string) error {
	return s.expect(ctx, http.StatusCreated, http.MethodPost, "/wills", s.as(owner),
		map[string]string{"national_id": s.tc.NationalID(owner)})
}

func (s *estateSteps) fundsWill(ctx context.Context, funder, owner string, amount int) error {
	return s.expect(ctx, http.StatusOK, http.MethodPost, "/wills/"+s.tc.Identity(owner)+"/fund", s.as(funder),
		map[string]int{"amount": amount})
}

func (s *estateSteps) setsResidual(ctx context.Context, owner, beneficiary string) error {
	return s.expect(ctx, http.StatusOK, http.MethodPut, "/wills/"+s.tc.Identity(owner)+"/residual", s.as(owner),
		map[string]string{"beneficiary": s.tc.Identity(beneficiary)})
}

func (s *estateSteps) allocates(ctx context.Context, owner string, percent int, beneficiary string) error {
	return s.expect(ctx, http.StatusOK, http.MethodPost, "/wills/"+s.tc.Identity(owner)+"/beneficiaries", s.as(owner),
		map[string]any{
			"beneficiaries": []string{s.tc.Identity(beneficiary)},
			"shares":        []int{percent},
		})
}

func (s *estateSteps) recordsDeath(ctx context.Context, owner string) error {
	return s.expect(ctx, http.StatusCreated, http.MethodPost, "/api/deaths", s.operator(), map[string]any{
		"national_id":   s.tc.NationalID(owner),
		"deceased_name": "E2E " + owner,
		"date_of_death": time.Now().UTC(),
	})
}

func (s *estateSteps) recordsGrant(ctx context.Context, owner string) error {
	return s.expect(ctx, http.StatusCreated, http.MethodPost, "/api/grants", s.operator(), map[string]any{
		"national_id":  s.tc.NationalID(owner),
		"case_number":  "HCF/E2E/" + s.tc.NationalID(owner),
		"court":        "Family Justice Courts",
		"approved":     true,
		"date_granted": time.Now().UTC(),
	})
}

func (s *estateSteps) confirmsDeath(ctx context.Context, owner string) error {
	return s.tc.Do(ctx, http.MethodPost, "/admin/wills/"+s.tc.Identity(owner)+"/confirm-death", s.operator(), nil)
}

func (s *estateSteps) confirmsProbate(ctx context.Context, owner string) error {
	return s.tc.Do(ctx, http.MethodPost, "/admin/wills/"+s.tc.Identity(owner)+"/confirm-probate", s.operator(), nil)
}

func (s *estateSteps) distributesEstate(ctx context.Context, owner string) error {
	return s.tc.Do(ctx, http.MethodPost, "/admin/wills/"+s.tc.Identity(owner)+"/distribute-estate", s.operator(), nil)
}

func (s *estateSteps) willShouldBeInState(ctx context.Context, owner, state string) error {
	if err := s.expect(ctx, http.StatusOK, http.MethodGet, "/wills/"+s.tc.Identity(owner)+"/state", nil, nil); err != nil {
		return err
	}
	return s.matchField("state", state)
}

func (s *estateSteps) checksBalance(ctx context.Context, caller, beneficiary string) error {
	return s.tc.Do(ctx, http.MethodGet, "/balances/"+s.tc.Identity(beneficiary), s.as(caller), nil)
}

func (s *estateSteps) matchField(field, want string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); got != want {
		return fmt.Errorf("expected %s=%q, got %q", field, want, got)
	}
	return nil
}
