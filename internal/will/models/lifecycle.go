package models

import (
	"time"

	dErrors "testament/pkg/domain-errors"
)

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// ApplyDeathConfirmed moves InCreation to DeathConfirmed. It returns false,
// leaving the will untouched, from any other state.
func (w *Will) ApplyDeathConfirmed(now time.Time) bool {
	if !w.State.CanTransitionTo(StateDeathConfirmed) {
		return false
	}
	w.State = StateDeathConfirmed
	w.UpdatedAt = now
	return true
}

// ApplyGrantOfProbateConfirmed moves DeathConfirmed to
// GrantOfProbateConfirmed. It returns false from any other state.
func (w *Will) ApplyGrantOfProbateConfirmed(now time.Time) bool {
	if !w.State.CanTransitionTo(StateGrantOfProbateConfirmed) {
		return false
	}
	w.State = StateGrantOfProbateConfirmed
	w.UpdatedAt = now
	return true
}

// CanForceGrantOfProbate checks the operator override. Any non-terminal will
// may be forced; a Closed will has already been distributed.
func (w *Will) CanForceGrantOfProbate() error {
	if w.State.IsTerminal() {
		return dErrors.New(dErrors.CodeInvalidState, "will is closed")
	}
	return nil
}

// ApplyForceGrantOfProbate sets GrantOfProbateConfirmed regardless of the
// current stage. Call CanForceGrantOfProbate first.
func (w *Will) ApplyForceGrantOfProbate(now time.Time) {
	w.State = StateGrantOfProbateConfirmed
	w.UpdatedAt = now
}

// CanDistribute checks the will is ready for payout.
func (w *Will) CanDistribute() error {
	if w.State != StateGrantOfProbateConfirmed {
		return dErrors.Newf(dErrors.CodeInvalidState, "will is %s, distribution requires %s", w.State, StateGrantOfProbateConfirmed)
	}
	return nil
}

// ApplyDigitalDistribution pays out the digital balance and closes the will.
// Call CanDistribute first. The returned record lists every payout; the
// truncation remainder stays as the will's balance.
func (w *Will) ApplyDigitalDistribution(now time.Time) DistributionRecord {
	payouts, remainder := ComputePayouts(w.DigitalAssets, w.Beneficiaries)
	record := DistributionRecord{
		Owner:         w.Owner,
		Funds:         w.DigitalAssets,
		Payouts:       payouts,
		Remainder:     remainder,
		DistributedAt: now,
	}
	w.DigitalAssets = remainder
	w.ApplyClose(now)
	return record
}

// ApplyClose force-sets Closed. Used by both distribution paths.
func (w *Will) ApplyClose(now time.Time) {
	w.State = StateClosed
	w.UpdatedAt = now
}
