package models

import (
	dErrors "testament/pkg/domain-errors"
)

// State is the will lifecycle stage.
//
// Transitions are monotonic:
//
//	InCreation -> DeathConfirmed -> GrantOfProbateConfirmed -> Closed
//
// The only skip is the operator override that force-sets
// GrantOfProbateConfirmed (see CanForceGrantOfProbate).
type State string

const (
	StateInCreation              State = "InCreation"
	StateDeathConfirmed          State = "DeathConfirmed"
	StateGrantOfProbateConfirmed State = "GrantOfProbateConfirmed"
	StateClosed                  State = "Closed"
)

var stateOrder = map[State]int{
	StateInCreation:              0,
	StateDeathConfirmed:          1,
	StateGrantOfProbateConfirmed: 2,
	StateClosed:                  3,
}

// ParseState validates a persisted or user-supplied state name.
func ParseState(s string) (State, error) {
	st := State(s)
	if _, ok := stateOrder[st]; !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown will state %q", s)
	}
	return st, nil
}

func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s State) IsTerminal() bool {
	return s == StateClosed
}

// CanTransitionTo reports whether next is the immediate successor of s.
func (s State) CanTransitionTo(next State) bool {
	cur, ok := stateOrder[s]
	if !ok {
		return false
	}
	n, ok := stateOrder[next]
	if !ok {
		return false
	}
	return n == cur+1
}

// AcceptsEdits reports whether beneficiaries, allocations and assets may
// still change. Everything except distribution bookkeeping freezes on Closed.
func (s State) AcceptsEdits() bool {
	return s != StateClosed
}
