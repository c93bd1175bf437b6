package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into coded domain errors.
//
// They describe the state of a resource, never a validation failure:
// - ErrNotFound: no will, asset or registry record under the key
// - ErrAlreadyUsed: a one-shot write (asset distribution) already happened
// - ErrConflict: a unique key (owner, national id) is already taken
// - ErrInvalidState: the entity is in the wrong lifecycle state
// - ErrUnavailable: backing service temporarily unavailable
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
