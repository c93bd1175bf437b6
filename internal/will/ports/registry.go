package ports

import (
	"context"
	"time"

	id "testament/pkg/domain"
)

// DeathRegistry looks up government death records by national id.
// The will service depends on this port, not on the registry's transport,
// so the registry may be an in-process store or a remote HTTP API.
type DeathRegistry interface {
	// LookupDeath returns Found=false with a nil error when no record exists.
	LookupDeath(ctx context.Context, nationalID id.NationalID) (RegistryMatch, error)
}

// ProbateRegistry looks up grants of probate by the deceased's national id.
type ProbateRegistry interface {
	// LookupGrant returns Found=false with a nil error when no approved grant exists.
	LookupGrant(ctx context.Context, nationalID id.NationalID) (RegistryMatch, error)
}

// RegistryMatch is the port model for a registry lookup.
// Date is the date of death or the date the grant was issued.
type RegistryMatch struct {
	Found bool
	Date  time.Time
}
