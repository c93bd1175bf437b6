package client

import (
	"context"

	"testament/internal/registry/service"
	"testament/internal/will/ports"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

// Local serves registry lookups from an in-process registry service.
type Local struct {
	registry *service.Service
}

func NewLocal(registry *service.Service) *Local {
	return &Local{registry: registry}
}

func (l *Local) LookupDeath(ctx context.Context, nationalID id.NationalID) (ports.RegistryMatch, error) {
	r, err := l.registry.GetDeath(ctx, nationalID)
	if err != nil {
		return notFoundIsNoMatch(err)
	}
	return ports.RegistryMatch{Found: true, Date: r.DateOfDeath}, nil
}

func (l *Local) LookupGrant(ctx context.Context, nationalID id.NationalID) (ports.RegistryMatch, error) {
	r, err := l.registry.GetGrant(ctx, nationalID)
	if err != nil {
		return notFoundIsNoMatch(err)
	}
	if !r.Approved {
		return ports.RegistryMatch{}, nil
	}
	return ports.RegistryMatch{Found: true, Date: r.DateGranted}, nil
}

func (l *Local) DeathsToday(ctx context.Context) ([]id.NationalID, error) {
	records, err := l.registry.DeathsToday(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]id.NationalID, 0, len(records))
	for _, r := range records {
		out = append(out, r.NationalID)
	}
	return out, nil
}

func (l *Local) GrantsToday(ctx context.Context) ([]id.NationalID, error) {
	records, err := l.registry.GrantsToday(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]id.NationalID, 0, len(records))
	for _, r := range records {
		if r.Approved {
			out = append(out, r.NationalID)
		}
	}
	return out, nil
}

func notFoundIsNoMatch(err error) (ports.RegistryMatch, error) {
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		return ports.RegistryMatch{}, nil
	}
	return ports.RegistryMatch{}, err
}
