// Package store persists registry documents keyed by national id.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"testament/internal/registry/models"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
)

// InMemoryStore is the document store used in tests and single-process runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	deaths map[id.NationalID]models.DeathRecord
	grants map[id.NationalID]models.ProbateRecord
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		deaths: make(map[id.NationalID]models.DeathRecord),
		grants: make(map[id.NationalID]models.ProbateRecord),
	}
}

// PutDeath sets the record under its national id, replacing any earlier one.
func (s *InMemoryStore) PutDeath(_ context.Context, r models.DeathRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deaths[r.NationalID] = r
	return nil
}

func (s *InMemoryStore) GetDeath(_ context.Context, nationalID id.NationalID) (*models.DeathRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.deaths[nationalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

// ListDeaths returns deaths dated in [from, to), oldest first.
func (s *InMemoryStore) ListDeaths(_ context.Context, from, to time.Time) ([]models.DeathRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.DeathRecord{}
	for _, r := range s.deaths {
		if inRange(r.DateOfDeath, from, to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateOfDeath.Equal(out[j].DateOfDeath) {
			return out[i].NationalID < out[j].NationalID
		}
		return out[i].DateOfDeath.Before(out[j].DateOfDeath)
	})
	return out, nil
}

func (s *InMemoryStore) PutGrant(_ context.Context, r models.ProbateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[r.NationalID] = r
	return nil
}

func (s *InMemoryStore) GetGrant(_ context.Context, nationalID id.NationalID) (*models.ProbateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.grants[nationalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

// ListGrants returns grants dated in [from, to), oldest first.
func (s *InMemoryStore) ListGrants(_ context.Context, from, to time.Time) ([]models.ProbateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.ProbateRecord{}
	for _, r := range s.grants {
		if inRange(r.DateGranted, from, to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateGranted.Equal(out[j].DateGranted) {
			return out[i].NationalID < out[j].NationalID
		}
		return out[i].DateGranted.Before(out[j].DateGranted)
	})
	return out, nil
}

// Clear drops every record.
func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deaths = make(map[id.NationalID]models.DeathRecord)
	s.grants = make(map[id.NationalID]models.ProbateRecord)
	return nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
