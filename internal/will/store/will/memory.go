package will

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"testament/internal/will/models"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
	txcontext "testament/pkg/platform/tx"
)

// InMemoryStore keeps wills keyed by owner. Returned wills are copies;
// callers persist changes with Save.
type InMemoryStore struct {
	mu         sync.RWMutex
	wills      map[id.Identity]*models.Will
	byNational map[id.NationalID]id.Identity
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		wills:      make(map[id.Identity]*models.Will),
		byNational: make(map[id.NationalID]id.Identity),
	}
}

// Create inserts a new will. Returns sentinel.ErrConflict when the owner or
// national id already has a will.
func (s *InMemoryStore) Create(ctx context.Context, w *models.Will) error {
	if w == nil {
		return fmt.Errorf("will is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wills[w.Owner]; ok {
		return fmt.Errorf("will for %s: %w", w.Owner, sentinel.ErrConflict)
	}
	if _, ok := s.byNational[w.NationalID]; ok {
		return fmt.Errorf("national id %s: %w", w.NationalID, sentinel.ErrConflict)
	}
	s.wills[w.Owner] = w.Clone()
	s.byNational[w.NationalID] = w.Owner
	owner, nationalID := w.Owner, w.NationalID
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.wills, owner)
		delete(s.byNational, nationalID)
	})
	return nil
}

func (s *InMemoryStore) FindByOwner(_ context.Context, owner id.Identity) (*models.Will, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wills[owner]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return w.Clone(), nil
}

// FindForUpdate is FindByOwner; the in-memory transaction already serializes
// writers per owner.
func (s *InMemoryStore) FindForUpdate(ctx context.Context, owner id.Identity) (*models.Will, error) {
	return s.FindByOwner(ctx, owner)
}

func (s *InMemoryStore) FindByNationalID(_ context.Context, nationalID id.NationalID) (*models.Will, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owner, ok := s.byNational[nationalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.wills[owner].Clone(), nil
}

// Save replaces the stored will. Owner and national id never change.
func (s *InMemoryStore) Save(ctx context.Context, w *models.Will) error {
	if w == nil {
		return fmt.Errorf("will is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, ok := s.wills[w.Owner]
	if !ok {
		return sentinel.ErrNotFound
	}
	s.wills[w.Owner] = w.Clone()
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.wills[previous.Owner] = previous
	})
	return nil
}

// ListByState returns wills in the given state ordered by owner.
func (s *InMemoryStore) ListByState(_ context.Context, state models.State) ([]*models.Will, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Will, 0)
	for _, w := range s.wills {
		if w.State == state {
			out = append(out, w.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Owner < out[j].Owner })
	return out, nil
}
