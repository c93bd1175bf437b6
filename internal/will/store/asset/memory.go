package asset

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

// InMemoryStore holds physical assets and the id counters for one registry
// instance. Asset ids and title token ids both start at 1.
type InMemoryStore struct {
	mu        sync.RWMutex
	assets    map[id.AssetID]*models.PhysicalAsset
	nextID    id.AssetID
	nextToken uint64
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		assets:    make(map[id.AssetID]*models.PhysicalAsset),
		nextID:    1,
		nextToken: 1,
	}
}

// Create assigns the next sequential id, stores the asset, and sets a.ID.
// A rolled back create leaves its id unused, like a database sequence.
func (s *InMemoryStore) Create(ctx context.Context, a *models.PhysicalAsset) (id.AssetID, error) {
	if a == nil {
		return 0, fmt.Errorf("asset is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextID
	s.nextID++
	s.assets[a.ID] = a.Clone()
	assetID := a.ID
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.assets, assetID)
	})
	return a.ID, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, assetID id.AssetID) (*models.PhysicalAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[assetID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return a.Clone(), nil
}

// FindForUpdate is FindByID; callers already hold the owner's transaction.
func (s *InMemoryStore) FindForUpdate(ctx context.Context, assetID id.AssetID) (*models.PhysicalAsset, error) {
	return s.FindByID(ctx, assetID)
}

// ListByOwner returns every asset ever created for owner in id order.
func (s *InMemoryStore) ListByOwner(_ context.Context, owner id.Identity) ([]*models.PhysicalAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.PhysicalAsset, 0)
	for _, a := range s.assets {
		if a.Owner == owner {
			out = append(out, a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Save(ctx context.Context, a *models.PhysicalAsset) error {
	if a == nil {
		return fmt.Errorf("asset is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, ok := s.assets[a.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	s.assets[a.ID] = a.Clone()
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.assets[previous.ID] = previous
	})
	return nil
}

// NextTokenIDs reserves n consecutive title token ids. Reserved ids are never
// handed out again, even when the reserving transaction fails.
func (s *InMemoryStore) NextTokenIDs(_ context.Context, n int) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, n)
	for i := range out {
		out[i] = s.nextToken
		s.nextToken++
	}
	return out, nil
}
