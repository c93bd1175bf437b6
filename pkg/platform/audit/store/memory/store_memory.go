package memory

import (
	"context"
	"slices"
	"sync"

	id "testament/pkg/domain"
	audit "testament/pkg/platform/audit"
	txcontext "testament/pkg/platform/tx"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.Identity][]audit.Event
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.Identity][]audit.Event)
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.Identity][]audit.Event)}
}

// Append records event. Inside a journaled transaction the event is
// withdrawn again if that transaction fails.
func (s *InMemoryStore) Append(ctx context.Context, event audit.Event) error {
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.Owner] = append(s.events[event.Owner], event)
	txcontext.OnRollback(ctx, func() { s.withdraw(event) })
	return nil
}

func (s *InMemoryStore) withdraw(event audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events[event.Owner]
	for i := len(events) - 1; i >= 0; i-- {
		if events[i] == event {
			s.events[event.Owner] = slices.Delete(events, i, i+1)
			return
		}
	}
}

// ListByOwner returns the owner's events in emission order.
func (s *InMemoryStore) ListByOwner(_ context.Context, owner id.Identity) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events[owner]), nil
}

// ListAll returns all audit events across all owners (operator-only).
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var allEvents []audit.Event
	for _, ownerEvents := range s.events {
		allEvents = append(allEvents, ownerEvents...)
	}
	return allEvents, nil
}
