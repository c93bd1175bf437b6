package payout

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"testament/internal/will/models"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
	txcontext "testament/pkg/platform/tx"
)

// InMemoryStore keeps digital distribution records and the running credit
// balance of every beneficiary.
type InMemoryStore struct {
	mu       sync.RWMutex
	records  map[id.Identity]models.DistributionRecord
	balances map[id.Identity]int64
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		records:  make(map[id.Identity]models.DistributionRecord),
		balances: make(map[id.Identity]int64),
	}
}

// RecordDistribution stores the record and credits each payout. A will is
// distributed at most once; a second record returns sentinel.ErrConflict.
func (s *InMemoryStore) RecordDistribution(ctx context.Context, record models.DistributionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.Owner]; ok {
		return fmt.Errorf("distribution for %s: %w", record.Owner, sentinel.ErrConflict)
	}
	record.Payouts = slices.Clone(record.Payouts)
	s.records[record.Owner] = record
	for _, p := range record.Payouts {
		s.balances[p.Beneficiary] += p.Amount
	}
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.records, record.Owner)
		for _, p := range record.Payouts {
			s.balances[p.Beneficiary] -= p.Amount
		}
	})
	return nil
}

func (s *InMemoryStore) FindDistribution(_ context.Context, owner id.Identity) (*models.DistributionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[owner]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	record.Payouts = slices.Clone(record.Payouts)
	return &record, nil
}

// BalanceOf returns everything credited to beneficiary across all wills.
func (s *InMemoryStore) BalanceOf(_ context.Context, beneficiary id.Identity) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[beneficiary], nil
}
