package donation

import (
	"context"
	"sort"
	"sync"
	"time"

	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/sentinel"
)

// InMemoryStore keeps donations and ledgers in process memory. Intended for
// tests and local runs without a database.
type InMemoryStore struct {
	mu        sync.Mutex
	donations map[id.DonorID][]*Donation
	ledgers   map[id.DonorID]*Ledger
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		donations: make(map[id.DonorID][]*Donation),
		ledgers:   make(map[id.DonorID]*Ledger),
	}
}

func (s *InMemoryStore) RecordDonation(_ context.Context, d *Donation, apply func(*Ledger)) (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := *d
	s.donations[d.DonorID] = append(s.donations[d.DonorID], &event)

	ledger, ok := s.ledgers[d.DonorID]
	if !ok {
		ledger = &Ledger{DonorID: d.DonorID, Badge: BadgeNewDonor}
		s.ledgers[d.DonorID] = ledger
	}
	apply(ledger)

	out := *ledger
	return &out, nil
}

func (s *InMemoryStore) GetLedger(_ context.Context, donorID id.DonorID) (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, ok := s.ledgers[donorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *ledger
	return &out, nil
}

func (s *InMemoryStore) ListDonations(_ context.Context, donorID id.DonorID) ([]*Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.donations[donorID]
	out := make([]*Donation, 0, len(events))
	for _, d := range events {
		copied := *d
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *InMemoryStore) DeriveLedger(_ context.Context, donorID id.DonorID) (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	derived := &Ledger{DonorID: donorID, Badge: BadgeNewDonor, UpdatedAt: time.Now().UTC()}
	for _, d := range s.donations[donorID] {
		derived.TotalDonations++
		if derived.LastDonationDate == nil || d.Date.After(*derived.LastDonationDate) {
			date := d.Date
			derived.LastDonationDate = &date
		}
	}
	derived.Badge = ComputeBadge(derived.TotalDonations)
	return derived, nil
}

func (s *InMemoryStore) SaveLedger(_ context.Context, l *Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *l
	s.ledgers[l.DonorID] = &copied
	return nil
}
