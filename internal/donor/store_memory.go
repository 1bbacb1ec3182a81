package donor

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/sentinel"
)

// InMemoryStore keeps donor profiles in process memory. Intended for tests
// and local runs without a database.
type InMemoryStore struct {
	mu     sync.RWMutex
	donors map[id.DonorID]*Donor
	emails map[string]id.DonorID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		donors: make(map[id.DonorID]*Donor),
		emails: make(map[string]id.DonorID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, d *Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(d.Email)
	if _, taken := s.emails[key]; taken {
		return sentinel.ErrConflict
	}

	copied := *d
	s.donors[d.ID] = &copied
	s.emails[key] = d.ID
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, donorID id.DonorID) (*Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.donors[donorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (s *InMemoryStore) Update(_ context.Context, d *Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.donors[d.ID]
	if !ok {
		return sentinel.ErrNotFound
	}

	key := strings.ToLower(d.Email)
	if owner, taken := s.emails[key]; taken && owner != d.ID {
		return sentinel.ErrConflict
	}

	delete(s.emails, strings.ToLower(existing.Email))
	copied := *d
	s.donors[d.ID] = &copied
	s.emails[key] = d.ID
	return nil
}

func (s *InMemoryStore) Search(_ context.Context, criteria SearchCriteria) ([]*Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Donor
	for _, d := range s.donors {
		if criteria.Matches(d) {
			copied := *d
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
