package screening

import (
	"context"
	"sort"
	"sync"

	id "lifeline/pkg/domain"
)

// InMemoryStore keeps screenings in memory for tests and development.
type InMemoryStore struct {
	mu         sync.RWMutex
	screenings []*Screening
}

// NewInMemoryStore constructs an empty in-memory screening store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, sc *Screening) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sc
	s.screenings = append(s.screenings, &cp)
	return nil
}

func (s *InMemoryStore) ListByDonor(_ context.Context, donorID id.DonorID) ([]*Screening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Screening
	for _, sc := range s.screenings {
		if sc.DonorID != nil && *sc.DonorID == donorID {
			cp := *sc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckedAt.After(out[j].CheckedAt)
	})
	return out, nil
}
