package stock

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/sentinel"
)

type stockKey struct {
	hospitalID id.HospitalID
	group      id.BloodGroup
}

// InMemoryStore keeps stock rows in process memory. Intended for tests and
// local runs without a database.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[stockKey]*Stock
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[stockKey]*Stock)}
}

func (s *InMemoryStore) Upsert(_ context.Context, row *Stock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stockKey{hospitalID: row.HospitalID, group: row.BloodGroup}
	if existing, ok := s.rows[key]; ok {
		row.ID = existing.ID
	} else if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	copied := *row
	s.rows[key] = &copied
	return nil
}

func (s *InMemoryStore) ListByHospital(_ context.Context, hospitalID id.HospitalID) ([]*Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Stock
	for key, row := range s.rows {
		if key.hospitalID != hospitalID {
			continue
		}
		copied := *row
		out = append(out, &copied)
	}
	sortStocks(out)
	return out, nil
}

func (s *InMemoryStore) LiveView(_ context.Context) ([]*Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Stock, 0, len(s.rows))
	for _, row := range s.rows {
		copied := *row
		out = append(out, &copied)
	}
	sortStocks(out)
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, hospitalID id.HospitalID, group id.BloodGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stockKey{hospitalID: hospitalID, group: group}
	if _, ok := s.rows[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.rows, key)
	return nil
}

// sortStocks orders by blood group, then hospital for a stable live view.
func sortStocks(out []*Stock) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].BloodGroup != out[j].BloodGroup {
			return out[i].BloodGroup < out[j].BloodGroup
		}
		return out[i].HospitalID.String() < out[j].HospitalID.String()
	})
}
