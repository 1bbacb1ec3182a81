package bloodrequest

import (
	"context"
	"sort"
	"sync"
	"time"

	id "lifeline/pkg/domain"
)

// InMemoryStore keeps blood requests in process memory. Intended for tests
// and local runs without a database.
type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[id.RequestID]*Request
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{requests: make(map[id.RequestID]*Request)}
}

func (s *InMemoryStore) Create(_ context.Context, r *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *r
	s.requests[r.ID] = &copied
	return nil
}

func (s *InMemoryStore) List(_ context.Context, filter Filter, since time.Time) ([]*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Request
	for _, r := range s.requests {
		if r.CreatedAt.Before(since) || !filter.Matches(r) {
			continue
		}
		copied := *r
		out = append(out, &copied)
	}
	sortRequests(out)
	return out, nil
}

func (s *InMemoryStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for key, r := range s.requests {
		if r.CreatedAt.Before(cutoff) {
			delete(s.requests, key)
			deleted++
		}
	}
	return deleted, nil
}

// sortRequests orders urgent first, then newest first within each group.
func sortRequests(out []*Request) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Urgent != out[j].Urgent {
			return out[i].Urgent
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}
