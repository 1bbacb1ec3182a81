package bloodrequest

import (
	"context"
	"time"
)

// Store persists blood requests.
//
// List returns only requests created at or after since, urgent requests
// first and newest first within each group. DeleteOlderThan is the purge
// path for the cleanup worker; stores whose backend expires entries on its
// own (Redis TTL) may report zero deletions.
type Store interface {
	Create(ctx context.Context, r *Request) error
	List(ctx context.Context, filter Filter, since time.Time) ([]*Request, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
