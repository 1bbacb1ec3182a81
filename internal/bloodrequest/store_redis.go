package bloodrequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "lifeline/pkg/domain"
)

const requestKeyPrefix = "bloodreq:"

// redisRequest is the stored JSON shape. IDs and blood groups serialize as
// strings so the keys stay readable in redis-cli.
type redisRequest struct {
	ID           string    `json:"id"`
	PatientName  string    `json:"patient_name"`
	HospitalName string    `json:"hospital_name"`
	BloodGroup   string    `json:"blood_group"`
	State        string    `json:"state"`
	District     string    `json:"district"`
	Location     string    `json:"location"`
	Contact      string    `json:"contact"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	Urgent       bool      `json:"urgent"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// RedisStore keeps blood requests in Redis with a TTL equal to the
// retention window, so expiry enforces retention without a purge pass.
// DeleteOlderThan is therefore a no-op.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedis creates a Redis-backed blood request store.
func NewRedis(client *redis.Client, retention time.Duration) *RedisStore {
	if retention <= 0 {
		retention = RetentionWindow
	}
	return &RedisStore{client: client, retention: retention}
}

func (s *RedisStore) Create(ctx context.Context, r *Request) error {
	payload, err := json.Marshal(redisRequest{
		ID:           r.ID.String(),
		PatientName:  r.PatientName,
		HospitalName: r.HospitalName,
		BloodGroup:   string(r.BloodGroup),
		State:        r.State,
		District:     r.District,
		Location:     r.Location,
		Contact:      r.Contact,
		Age:          r.Age,
		Gender:       r.Gender,
		Urgent:       r.Urgent,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal blood request: %w", err)
	}
	key := requestKeyPrefix + r.ID.String()
	if err := s.client.Set(ctx, key, payload, s.retention).Err(); err != nil {
		return fmt.Errorf("store blood request: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, filter Filter, since time.Time) ([]*Request, error) {
	var out []*Request
	iter := s.client.Scan(ctx, 0, requestKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		payload, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // expired between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("load blood request: %w", err)
		}
		var stored redisRequest
		if err := json.Unmarshal(payload, &stored); err != nil {
			return nil, fmt.Errorf("unmarshal blood request: %w", err)
		}
		requestID, err := id.ParseRequestID(stored.ID)
		if err != nil {
			return nil, fmt.Errorf("unmarshal blood request: %w", err)
		}
		r := &Request{
			ID:           requestID,
			PatientName:  stored.PatientName,
			HospitalName: stored.HospitalName,
			BloodGroup:   id.BloodGroup(stored.BloodGroup),
			State:        stored.State,
			District:     stored.District,
			Location:     stored.Location,
			Contact:      stored.Contact,
			Age:          stored.Age,
			Gender:       stored.Gender,
			Urgent:       stored.Urgent,
			Status:       stored.Status,
			CreatedAt:    stored.CreatedAt,
		}
		if r.CreatedAt.Before(since) || !filter.Matches(r) {
			continue
		}
		out = append(out, r)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan blood requests: %w", err)
	}
	sortRequests(out)
	return out, nil
}

// DeleteOlderThan relies on key TTLs; there is nothing to purge.
func (s *RedisStore) DeleteOlderThan(context.Context, time.Time) (int, error) {
	return 0, nil
}
