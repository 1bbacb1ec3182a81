package bloodrequest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	id "lifeline/pkg/domain"
	txcontext "lifeline/pkg/platform/tx"
)

// PostgresStore persists blood requests in Postgres. Retention is enforced
// twice: List filters by created_at and the cleanup worker deletes expired
// rows.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed blood request store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, r *Request) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO blood_requests (id, patient_name, hospital_name, blood_group, state, district, location, contact, age, gender, urgent, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, uuid.UUID(r.ID), r.PatientName, r.HospitalName, string(r.BloodGroup), r.State, r.District,
		r.Location, r.Contact, r.Age, r.Gender, r.Urgent, r.Status, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert blood request: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter, since time.Time) ([]*Request, error) {
	query := `
		SELECT id, patient_name, hospital_name, blood_group, state, district, location, contact, age, gender, urgent, status, created_at
		FROM blood_requests
		WHERE created_at >= $1
	`
	args := []any{since}
	if filter.BloodGroup != nil {
		args = append(args, string(*filter.BloodGroup))
		query += fmt.Sprintf(" AND blood_group = $%d", len(args))
	}
	if state := strings.TrimSpace(filter.State); state != "" {
		args = append(args, "%"+strings.ToLower(state)+"%")
		query += fmt.Sprintf(" AND LOWER(state) LIKE $%d", len(args))
	}
	if district := strings.TrimSpace(filter.District); district != "" {
		args = append(args, "%"+strings.ToLower(district)+"%")
		query += fmt.Sprintf(" AND LOWER(district) LIKE $%d", len(args))
	}
	query += " ORDER BY urgent DESC, created_at DESC"

	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blood requests: %w", err)
	}
	defer rows.Close()

	var out []*Request
	for rows.Next() {
		r := &Request{}
		var requestID uuid.UUID
		var bloodGroup string
		if err := rows.Scan(&requestID, &r.PatientName, &r.HospitalName, &bloodGroup, &r.State, &r.District,
			&r.Location, &r.Contact, &r.Age, &r.Gender, &r.Urgent, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blood request: %w", err)
		}
		r.ID = id.RequestID(requestID)
		r.BloodGroup = id.BloodGroup(bloodGroup)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blood requests: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM blood_requests WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired blood requests: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired blood requests: %w", err)
	}
	return int(affected), nil
}
