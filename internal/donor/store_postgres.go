package donor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/sentinel"
	txcontext "lifeline/pkg/platform/tx"
)

// PostgresStore persists donor profiles in Postgres. Email uniqueness is
// enforced by the donors_email_key constraint.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed donor store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const uniqueViolation = "23505"

func (s *PostgresStore) Create(ctx context.Context, d *Donor) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO donors (id, name, email, phone, age, gender, blood_group, state, district, location, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, uuid.UUID(d.ID), d.Name, strings.ToLower(d.Email), d.Phone, d.Age, d.Gender,
		string(d.BloodGroup), d.State, d.District, d.Location, d.Available, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert donor: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, donorID id.DonorID) (*Donor, error) {
	d := &Donor{ID: donorID}
	var bloodGroup string
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT name, email, phone, age, gender, blood_group, state, district, location, available, created_at, updated_at
		FROM donors
		WHERE id = $1
	`, uuid.UUID(donorID)).Scan(&d.Name, &d.Email, &d.Phone, &d.Age, &d.Gender, &bloodGroup,
		&d.State, &d.District, &d.Location, &d.Available, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query donor: %w", err)
	}
	d.BloodGroup = id.BloodGroup(bloodGroup)
	return d, nil
}

func (s *PostgresStore) Update(ctx context.Context, d *Donor) error {
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE donors
		SET name = $2, email = $3, phone = $4, age = $5, gender = $6, blood_group = $7,
		    state = $8, district = $9, location = $10, available = $11, updated_at = $12
		WHERE id = $1
	`, uuid.UUID(d.ID), d.Name, strings.ToLower(d.Email), d.Phone, d.Age, d.Gender,
		string(d.BloodGroup), d.State, d.District, d.Location, d.Available, d.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update donor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, criteria SearchCriteria) ([]*Donor, error) {
	query := `
		SELECT id, name, email, phone, age, gender, blood_group, state, district, location, available, created_at, updated_at
		FROM donors
		WHERE 1=1
	`
	var args []any
	if criteria.BloodGroup != nil {
		args = append(args, string(*criteria.BloodGroup))
		query += fmt.Sprintf(" AND blood_group = $%d", len(args))
	}
	if state := strings.TrimSpace(criteria.State); state != "" {
		args = append(args, "%"+strings.ToLower(state)+"%")
		query += fmt.Sprintf(" AND LOWER(state) LIKE $%d", len(args))
	}
	if district := strings.TrimSpace(criteria.District); district != "" {
		args = append(args, "%"+strings.ToLower(district)+"%")
		query += fmt.Sprintf(" AND LOWER(district) LIKE $%d", len(args))
	}
	query += " ORDER BY name"

	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search donors: %w", err)
	}
	defer rows.Close()

	var out []*Donor
	for rows.Next() {
		d := &Donor{}
		var donorID uuid.UUID
		var bloodGroup string
		if err := rows.Scan(&donorID, &d.Name, &d.Email, &d.Phone, &d.Age, &d.Gender, &bloodGroup,
			&d.State, &d.District, &d.Location, &d.Available, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		d.ID = id.DonorID(donorID)
		d.BloodGroup = id.BloodGroup(bloodGroup)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donors: %w", err)
	}
	return out, nil
}
