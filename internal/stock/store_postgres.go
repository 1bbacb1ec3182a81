package stock

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/sentinel"
	txcontext "lifeline/pkg/platform/tx"
)

// PostgresStore persists stock rows in Postgres. The UNIQUE(hospital_id,
// blood_group) constraint backs the upsert.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed stock store.
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

func (s *PostgresStore) Upsert(ctx context.Context, row *Stock) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO blood_stocks (id, hospital_id, blood_group, units, expires_on, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (hospital_id, blood_group) DO UPDATE
		SET units = EXCLUDED.units,
		    expires_on = EXCLUDED.expires_on,
		    updated_at = EXCLUDED.updated_at
	`, row.ID, uuid.UUID(row.HospitalID), string(row.BloodGroup), row.Units, row.ExpiresOn, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByHospital(ctx context.Context, hospitalID id.HospitalID) ([]*Stock, error) {
	return s.query(ctx, `
		SELECT id, hospital_id, blood_group, units, expires_on, updated_at
		FROM blood_stocks
		WHERE hospital_id = $1
		ORDER BY blood_group
	`, uuid.UUID(hospitalID))
}

func (s *PostgresStore) LiveView(ctx context.Context) ([]*Stock, error) {
	return s.query(ctx, `
		SELECT id, hospital_id, blood_group, units, expires_on, updated_at
		FROM blood_stocks
		ORDER BY blood_group, hospital_id
	`)
}

func (s *PostgresStore) Delete(ctx context.Context, hospitalID id.HospitalID, group id.BloodGroup) error {
	res, err := s.execer(ctx).ExecContext(ctx, `
		DELETE FROM blood_stocks WHERE hospital_id = $1 AND blood_group = $2
	`, uuid.UUID(hospitalID), string(group))
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*Stock, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stocks: %w", err)
	}
	defer rows.Close()

	var out []*Stock
	for rows.Next() {
		row := &Stock{}
		var hospitalID uuid.UUID
		var group string
		if err := rows.Scan(&row.ID, &hospitalID, &group, &row.Units, &row.ExpiresOn, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		row.HospitalID = id.HospitalID(hospitalID)
		row.BloodGroup = id.BloodGroup(group)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stocks: %w", err)
	}
	return out, nil
}
