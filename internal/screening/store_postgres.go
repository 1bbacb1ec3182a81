package screening

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	id "lifeline/pkg/domain"
	txcontext "lifeline/pkg/platform/tx"
)

// PostgresStore persists screenings in Postgres. Flags are stored as JSONB
// so new questionnaire fields do not require migrations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed screening store.
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

func (s *PostgresStore) Append(ctx context.Context, sc *Screening) error {
	flags, err := json.Marshal(sc.Questionnaire.Flags)
	if err != nil {
		return fmt.Errorf("marshal risk flags: %w", err)
	}

	var donorID any
	if sc.DonorID != nil {
		donorID = uuid.UUID(*sc.DonorID)
	}

	query := `
		INSERT INTO screenings (id, donor_id, age, weight_kg, hemoglobin, flags, eligible, reason, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		sc.ID, donorID,
		sc.Questionnaire.Age, sc.Questionnaire.WeightKg, sc.Questionnaire.Hemoglobin,
		flags, sc.Verdict.Eligible, string(sc.Verdict.Reason), sc.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("insert screening: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByDonor(ctx context.Context, donorID id.DonorID) ([]*Screening, error) {
	query := `
		SELECT id, age, weight_kg, hemoglobin, flags, eligible, reason, checked_at
		FROM screenings
		WHERE donor_id = $1
		ORDER BY checked_at DESC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(donorID))
	if err != nil {
		return nil, fmt.Errorf("query screenings: %w", err)
	}
	defer rows.Close()

	var out []*Screening
	for rows.Next() {
		sc := &Screening{DonorID: &donorID}
		var flags []byte
		var reason string
		if err := rows.Scan(&sc.ID,
			&sc.Questionnaire.Age, &sc.Questionnaire.WeightKg, &sc.Questionnaire.Hemoglobin,
			&flags, &sc.Verdict.Eligible, &reason, &sc.CheckedAt,
		); err != nil {
			return nil, fmt.Errorf("scan screening: %w", err)
		}
		if err := json.Unmarshal(flags, &sc.Questionnaire.Flags); err != nil {
			return nil, fmt.Errorf("unmarshal risk flags: %w", err)
		}
		sc.Verdict.Reason = Reason(reason)
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screenings: %w", err)
	}
	return out, nil
}
