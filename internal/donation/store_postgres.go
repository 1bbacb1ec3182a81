package donation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "lifeline/pkg/domain"
	"lifeline/pkg/platform/sentinel"
	txcontext "lifeline/pkg/platform/tx"
)

// PostgresStore persists donations and ledgers in Postgres. RecordDonation
// runs inside its own transaction and takes a row lock on the donor's
// ledger, so two concurrent records for the same donor serialize at the
// database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed donation store.
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

func (s *PostgresStore) RecordDonation(ctx context.Context, d *Donation, apply func(*Ledger)) (*Ledger, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO donations (id, donor_id, donated_on, location, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`, d.ID, uuid.UUID(d.DonorID), d.Date, d.Location, d.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("insert donation: %w", err)
	}

	// Ensure the ledger row exists before locking it.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO donor_ledgers (donor_id, total_donations, last_donation_date, badge, updated_at)
		VALUES ($1, 0, NULL, $2, $3)
		ON CONFLICT (donor_id) DO NOTHING
	`, uuid.UUID(d.DonorID), string(BadgeNewDonor), d.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("ensure ledger: %w", err)
	}

	ledger := &Ledger{DonorID: d.DonorID}
	var badge string
	err = tx.QueryRowContext(ctx, `
		SELECT total_donations, last_donation_date, badge, updated_at
		FROM donor_ledgers
		WHERE donor_id = $1
		FOR UPDATE
	`, uuid.UUID(d.DonorID)).Scan(&ledger.TotalDonations, &ledger.LastDonationDate, &badge, &ledger.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("lock ledger: %w", err)
	}
	ledger.Badge = Badge(badge)

	apply(ledger)

	if err := s.SaveLedger(txcontext.WithTx(ctx, tx), ledger); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return ledger, nil
}

func (s *PostgresStore) GetLedger(ctx context.Context, donorID id.DonorID) (*Ledger, error) {
	ledger := &Ledger{DonorID: donorID}
	var badge string
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT total_donations, last_donation_date, badge, updated_at
		FROM donor_ledgers
		WHERE donor_id = $1
	`, uuid.UUID(donorID)).Scan(&ledger.TotalDonations, &ledger.LastDonationDate, &badge, &ledger.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	ledger.Badge = Badge(badge)
	return ledger, nil
}

func (s *PostgresStore) ListDonations(ctx context.Context, donorID id.DonorID) ([]*Donation, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT id, donated_on, location, recorded_at
		FROM donations
		WHERE donor_id = $1
		ORDER BY donated_on DESC
	`, uuid.UUID(donorID))
	if err != nil {
		return nil, fmt.Errorf("query donations: %w", err)
	}
	defer rows.Close()

	var out []*Donation
	for rows.Next() {
		d := &Donation{DonorID: donorID}
		if err := rows.Scan(&d.ID, &d.Date, &d.Location, &d.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeriveLedger(ctx context.Context, donorID id.DonorID) (*Ledger, error) {
	derived := &Ledger{DonorID: donorID, UpdatedAt: time.Now().UTC()}
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*), MAX(donated_on)
		FROM donations
		WHERE donor_id = $1
	`, uuid.UUID(donorID)).Scan(&derived.TotalDonations, &derived.LastDonationDate)
	if err != nil {
		return nil, fmt.Errorf("derive ledger: %w", err)
	}
	derived.Badge = ComputeBadge(derived.TotalDonations)
	return derived, nil
}

func (s *PostgresStore) SaveLedger(ctx context.Context, l *Ledger) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO donor_ledgers (donor_id, total_donations, last_donation_date, badge, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (donor_id) DO UPDATE
		SET total_donations = EXCLUDED.total_donations,
		    last_donation_date = EXCLUDED.last_donation_date,
		    badge = EXCLUDED.badge,
		    updated_at = EXCLUDED.updated_at
	`, uuid.UUID(l.DonorID), l.TotalDonations, l.LastDonationDate, string(l.Badge), l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}
