//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer wraps a testcontainers Postgres instance with an open
// database handle and the schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *sql.DB
	URL       string
}

// NewPostgresContainer starts a Postgres container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("lifeline_test"),
		tcpostgres.WithUsername("lifeline"),
		tcpostgres.WithPassword("lifeline"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}

	pc := &PostgresContainer{Container: container, DB: db, URL: url}
	if err := pc.applySchema(ctx); err != nil {
		pc.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(pc.Close)
	return pc
}

// TruncateTables clears the given tables between tests.
func (c *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", "))
	_, err := c.DB.ExecContext(ctx, query)
	return err
}

// Close releases the database handle and terminates the container.
func (c *PostgresContainer) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
	if c.Container != nil {
		_ = c.Container.Terminate(context.Background())
	}
}

func (c *PostgresContainer) applySchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS donors (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	phone TEXT NOT NULL,
	age INT NOT NULL,
	gender TEXT NOT NULL,
	blood_group TEXT NOT NULL,
	state TEXT NOT NULL,
	district TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	available BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS donations (
	id UUID PRIMARY KEY,
	donor_id UUID NOT NULL,
	donated_on DATE NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	recorded_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS donations_donor_idx ON donations (donor_id, donated_on DESC);

CREATE TABLE IF NOT EXISTS donor_ledgers (
	donor_id UUID PRIMARY KEY,
	total_donations INT NOT NULL DEFAULT 0,
	last_donation_date DATE,
	badge TEXT NOT NULL DEFAULT 'New Donor',
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS screenings (
	id UUID PRIMARY KEY,
	donor_id UUID,
	age INT NOT NULL,
	weight_kg DOUBLE PRECISION NOT NULL,
	hemoglobin DOUBLE PRECISION NOT NULL,
	flags JSONB NOT NULL,
	eligible BOOLEAN NOT NULL,
	reason TEXT NOT NULL,
	checked_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS screenings_donor_idx ON screenings (donor_id, checked_at DESC);

CREATE TABLE IF NOT EXISTS blood_requests (
	id UUID PRIMARY KEY,
	patient_name TEXT NOT NULL,
	hospital_name TEXT NOT NULL,
	blood_group TEXT NOT NULL,
	state TEXT NOT NULL,
	district TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	contact TEXT NOT NULL,
	age INT NOT NULL,
	gender TEXT NOT NULL,
	urgent BOOLEAN NOT NULL DEFAULT FALSE,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS blood_requests_created_idx ON blood_requests (created_at);

CREATE TABLE IF NOT EXISTS blood_stocks (
	id UUID PRIMARY KEY,
	hospital_id UUID NOT NULL,
	blood_group TEXT NOT NULL,
	units INT NOT NULL DEFAULT 0,
	expires_on DATE NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	UNIQUE (hospital_id, blood_group)
);
`
	_, err := c.DB.ExecContext(ctx, schema)
	return err
}
