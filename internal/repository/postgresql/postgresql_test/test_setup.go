package postgresqltest

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// TestDatabaseSetup holds a connection to the integration test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL. ok is false when it is unset.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

// BeginFixture opens a transaction with temporary tables shadowing the HRIS
// tables read by the summary repository. Rolling back drops everything.
func (t *TestDatabaseSetup) BeginFixture(ctx context.Context) (pgx.Tx, error) {
	tx, err := t.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}

	tables := []string{
		`CREATE TEMP TABLE employees (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL,
			hire_date DATE,
			deleted_at TIMESTAMP WITH TIME ZONE
		) ON COMMIT DROP`,
		`CREATE TEMP TABLE attendances (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			employee_id UUID NOT NULL,
			date DATE NOT NULL,
			status VARCHAR(32) NOT NULL,
			clock_in TIMESTAMP WITH TIME ZONE,
			clock_out TIMESTAMP WITH TIME ZONE
		) ON COMMIT DROP`,
		`CREATE TEMP TABLE company_holidays (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			company_id UUID NOT NULL,
			date DATE NOT NULL,
			name VARCHAR(255) NOT NULL,
			is_working_day BOOLEAN NOT NULL DEFAULT false
		) ON COMMIT DROP`,
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, table); err != nil {
			_ = tx.Rollback(ctx)
			return nil, fmt.Errorf("failed to create fixture table: %w", err)
		}
	}

	return tx, nil
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
