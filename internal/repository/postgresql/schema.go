package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/database"
)

// EnsureSchema creates the tables owned by this service. Employees and
// attendances belong to the HRIS core and must already exist.
func EnsureSchema(ctx context.Context, db database.Querier) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS company_holidays (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			company_id UUID NOT NULL,
			date DATE NOT NULL,
			name VARCHAR(255) NOT NULL,
			is_working_day BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_company_holidays_company_date ON company_holidays(company_id, date)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(ctx, q); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
