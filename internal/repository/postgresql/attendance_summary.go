package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	summary "github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance_summary"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceSummaryRepositoryImpl struct {
	db database.Querier
}

// NewAttendanceSummaryRepository accepts the pool or a transaction.
func NewAttendanceSummaryRepository(db database.Querier) summary.AttendanceSummaryRepository {
	return &attendanceSummaryRepositoryImpl{db: db}
}

// ListDailyRecords implements attendance_summary.AttendanceSummaryRepository.
// Every day of the range yields a row: days without attendance fall back to the
// company holiday calendar, then to not_marked.
func (r *attendanceSummaryRepositoryImpl) ListDailyRecords(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]summary.DailyAttendanceRecord, error) {
	query := `
		SELECT
			d::date AS day,
			COALESCE(
				a.status::text,
				CASE WHEN h.id IS NOT NULL AND NOT h.is_working_day THEN 'holiday' ELSE 'not_marked' END
			) AS status,
			a.clock_in,
			a.clock_out,
			COALESCE(h.name, '') AS holiday_info,
			COALESCE(h.is_working_day, false) AS holiday_is_working_day
		FROM generate_series($2::date, $3::date - INTERVAL '1 day', INTERVAL '1 day') AS d
		JOIN employees e ON e.id = $1 AND e.company_id = $4 AND e.deleted_at IS NULL
		LEFT JOIN attendances a ON a.employee_id = e.id AND a.date = d::date
		LEFT JOIN company_holidays h ON h.company_id = e.company_id AND h.date = d::date
		ORDER BY d ASC
	`

	rows, err := r.db.Query(ctx, query, employeeID, start, end, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]summary.DailyAttendanceRecord, 0, 31)
	for rows.Next() {
		var (
			day      time.Time
			status   string
			clockIn  *time.Time
			clockOut *time.Time
			rec      summary.DailyAttendanceRecord
		)
		if err := rows.Scan(&day, &status, &clockIn, &clockOut, &rec.HolidayInfo, &rec.HolidayIsWorkingDay); err != nil {
			return nil, fmt.Errorf("failed to scan daily attendance record: %w", err)
		}

		rec.Date = day.Format("2006-01-02")
		rec.Status = summary.ParseStatus(status)
		rec.CheckIn = formatClock(clockIn)
		rec.CheckOut = formatClock(clockOut)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetJoiningDate implements attendance_summary.AttendanceSummaryRepository.
func (r *attendanceSummaryRepositoryImpl) GetJoiningDate(ctx context.Context, companyID, employeeID string) (*time.Time, error) {
	query := `
		SELECT hire_date
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var hireDate *time.Time
	err := r.db.QueryRow(ctx, query, employeeID, companyID).Scan(&hireDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, summary.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get joining date: %w", err)
	}

	return hireDate, nil
}

// formatClock renders a punch timestamp as a UTC time of day.
func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("15:04:05")
	return &s
}
