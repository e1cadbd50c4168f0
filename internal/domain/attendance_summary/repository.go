package attendance_summary

import (
	"context"
	"time"
)

// AttendanceSummaryRepository supplies the records the summary engine classifies.
type AttendanceSummaryRepository interface {
	// ListDailyRecords returns one record per calendar day of [start, end), ordered by date.
	// Days without an attendance row come back as NotMarked (or Holiday on company holidays).
	// An employee outside companyID yields no records.
	ListDailyRecords(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]DailyAttendanceRecord, error)

	// GetJoiningDate returns the employee's hire date, nil when unknown.
	// Returns ErrEmployeeNotFound when the employee does not belong to companyID.
	GetJoiningDate(ctx context.Context, companyID, employeeID string) (*time.Time, error)
}
