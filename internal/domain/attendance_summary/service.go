package attendance_summary

import "context"

// AttendanceSummaryService defines attendance summary operations
type AttendanceSummaryService interface {
	// Compute runs the engine over caller supplied records
	Compute(ctx context.Context, req ComputeSummaryRequest) (SummaryResult, error)

	// GetMySummary summarizes a month for the authenticated employee
	GetMySummary(ctx context.Context, req MonthlySummaryRequest) (MonthlySummaryResponse, error)

	// GetEmployeeSummary summarizes a month for any employee (manager/owner)
	GetEmployeeSummary(ctx context.Context, req MonthlySummaryRequest) (MonthlySummaryResponse, error)

	// GetTeamSummary summarizes a month for several employees, preserving request order
	GetTeamSummary(ctx context.Context, req TeamSummaryRequest) (TeamSummaryResponse, error)
}
