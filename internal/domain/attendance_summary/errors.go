package attendance_summary

import "errors"

// Attendance summary domain errors
var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeIDRequired   = errors.New("employee_id not found in claims")
	ErrInvalidMonth         = errors.New("month must be in YYYY-MM format")
	ErrInvalidReferenceDate = errors.New("reference date must be in YYYY-MM-DD format")
	ErrCompanyIDRequired    = errors.New("company_id not found in claims")
)
