package attendance_summary

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/validator"
)

const (
	// MaxTeamSize caps the employees summarized by one team request.
	MaxTeamSize = 50
	// MaxComputeRecords caps the records of one compute request, a leap year of days.
	MaxComputeRecords = 366
)

// ========================================
// COMPUTE DTOs
// ========================================

type ComputeSummaryRequest struct {
	Records       []DailyAttendanceRecord `json:"records"`
	JoiningDate   *string                 `json:"joining_date,omitempty"` // YYYY-MM-DD
	ReferenceDate string                  `json:"reference_date"`         // YYYY-MM-DD
	Geometry      *ChartGeometry          `json:"geometry,omitempty"`     // defaults from config
}

func (r *ComputeSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ReferenceDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "reference_date",
			Message: "reference_date is required",
		})
	} else if _, valid := validator.IsValidDate(r.ReferenceDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "reference_date",
			Message: "reference_date must be in YYYY-MM-DD format",
		})
	}

	if r.JoiningDate != nil && *r.JoiningDate != "" {
		if _, valid := validator.IsValidDate(*r.JoiningDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "joining_date",
				Message: "joining_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(r.Records) > MaxComputeRecords {
		errs = append(errs, validator.ValidationError{
			Field:   "records",
			Message: fmt.Sprintf("records must not exceed %d entries", MaxComputeRecords),
		})
		return errs
	}

	// The engine tolerates malformed dates, the API does not accept them.
	for i, rec := range r.Records {
		if _, valid := validator.IsValidDate(rec.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("records[%d].date", i),
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Geometry != nil {
		if err := validator.Struct(r.Geometry); err != nil {
			if geomErrs, ok := err.(validator.ValidationErrors); ok {
				for _, e := range geomErrs {
					e.Field = "geometry." + e.Field
					errs = append(errs, e)
				}
			} else {
				return err
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// MONTHLY SUMMARY DTOs
// ========================================

type MonthlySummaryRequest struct {
	EmployeeID    string `json:"-"`
	Month         string `json:"month"` // YYYY-MM, default: month of ReferenceDate
	ReferenceDate string `json:"today"` // YYYY-MM-DD, default: today
}

func (r *MonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, valid := validator.IsValidMonth(r.Month); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if r.ReferenceDate != "" {
		if _, valid := validator.IsValidDate(r.ReferenceDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "today",
				Message: "today must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthlySummaryResponse struct {
	EmployeeID    string              `json:"employee_id"`
	Month         string              `json:"month"`          // YYYY-MM
	ReferenceDate string              `json:"reference_date"` // YYYY-MM-DD
	JoiningDate   *string             `json:"joining_date,omitempty"`
	Breakdown     AttendanceBreakdown `json:"breakdown"`
	Segments      []Segment           `json:"segments"`
	Labels        []LabelPlacement    `json:"labels"`
}

// ========================================
// TEAM SUMMARY DTOs
// ========================================

type TeamSummaryRequest struct {
	EmployeeIDs   []string `json:"employee_ids"`
	Month         string   `json:"month"`
	ReferenceDate string   `json:"today"`
}

func (r *TeamSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "employee_ids is required",
		})
	} else if len(r.EmployeeIDs) > MaxTeamSize {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: fmt.Sprintf("employee_ids must not exceed %d entries", MaxTeamSize),
		})
	}

	for i, id := range r.EmployeeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("employee_ids[%d]", i),
				Message: "employee id must be a valid UUID",
			})
		}
	}

	monthly := MonthlySummaryRequest{Month: r.Month, ReferenceDate: r.ReferenceDate}
	if err := monthly.Validate(); err != nil {
		if monthErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, monthErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TeamSummaryResponse struct {
	Month         string                   `json:"month"`
	ReferenceDate string                   `json:"reference_date"`
	Summaries     []MonthlySummaryResponse `json:"summaries"`
}
