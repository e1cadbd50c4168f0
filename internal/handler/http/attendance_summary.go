package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	summary "github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance_summary"
	"github.com/cmlabs-hris/attendance-summary-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceSummaryHandler interface {
	// GetMySummary returns the caller's monthly summary
	GetMySummary(w http.ResponseWriter, r *http.Request)
	// GetEmployeeSummary returns another employee's monthly summary
	GetEmployeeSummary(w http.ResponseWriter, r *http.Request)
	// GetTeamSummary returns monthly summaries for a list of employees
	GetTeamSummary(w http.ResponseWriter, r *http.Request)
	// Compute runs the summary over records supplied in the body
	Compute(w http.ResponseWriter, r *http.Request)
}

type attendanceSummaryHandlerImpl struct {
	summaryService summary.AttendanceSummaryService
}

func NewAttendanceSummaryHandler(summaryService summary.AttendanceSummaryService) AttendanceSummaryHandler {
	return &attendanceSummaryHandlerImpl{summaryService: summaryService}
}

func monthlyRequestFromQuery(r *http.Request) summary.MonthlySummaryRequest {
	return summary.MonthlySummaryRequest{
		Month:         r.URL.Query().Get("month"), // format: YYYY-MM, default: month of today
		ReferenceDate: r.URL.Query().Get("today"), // format: YYYY-MM-DD, default: today
	}
}

// GetMySummary handles GET /attendance-summary/my
func (h *attendanceSummaryHandlerImpl) GetMySummary(w http.ResponseWriter, r *http.Request) {
	req := monthlyRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.summaryService.GetMySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeSummary handles GET /attendance-summary/employees/{employeeID}
func (h *attendanceSummaryHandlerImpl) GetEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		}})
		return
	}

	req := monthlyRequestFromQuery(r)
	req.EmployeeID = employeeID
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.summaryService.GetEmployeeSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTeamSummary handles POST /attendance-summary/team
func (h *attendanceSummaryHandlerImpl) GetTeamSummary(w http.ResponseWriter, r *http.Request) {
	var req summary.TeamSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GetTeamSummary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.summaryService.GetTeamSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Compute handles POST /attendance-summary/compute
func (h *attendanceSummaryHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req summary.ComputeSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Compute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.summaryService.Compute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
