package attendance_summary

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	summary "github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance_summary"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/memo"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

// teamConcurrency bounds the repository fan-out of a team summary.
const teamConcurrency = 8

type AttendanceSummaryServiceImpl struct {
	repo       summary.AttendanceSummaryRepository
	categories []summary.Category
	geometry   summary.ChartGeometry
	clock      Clock
	location   *time.Location
	cache      *memo.Cache[summary.SummaryResult]
}

type Option func(*AttendanceSummaryServiceImpl)

// WithClock overrides the clock used to resolve "today".
func WithClock(c Clock) Option {
	return func(s *AttendanceSummaryServiceImpl) { s.clock = c }
}

// WithLocation sets the time zone "today" is taken in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *AttendanceSummaryServiceImpl) { s.location = loc }
}

// WithCategories replaces the default chart category table.
func WithCategories(categories []summary.Category) Option {
	return func(s *AttendanceSummaryServiceImpl) { s.categories = categories }
}

func NewAttendanceSummaryService(
	repo summary.AttendanceSummaryRepository,
	geometry summary.ChartGeometry,
	cache *memo.Cache[summary.SummaryResult],
	opts ...Option,
) summary.AttendanceSummaryService {
	s := &AttendanceSummaryServiceImpl{
		repo:       repo,
		categories: summary.DefaultCategories(),
		geometry:   geometry,
		clock:      RealClock{},
		location:   time.UTC,
		cache:      cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize runs classifier, segment builder and label placement over one input.
func Summarize(
	records []summary.DailyAttendanceRecord,
	cc summary.ClassificationContext,
	categories []summary.Category,
	geometry summary.ChartGeometry,
) summary.SummaryResult {
	breakdown := Classify(records, cc)
	segments := BuildSegments(breakdown, categories)
	return summary.SummaryResult{
		Breakdown: breakdown,
		Segments:  segments,
		Labels:    PlaceLabels(segments, geometry),
	}
}

// summaryInput is the memo key of one engine call.
type summaryInput struct {
	Records    []summary.DailyAttendanceRecord
	Context    summary.ClassificationContext
	Categories []summary.Category
	Geometry   summary.ChartGeometry
}

// summarize memoizes Summarize. Cache hits hand out copies of the stored slices.
func (s *AttendanceSummaryServiceImpl) summarize(in summaryInput) summary.SummaryResult {
	compute := func() summary.SummaryResult {
		return Summarize(in.Records, in.Context, in.Categories, in.Geometry)
	}

	if s.cache == nil {
		return compute()
	}

	key, err := memo.Key(in)
	if err != nil {
		slog.Warn("Attendance summary memo key failed", "error", err)
		return compute()
	}

	result, hit := s.cache.GetOrCompute(key, compute)
	slog.Debug("Attendance summary computed", "key", key, "records", len(in.Records), "cache_hit", hit)
	if !hit {
		return result
	}

	return summary.SummaryResult{
		Breakdown: result.Breakdown,
		Segments:  slices.Clone(result.Segments),
		Labels:    slices.Clone(result.Labels),
	}
}

// getEmployeeID extracts employee_id from JWT claims
func (s *AttendanceSummaryServiceImpl) getEmployeeID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", summary.ErrEmployeeIDRequired
	}
	return employeeID, nil
}

// getCompanyID extracts company_id from JWT claims
func (s *AttendanceSummaryServiceImpl) getCompanyID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", summary.ErrCompanyIDRequired
	}
	return companyID, nil
}

// resolvePeriod returns the reference date and the [start, end) range of the summarized month.
// The month defaults to the month of the reference date, which defaults to today.
func (s *AttendanceSummaryServiceImpl) resolvePeriod(month, referenceDate string) (string, time.Time, time.Time, error) {
	if referenceDate == "" {
		referenceDate = s.clock.Now().In(s.location).Format("2006-01-02")
	}
	ref, valid := validator.IsValidDate(referenceDate)
	if !valid {
		return "", time.Time{}, time.Time{}, summary.ErrInvalidReferenceDate
	}

	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	if month != "" {
		parsed, valid := validator.IsValidMonth(month)
		if !valid {
			return "", time.Time{}, time.Time{}, summary.ErrInvalidMonth
		}
		start = parsed
	}

	return referenceDate, start, start.AddDate(0, 1, 0), nil
}

// Compute implements attendance_summary.AttendanceSummaryService.
func (s *AttendanceSummaryServiceImpl) Compute(ctx context.Context, req summary.ComputeSummaryRequest) (summary.SummaryResult, error) {
	if err := req.Validate(); err != nil {
		return summary.SummaryResult{}, err
	}

	geometry := s.geometry
	if req.Geometry != nil {
		geometry = *req.Geometry
	}

	records := req.Records
	if records == nil {
		records = []summary.DailyAttendanceRecord{}
	}

	var joining *string
	if req.JoiningDate != nil && *req.JoiningDate != "" {
		joining = req.JoiningDate
	}

	// Caller supplied input rarely repeats, so it bypasses the memo cache.
	return Summarize(
		records,
		summary.ClassificationContext{JoiningDate: joining, ReferenceDate: req.ReferenceDate},
		s.categories,
		geometry,
	), nil
}

// GetMySummary implements attendance_summary.AttendanceSummaryService.
func (s *AttendanceSummaryServiceImpl) GetMySummary(ctx context.Context, req summary.MonthlySummaryRequest) (summary.MonthlySummaryResponse, error) {
	employeeID, err := s.getEmployeeID(ctx)
	if err != nil {
		return summary.MonthlySummaryResponse{}, err
	}
	req.EmployeeID = employeeID
	return s.GetEmployeeSummary(ctx, req)
}

// GetEmployeeSummary implements attendance_summary.AttendanceSummaryService.
func (s *AttendanceSummaryServiceImpl) GetEmployeeSummary(ctx context.Context, req summary.MonthlySummaryRequest) (summary.MonthlySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return summary.MonthlySummaryResponse{}, err
	}
	if validator.IsEmpty(req.EmployeeID) {
		return summary.MonthlySummaryResponse{}, validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}

	companyID, err := s.getCompanyID(ctx)
	if err != nil {
		return summary.MonthlySummaryResponse{}, err
	}

	referenceDate, start, end, err := s.resolvePeriod(req.Month, req.ReferenceDate)
	if err != nil {
		return summary.MonthlySummaryResponse{}, err
	}

	return s.employeeSummary(ctx, companyID, req.EmployeeID, referenceDate, start, end)
}

// GetTeamSummary implements attendance_summary.AttendanceSummaryService.
func (s *AttendanceSummaryServiceImpl) GetTeamSummary(ctx context.Context, req summary.TeamSummaryRequest) (summary.TeamSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return summary.TeamSummaryResponse{}, err
	}

	companyID, err := s.getCompanyID(ctx)
	if err != nil {
		return summary.TeamSummaryResponse{}, err
	}

	referenceDate, start, end, err := s.resolvePeriod(req.Month, req.ReferenceDate)
	if err != nil {
		return summary.TeamSummaryResponse{}, err
	}

	summaries := make([]summary.MonthlySummaryResponse, len(req.EmployeeIDs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(teamConcurrency)

	for i, employeeID := range req.EmployeeIDs {
		g.Go(func() error {
			result, err := s.employeeSummary(gCtx, companyID, employeeID, referenceDate, start, end)
			if err != nil {
				return fmt.Errorf("employee %s: %w", employeeID, err)
			}
			summaries[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary.TeamSummaryResponse{}, err
	}

	return summary.TeamSummaryResponse{
		Month:         start.Format("2006-01"),
		ReferenceDate: referenceDate,
		Summaries:     summaries,
	}, nil
}

// employeeSummary loads records and joining date concurrently and runs the engine.
// Employees outside companyID surface as ErrEmployeeNotFound.
func (s *AttendanceSummaryServiceImpl) employeeSummary(ctx context.Context, companyID, employeeID, referenceDate string, start, end time.Time) (summary.MonthlySummaryResponse, error) {
	var (
		records []summary.DailyAttendanceRecord
		joining *time.Time
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := s.repo.GetJoiningDate(gCtx, companyID, employeeID)
		if err != nil {
			return err
		}
		joining = data
		return nil
	})

	g.Go(func() error {
		data, err := s.repo.ListDailyRecords(gCtx, companyID, employeeID, start, end)
		if err != nil {
			return err
		}
		records = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return summary.MonthlySummaryResponse{}, err
	}

	if records == nil {
		records = []summary.DailyAttendanceRecord{}
	}

	cc := summary.ClassificationContext{ReferenceDate: referenceDate}
	var joiningDate *string
	if joining != nil {
		formatted := joining.Format("2006-01-02")
		joiningDate = &formatted
		cc.JoiningDate = joiningDate
	}

	result := s.summarize(summaryInput{
		Records:    records,
		Context:    cc,
		Categories: s.categories,
		Geometry:   s.geometry,
	})

	return summary.MonthlySummaryResponse{
		EmployeeID:    employeeID,
		Month:         start.Format("2006-01"),
		ReferenceDate: referenceDate,
		JoiningDate:   joiningDate,
		Breakdown:     result.Breakdown,
		Segments:      result.Segments,
		Labels:        result.Labels,
	}, nil
}
