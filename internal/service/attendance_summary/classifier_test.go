package attendance_summary

import (
	"testing"
	"time"

	summary "github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance_summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// monthRecords builds one record per day of the month; build may adjust each record.
func monthRecords(year int, month time.Month, build func(day time.Time, rec *summary.DailyAttendanceRecord)) []summary.DailyAttendanceRecord {
	var records []summary.DailyAttendanceRecord
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		rec := summary.DailyAttendanceRecord{
			Date:   d.Format("2006-01-02"),
			Status: summary.StatusNotMarked,
		}
		build(d, &rec)
		records = append(records, rec)
	}
	return records
}

func present(rec *summary.DailyAttendanceRecord) {
	rec.Status = summary.StatusPresent
	rec.CheckIn = strPtr("08:00:00")
	rec.CheckOut = strPtr("17:00:00")
}

func TestClassify_FullMonth(t *testing.T) {
	// September 2025: 30 days, Sundays on the 7th, 14th, 21st and 28th
	records := monthRecords(2025, time.September, func(day time.Time, rec *summary.DailyAttendanceRecord) {
		switch day.Day() {
		case 7, 14, 21, 28:
			// Sundays are left unmarked
		case 3, 17:
			rec.Status = summary.StatusAbsent
		case 24:
			rec.Status = summary.StatusPresent
			rec.CheckIn = strPtr("08:00:00")
		default:
			present(rec)
		}
	})
	require.Len(t, records, 30)

	got := Classify(records, summary.ClassificationContext{ReferenceDate: "2025-09-30"})

	assert.Equal(t, summary.AttendanceBreakdown{
		Present:              23,
		Absent:               2,
		Missing:              1,
		HalfDay:              0,
		OnLeave:              0,
		Holiday:              4,
		CalendarTotal:        30,
		TotalWorkingDays:     26,
		AttendancePercentage: 88, // round(23 / 26 * 100)
	}, got)
}

func TestClassify_Rules(t *testing.T) {
	const today = "2025-03-12" // Wednesday

	cases := []struct {
		name    string
		record  summary.DailyAttendanceRecord
		joining *string
		want    summary.AttendanceBreakdown
	}{
		{
			name:    "before joining date is excluded",
			record:  summary.DailyAttendanceRecord{Date: "2025-03-03", Status: summary.StatusPresent},
			joining: strPtr("2025-03-05"),
			want:    summary.AttendanceBreakdown{CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:   "future record is excluded",
			record: summary.DailyAttendanceRecord{Date: "2025-03-13", Status: summary.StatusPresent},
			want:   summary.AttendanceBreakdown{CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:   "holiday status",
			record: summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.StatusHoliday},
			want:   summary.AttendanceBreakdown{Holiday: 1, CalendarTotal: 1},
		},
		{
			name:   "sunday without holiday info is a holiday",
			record: summary.DailyAttendanceRecord{Date: "2025-03-09", Status: summary.StatusPresent, CheckIn: strPtr("08:00"), CheckOut: strPtr("12:00")},
			want:   summary.AttendanceBreakdown{Holiday: 1, CalendarTotal: 1},
		},
		{
			name:   "sunday with holiday info follows its status",
			record: summary.DailyAttendanceRecord{Date: "2025-03-09", Status: summary.StatusPresent, HolidayInfo: "Stock take", HolidayIsWorkingDay: true},
			want:   summary.AttendanceBreakdown{Present: 1, CalendarTotal: 1, TotalWorkingDays: 1, AttendancePercentage: 100},
		},
		{
			name:   "check-out without check-in is missing",
			record: summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.StatusPresent, CheckOut: strPtr("17:00")},
			want:   summary.AttendanceBreakdown{Missing: 1, CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:   "check-in only today is missing",
			record: summary.DailyAttendanceRecord{Date: today, Status: summary.StatusNotMarked, CheckIn: strPtr("08:00")},
			want:   summary.AttendanceBreakdown{Missing: 1, CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:   "empty punch string counts as unset",
			record: summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.StatusAbsent, CheckIn: strPtr("")},
			want:   summary.AttendanceBreakdown{Absent: 1, CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:   "absent",
			record: summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.StatusAbsent},
			want:   summary.AttendanceBreakdown{Absent: 1, CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:   "on leave counts as present",
			record: summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.StatusOnLeave},
			want:   summary.AttendanceBreakdown{Present: 1, OnLeave: 1, CalendarTotal: 1, TotalWorkingDays: 1, AttendancePercentage: 100},
		},
		{
			name:   "legacy leave alias",
			record: summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.StatusLeave},
			want:   summary.AttendanceBreakdown{Present: 1, OnLeave: 1, CalendarTotal: 1, TotalWorkingDays: 1, AttendancePercentage: 100},
		},
		{
			name:   "half day splits present and missing",
			record: summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.StatusHalfDay, CheckIn: strPtr("08:00"), CheckOut: strPtr("12:00")},
			want:   summary.AttendanceBreakdown{Present: 0.5, Missing: 0.5, HalfDay: 1, CalendarTotal: 1, TotalWorkingDays: 1, AttendancePercentage: 50},
		},
		{
			name:    "not marked after joining is excluded",
			record:  summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.StatusNotMarked},
			joining: strPtr("2025-03-01"),
			want:    summary.AttendanceBreakdown{CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:    "not marked on the joining date is excluded",
			record:  summary.DailyAttendanceRecord{Date: "2025-03-01", Status: summary.StatusNotMarked},
			joining: strPtr("2025-03-01"),
			want:    summary.AttendanceBreakdown{Holiday: 0, CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:   "not marked without joining date is absent",
			record: summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.StatusNotMarked},
			want:   summary.AttendanceBreakdown{Absent: 1, CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:    "empty joining date behaves as unset",
			record:  summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.StatusNotMarked},
			joining: strPtr(""),
			want:    summary.AttendanceBreakdown{Absent: 1, CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:   "today with both punches and no status is present",
			record: summary.DailyAttendanceRecord{Date: today, Status: summary.StatusNotMarked, CheckIn: strPtr("08:00"), CheckOut: strPtr("17:00")},
			want:   summary.AttendanceBreakdown{Present: 1, CalendarTotal: 1, TotalWorkingDays: 1, AttendancePercentage: 100},
		},
		{
			name:   "today without check-in is unresolved",
			record: summary.DailyAttendanceRecord{Date: today, Status: summary.StatusNotMarked},
			want:   summary.AttendanceBreakdown{CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:   "unknown status in the past is excluded",
			record: summary.DailyAttendanceRecord{Date: "2025-03-10", Status: summary.Status("waiting")},
			want:   summary.AttendanceBreakdown{CalendarTotal: 1, TotalWorkingDays: 1},
		},
		{
			name:   "malformed date degrades without panicking",
			record: summary.DailyAttendanceRecord{Date: "10/03/2025", Status: summary.StatusPresent},
			want:   summary.AttendanceBreakdown{Present: 1, CalendarTotal: 1, TotalWorkingDays: 1, AttendancePercentage: 100},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify([]summary.DailyAttendanceRecord{tc.record}, summary.ClassificationContext{
				JoiningDate:   tc.joining,
				ReferenceDate: today,
			})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassify_HalfDayInPresentMonth(t *testing.T) {
	// March 2025 up to Friday the 14th; Sundays on the 2nd and 9th
	records := monthRecords(2025, time.March, func(day time.Time, rec *summary.DailyAttendanceRecord) {
		if day.Weekday() == time.Sunday {
			return
		}
		present(rec)
		if day.Day() == 5 {
			rec.Status = summary.StatusHalfDay
		}
	})

	base := Classify(records, summary.ClassificationContext{ReferenceDate: "2025-03-14"})

	assert.Equal(t, 11.5, base.Present)
	assert.Equal(t, 0.5, base.Missing)
	assert.Equal(t, 1.0, base.HalfDay)
	assert.Equal(t, 2, base.Holiday)
	assert.Equal(t, 31, base.CalendarTotal)
	assert.Equal(t, 29, base.TotalWorkingDays)
	assert.Equal(t, 40, base.AttendancePercentage) // round(11.5 / 29 * 100)
}

func TestClassify_EmptyInput(t *testing.T) {
	got := Classify(nil, summary.ClassificationContext{ReferenceDate: "2025-03-12"})
	assert.Equal(t, summary.AttendanceBreakdown{}, got)
}

func TestClassify_AllHolidays(t *testing.T) {
	records := []summary.DailyAttendanceRecord{
		{Date: "2025-03-10", Status: summary.StatusHoliday},
		{Date: "2025-03-11", Status: summary.StatusHoliday},
	}
	got := Classify(records, summary.ClassificationContext{ReferenceDate: "2025-03-12"})

	assert.Equal(t, 0, got.TotalWorkingDays)
	assert.Equal(t, 0, got.AttendancePercentage)
}

func TestClassify_Determinism(t *testing.T) {
	records := monthRecords(2025, time.April, func(day time.Time, rec *summary.DailyAttendanceRecord) {
		switch day.Day() % 5 {
		case 0:
			rec.Status = summary.StatusHalfDay
		case 1:
			rec.Status = summary.StatusOnLeave
		case 2:
			rec.CheckIn = strPtr("09:00")
		case 3:
			present(rec)
		}
	})
	cc := summary.ClassificationContext{JoiningDate: strPtr("2025-04-03"), ReferenceDate: "2025-04-20"}

	assert.Equal(t, Classify(records, cc), Classify(records, cc))
}

func TestClassify_Conservation(t *testing.T) {
	// Reference date mid-month, joined on the 4th: every record lands in exactly one place
	records := monthRecords(2025, time.April, func(day time.Time, rec *summary.DailyAttendanceRecord) {
		switch day.Day() % 4 {
		case 0:
			rec.Status = summary.StatusHalfDay
		case 1:
			rec.Status = summary.StatusAbsent
		case 2:
			present(rec)
		}
	})
	cc := summary.ClassificationContext{JoiningDate: strPtr("2025-04-04"), ReferenceDate: "2025-04-20"}

	got := Classify(records, cc)

	excluded := 0
	for _, rec := range records {
		if rec.Date < *cc.JoiningDate || rec.Date > cc.ReferenceDate {
			excluded++
			continue
		}
		d, _ := time.Parse("2006-01-02", rec.Date)
		if d.Weekday() == time.Sunday {
			continue
		}
		if rec.Status == summary.StatusNotMarked {
			excluded++
		}
	}

	counted := got.Present + got.Absent + got.Missing + float64(got.Holiday)
	assert.Equal(t, float64(got.CalendarTotal), counted+float64(excluded))
}
