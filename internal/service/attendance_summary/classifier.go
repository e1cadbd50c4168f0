package attendance_summary

import (
	"math"
	"time"

	summary "github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance_summary"
)

// Classify counts a month of daily records into breakdown buckets.
// Rules are evaluated per record in order and the first match wins.
func Classify(records []summary.DailyAttendanceRecord, cc summary.ClassificationContext) summary.AttendanceBreakdown {
	var b summary.AttendanceBreakdown

	today := cc.ReferenceDate
	hasJoining := cc.JoiningDate != nil && *cc.JoiningDate != ""

	for _, rec := range records {
		// Before joining or in the future: counted in calendarTotal only
		if hasJoining && rec.Date < *cc.JoiningDate {
			continue
		}
		if rec.Date > today {
			continue
		}

		if rec.Status == summary.StatusHoliday || (isSunday(rec.Date) && rec.HolidayInfo == "") {
			b.Holiday++
			continue
		}

		hasIn := hasValue(rec.CheckIn)
		hasOut := hasValue(rec.CheckOut)
		if hasIn != hasOut && rec.Date <= today {
			b.Missing++
			continue
		}

		isPast := rec.Date < today

		switch {
		case rec.Status == summary.StatusPresent:
			b.Present++
		case rec.Status == summary.StatusAbsent:
			b.Absent++
		case rec.Status == summary.StatusOnLeave || rec.Status == summary.StatusLeave:
			b.Present++
			b.OnLeave++
		case rec.Status == summary.StatusHalfDay:
			b.Present += 0.5
			b.Missing += 0.5
			b.HalfDay++
		case rec.Status == summary.StatusNotMarked && isPast && hasJoining:
			// not treated as an absence once the joining date is known
		case rec.Status == summary.StatusNotMarked && isPast:
			b.Absent++
		case rec.Date == today && hasIn:
			b.Present++
		}
	}

	b.CalendarTotal = len(records)
	b.TotalWorkingDays = max(0, b.CalendarTotal-b.Holiday)
	if b.TotalWorkingDays > 0 {
		b.AttendancePercentage = int(math.Round(b.Present / float64(b.TotalWorkingDays) * 100))
	}

	b.Present = roundTenth(b.Present)
	b.Absent = roundTenth(b.Absent)
	b.Missing = roundTenth(b.Missing)
	b.HalfDay = roundTenth(b.HalfDay)

	return b
}

// isSunday reports false for dates that do not parse.
func isSunday(date string) bool {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return t.Weekday() == time.Sunday
}

func hasValue(s *string) bool {
	return s != nil && *s != ""
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
