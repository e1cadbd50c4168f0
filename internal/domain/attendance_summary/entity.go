package attendance_summary

import (
	"encoding/json"
	"strings"
)

// Status is the attendance status of a single calendar day.
type Status string

const (
	StatusPresent   Status = "Present"
	StatusAbsent    Status = "Absent"
	StatusOnLeave   Status = "OnLeave"
	StatusLeave     Status = "Leave" // legacy alias of OnLeave
	StatusHoliday   Status = "Holiday"
	StatusHalfDay   Status = "HalfDay"
	StatusNotMarked Status = "NotMarked"
)

// ParseStatus maps a stored attendance status onto a Status.
// Unknown values are returned verbatim and classified as "other".
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "present", "on_time", "late", "approved", "auto_closed":
		return StatusPresent
	case "absent":
		return StatusAbsent
	case "onleave", "on_leave":
		return StatusOnLeave
	case "leave":
		return StatusLeave
	case "holiday":
		return StatusHoliday
	case "halfday", "half_day":
		return StatusHalfDay
	case "", "notmarked", "not_marked", "waiting_approval":
		return StatusNotMarked
	}
	return Status(raw)
}

// UnmarshalJSON accepts the stored spellings understood by ParseStatus.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// DailyAttendanceRecord is one calendar day of an employee's attendance.
// Date is YYYY-MM-DD so that dates compare lexicographically.
type DailyAttendanceRecord struct {
	Date                string  `json:"date"`
	Status              Status  `json:"status"`
	CheckIn             *string `json:"check_in,omitempty"`
	CheckOut            *string `json:"check_out,omitempty"`
	HolidayInfo         string  `json:"holiday_info,omitempty"`
	HolidayIsWorkingDay bool    `json:"holiday_is_working_day"`
}

// ClassificationContext carries the dates the classifier compares against.
type ClassificationContext struct {
	JoiningDate   *string
	ReferenceDate string
}

type AttendanceBreakdown struct {
	Present              float64 `json:"present"`
	Absent               float64 `json:"absent"`
	Missing              float64 `json:"missing"`
	HalfDay              float64 `json:"half_day"`
	OnLeave              int     `json:"on_leave"`
	Holiday              int     `json:"holiday"`
	CalendarTotal        int     `json:"calendar_total"`
	TotalWorkingDays     int     `json:"total_working_days"`
	AttendancePercentage int     `json:"attendance_percentage"`
}

// CategoryID identifies one of the chart categories of a breakdown.
type CategoryID string

const (
	CategoryPresent CategoryID = "present"
	CategoryAbsent  CategoryID = "absent"
	CategoryMissing CategoryID = "missing"
	CategoryHalfDay CategoryID = "halfDay"
)

// Value returns the breakdown count charted for the category.
func (b AttendanceBreakdown) Value(id CategoryID) float64 {
	switch id {
	case CategoryPresent:
		return b.Present
	case CategoryAbsent:
		return b.Absent
	case CategoryMissing:
		return b.Missing
	case CategoryHalfDay:
		return b.HalfDay
	}
	return 0
}

// Category is one row of the ordered chart configuration table.
type Category struct {
	ID    CategoryID `json:"id"`
	Label string     `json:"label"`
	Color string     `json:"color"`
}

const (
	ColorGreen = "#22c55e"
	ColorRed   = "#ef4444"
	ColorAmber = "#f59e0b"
)

// DefaultCategories returns the chart categories in slice order.
// The order decides both slice order and label sides.
func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryPresent, Label: "Present", Color: ColorGreen},
		{ID: CategoryAbsent, Label: "Absent", Color: ColorRed},
		{ID: CategoryMissing, Label: "Missing", Color: ColorAmber},
		{ID: CategoryHalfDay, Label: "Half Day", Color: ColorAmber},
	}
}

// Segment is one arc of the donut chart. Angles are radians, 0 at 3 o'clock, clockwise
// in screen coordinates.
type Segment struct {
	ID         CategoryID `json:"id"`
	Label      string     `json:"label"`
	Value      float64    `json:"value"`
	Color      string     `json:"color"`
	StartAngle float64    `json:"start_angle"`
	SweepAngle float64    `json:"sweep_angle"`
}

type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// ChartGeometry describes the donut and the vertical band labels may occupy.
type ChartGeometry struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	Radius      float64 `json:"radius" validate:"gt=0"`
	LabelOffset float64 `json:"label_offset" validate:"gte=0"`
	MinDist     float64 `json:"min_dist" validate:"gte=0"`
	TopBound    float64 `json:"top_bound"`
	BottomBound float64 `json:"bottom_bound" validate:"gtefield=TopBound"`
}

// LabelPlacement is the collision-resolved anchor of one segment label.
type LabelPlacement struct {
	SegmentID  CategoryID `json:"segment_id"`
	Side       Side       `json:"side"`
	MidAngle   float64    `json:"mid_angle"`
	PreferredY float64    `json:"preferred_y"`
	AnchorY    float64    `json:"anchor_y"`
	Color      string     `json:"color"`
	Text       string     `json:"text"`
	Value      float64    `json:"value"`
}

// SummaryResult bundles everything the engine produces for one input.
type SummaryResult struct {
	Breakdown AttendanceBreakdown `json:"breakdown"`
	Segments  []Segment           `json:"segments"`
	Labels    []LabelPlacement    `json:"labels"`
}
