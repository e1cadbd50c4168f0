package attendance_summary

import (
	"math"

	summary "github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance_summary"
)

// BuildSegments turns the charted breakdown counts into donut arcs.
// Arcs start at 12 o'clock and follow the order of categories; zero values are skipped.
func BuildSegments(b summary.AttendanceBreakdown, categories []summary.Category) []summary.Segment {
	segments := make([]summary.Segment, 0, len(categories))

	var total float64
	for _, cat := range categories {
		value := b.Value(cat.ID)
		if value == 0 {
			continue
		}
		total += value
		segments = append(segments, summary.Segment{
			ID:    cat.ID,
			Label: cat.Label,
			Value: value,
			Color: cat.Color,
		})
	}
	if total == 0 {
		total = 1
	}

	start := -math.Pi / 2
	for i := range segments {
		sweep := segments[i].Value / total * 2 * math.Pi
		segments[i].StartAngle = start
		segments[i].SweepAngle = sweep
		start += sweep
	}

	return segments
}
