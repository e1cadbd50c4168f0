package attendance_summary

import (
	"cmp"
	"math"
	"slices"

	summary "github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance_summary"
)

// PlaceLabels anchors one label per segment on the left or right of the chart and
// spreads each side vertically so that neighbouring labels are at least MinDist apart.
// Placements are returned in segment order.
func PlaceLabels(segments []summary.Segment, g summary.ChartGeometry) []summary.LabelPlacement {
	placements := make([]summary.LabelPlacement, len(segments))
	var left, right []int

	for i, seg := range segments {
		mid := seg.StartAngle + seg.SweepAngle/2
		normalized := math.Atan2(math.Sin(mid), math.Cos(mid))

		side := summary.SideLeft
		if normalized > -math.Pi/2 && normalized <= math.Pi/2 {
			side = summary.SideRight
		}

		preferredY := g.CY + math.Sin(mid)*(g.Radius+g.LabelOffset)
		placements[i] = summary.LabelPlacement{
			SegmentID:  seg.ID,
			Side:       side,
			MidAngle:   mid,
			PreferredY: preferredY,
			AnchorY:    preferredY,
			Color:      seg.Color,
			Text:       seg.Label,
			Value:      seg.Value,
		}

		if side == summary.SideRight {
			right = append(right, i)
		} else {
			left = append(left, i)
		}
	}

	resolveCollisions(placements, left, g)
	resolveCollisions(placements, right, g)

	return placements
}

// resolveCollisions spaces one side group: forward push, re-center, then clamp.
// group holds indexes into placements.
func resolveCollisions(placements []summary.LabelPlacement, group []int, g summary.ChartGeometry) {
	n := len(group)
	if n == 0 {
		return
	}

	slices.SortStableFunc(group, func(a, b int) int {
		return cmp.Compare(placements[a].PreferredY, placements[b].PreferredY)
	})

	// A label is only ever pushed down
	for i := 1; i < n; i++ {
		prev := placements[group[i-1]].AnchorY
		if cur := &placements[group[i]]; cur.AnchorY < prev+g.MinDist {
			cur.AnchorY = prev + g.MinDist
		}
	}

	first, last := placements[group[0]], placements[group[n-1]]
	shift := ((last.PreferredY - first.PreferredY) - (last.AnchorY - first.AnchorY)) / 2
	shiftGroup(placements, group, shift)

	if top := placements[group[0]].AnchorY; top < g.TopBound {
		shiftGroup(placements, group, g.TopBound-top)
	}
	if bottom := placements[group[n-1]].AnchorY; bottom > g.BottomBound {
		shiftGroup(placements, group, -(bottom - g.BottomBound))
	}
}

func shiftGroup(placements []summary.LabelPlacement, group []int, dy float64) {
	if dy == 0 {
		return
	}
	for _, idx := range group {
		placements[idx].AnchorY += dy
	}
}
