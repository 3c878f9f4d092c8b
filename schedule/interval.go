package schedule

import "time"

// Interval is a half-open time range [Start, End). Two intervals that share an
// endpoint do not overlap, so back-to-back bookings never conflict.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Every conflict check in the system goes through this predicate.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsAny reports whether [start, end) intersects any busy interval.
func OverlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// Partition splits [open, close) into contiguous slots of exactly size.
// A trailing remainder shorter than a full slot is dropped, never rounded
// or merged.
func Partition(open, close time.Time, size time.Duration) []Interval {
	if size <= 0 || !close.After(open) {
		return nil
	}
	var slots []Interval
	for t := open; !t.Add(size).After(close); t = t.Add(size) {
		slots = append(slots, Interval{Start: t, End: t.Add(size)})
	}
	return slots
}
