package scheduler

import (
	"context"
	"time"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
	"github.com/slotworks/booking-app/schedule"
)

// DefaultRangeDays is the slot calendar horizon when the caller gives no
// explicit range.
const DefaultRangeDays = 7

// Generator composes weekly rules, exception windows and the booking ledger
// into a slot calendar. It holds no state of its own; ComputeSlots is a pure
// function of its inputs and current store contents.
type Generator struct {
	rules      RuleSource
	exceptions ExceptionSource
	bookings   BookingSource
}

func NewGenerator(rules RuleSource, exceptions ExceptionSource, bookings BookingSource) *Generator {
	return &Generator{rules: rules, exceptions: exceptions, bookings: bookings}
}

// ComputeSlots returns every slot between from and to (inclusive of both
// calendar days) at the given granularity. Slots covered by a break, a
// committed booking or an exception window are emitted with Available=false
// rather than dropped, so callers can render "booked" explicitly.
func (g *Generator) ComputeSlots(ctx context.Context, providerID uint, from, to time.Time, granularity time.Duration) ([]models.Slot, error) {
	if granularity <= 0 {
		return nil, errs.Validation("granularity must be positive")
	}
	if to.Before(from) {
		return nil, errs.Validation("range end %s is before range start %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}

	// One range query each for the whole window; per-slot checks then run
	// against in-memory intervals.
	rangeEnd := endOfDay(to)
	exceptions, err := g.exceptions.Overlapping(ctx, providerID, startOfDay(from), rangeEnd)
	if err != nil {
		return nil, err
	}
	bookings, err := g.bookings.ListCommitted(ctx, providerID, startOfDay(from), rangeEnd)
	if err != nil {
		return nil, err
	}

	blocked := make([]schedule.Interval, 0, len(exceptions))
	for _, e := range exceptions {
		blocked = append(blocked, schedule.Interval{Start: e.StartAt, End: e.EndAt})
	}
	busy := make([]schedule.Interval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, schedule.Interval{Start: b.StartAt, End: b.EndAt})
	}

	var slots []models.Slot
	for day := startOfDay(from); !day.After(to); day = day.AddDate(0, 0, 1) {
		rule, err := g.rules.GetRule(ctx, providerID, models.DayOfWeek(day.Weekday()))
		if err != nil {
			return nil, err
		}
		if rule == nil || !rule.IsOpen {
			continue
		}

		dayOpen, err := schedule.At(day, rule.OpenTime)
		if err != nil {
			return nil, errs.Upstream("availability rule has a malformed open time", err)
		}
		dayClose, err := schedule.At(day, rule.CloseTime)
		if err != nil {
			return nil, errs.Upstream("availability rule has a malformed close time", err)
		}

		breaks, err := breakIntervals(day, rule.Breaks)
		if err != nil {
			return nil, err
		}

		for _, iv := range schedule.Partition(dayOpen, dayClose, granularity) {
			available := !schedule.OverlapsAny(iv.Start, iv.End, breaks) &&
				!schedule.OverlapsAny(iv.Start, iv.End, busy) &&
				!schedule.OverlapsAny(iv.Start, iv.End, blocked)
			slots = append(slots, models.Slot{StartAt: iv.Start, EndAt: iv.End, Available: available})
		}
	}
	return slots, nil
}

// DefaultRange returns the [now, now+7d] window used when a slot query names
// no explicit bounds.
func DefaultRange(now time.Time) (time.Time, time.Time) {
	return now, now.AddDate(0, 0, DefaultRangeDays)
}

func breakIntervals(day time.Time, breaks []models.BreakWindow) ([]schedule.Interval, error) {
	out := make([]schedule.Interval, 0, len(breaks))
	for _, br := range breaks {
		start, err := schedule.At(day, br.StartTime)
		if err != nil {
			return nil, errs.Upstream("break window has a malformed start time", err)
		}
		end, err := schedule.At(day, br.EndTime)
		if err != nil {
			return nil, errs.Upstream("break window has a malformed end time", err)
		}
		out = append(out, schedule.Interval{Start: start, End: end})
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1)
}
