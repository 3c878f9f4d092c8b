package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
	"github.com/slotworks/booking-app/schedule"
)

type fakeRules struct {
	byDay map[models.DayOfWeek]*models.AvailabilityRule
}

func (f *fakeRules) GetRule(_ context.Context, _ uint, day models.DayOfWeek) (*models.AvailabilityRule, error) {
	return f.byDay[day], nil
}

type fakeExceptions struct {
	windows []models.ExceptionWindow
}

func (f *fakeExceptions) Overlapping(_ context.Context, providerID uint, start, end time.Time) ([]models.ExceptionWindow, error) {
	var out []models.ExceptionWindow
	for _, w := range f.windows {
		if w.ProviderID == providerID && schedule.Overlaps(start, end, w.StartAt, w.EndAt) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeExceptions) IsBlocked(ctx context.Context, providerID uint, start, end time.Time) (bool, error) {
	windows, err := f.Overlapping(ctx, providerID, start, end)
	if err != nil {
		return false, err
	}
	return len(windows) > 0, nil
}

// fakeLedger mimics the store's atomic check-and-insert: overlap test and
// append run under one mutex.
type fakeLedger struct {
	mu       sync.Mutex
	nextID   uint
	bookings []models.Booking
}

func (f *fakeLedger) Create(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookings {
		if existing.ProviderID == b.ProviderID && existing.IsCommitted() &&
			schedule.Overlaps(b.StartAt, b.EndAt, existing.StartAt, existing.EndAt) {
			return errs.Conflict("the requested time slot is already taken")
		}
	}
	f.nextID++
	b.ID = f.nextID
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeLedger) ListCommitted(_ context.Context, providerID uint, start, end time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID && b.IsCommitted() && schedule.Overlaps(start, end, b.StartAt, b.EndAt) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeLocker struct {
	mu sync.Mutex
}

func (f *fakeLocker) Acquire(_ context.Context, _ uint) (func(), error) {
	f.mu.Lock()
	return f.mu.Unlock, nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) Publish(_ context.Context, event string, _ any) error {
	f.events = append(f.events, event)
	return nil
}

func openRule(day models.DayOfWeek, open, close string, breaks ...models.BreakWindow) *models.AvailabilityRule {
	return &models.AvailabilityRule{
		ProviderID: 1,
		DayOfWeek:  day,
		IsOpen:     true,
		OpenTime:   open,
		CloseTime:  close,
		Breaks:     breaks,
	}
}
