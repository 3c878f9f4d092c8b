package scheduler

import (
	"context"
	"time"

	"github.com/slotworks/booking-app/models"
)

// RuleSource yields the weekly availability rule for a provider's weekday.
// A missing rule is (nil, nil), not an error: it simply means the day is
// closed.
type RuleSource interface {
	GetRule(ctx context.Context, providerID uint, day models.DayOfWeek) (*models.AvailabilityRule, error)
}

// ExceptionSource yields closure windows overlapping a time range.
type ExceptionSource interface {
	Overlapping(ctx context.Context, providerID uint, start, end time.Time) ([]models.ExceptionWindow, error)
}

// ExceptionChecker answers whether any closure window overlaps a time range.
// Satisfied by *store.ExceptionStore.
type ExceptionChecker interface {
	IsBlocked(ctx context.Context, providerID uint, start, end time.Time) (bool, error)
}

// BookingSource yields committed (pending or confirmed) bookings overlapping
// a time range.
type BookingSource interface {
	ListCommitted(ctx context.Context, providerID uint, start, end time.Time) ([]models.Booking, error)
}

// BookingLedger admits a new booking. Implementations must perform the
// overlap check and the insert as one atomic unit so two concurrent requests
// can never both pass.
type BookingLedger interface {
	Create(ctx context.Context, booking *models.Booking) error
}

// Locker serializes booking admission per provider. Acquire blocks until the
// provider's lease is held or ctx is done; the returned func releases it.
type Locker interface {
	Acquire(ctx context.Context, providerID uint) (func(), error)
}

// Publisher emits domain events to external collaborators (notifications,
// analytics). Emission is best-effort and never fails the operation.
type Publisher interface {
	Publish(ctx context.Context, event string, payload any) error
}
