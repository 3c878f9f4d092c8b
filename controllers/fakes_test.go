package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
	"github.com/slotworks/booking-app/schedule"
	"github.com/slotworks/booking-app/scheduler"
)

type fakeProviders struct {
	providers map[uint]*models.User
}

func (f *fakeProviders) GetProvider(_ context.Context, id uint) (*models.User, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, errs.NotFound("provider not found")
	}
	return p, nil
}

type fakeGenerator struct {
	slots []models.Slot
	err   error
}

func (f *fakeGenerator) ComputeSlots(_ context.Context, _ uint, _, _ time.Time, _ time.Duration) ([]models.Slot, error) {
	return f.slots, f.err
}

type fakeBooker struct {
	lastRequest scheduler.CreateRequest
	result      *models.Booking
	err         error
}

func (f *fakeBooker) Create(_ context.Context, req scheduler.CreateRequest) (*models.Booking, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	status := models.StatusPending
	if req.ManualEntry {
		status = models.StatusConfirmed
	}
	return &models.Booking{
		ProviderID: req.ProviderID,
		ClientID:   req.ClientID,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Status:     status,
		Price:      req.Price,
	}, nil
}

type fakeLedger struct {
	bookings  map[uint]*models.Booking
	statusErr error
}

func (f *fakeLedger) GetByID(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, errs.NotFound("booking not found")
	}
	return b, nil
}

func (f *fakeLedger) UpdateStatus(_ context.Context, id uint, _ uint, _ string, newStatus models.BookingStatus) (*models.Booking, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, errs.NotFound("booking not found")
	}
	b.Status = newStatus
	return b, nil
}

func (f *fakeLedger) ListUpcoming(_ context.Context, providerID uint, _ time.Time, _ int) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID && b.IsCommitted() {
			out = append(out, *b)
		}
	}
	return out, nil
}

// fakeExceptionAdmin mirrors the store's admission rules for closure windows:
// a window may not overlap another window of the same provider, and may not
// cover time with committed bookings in it.
type fakeExceptionAdmin struct {
	windows  []models.ExceptionWindow
	bookings []models.Booking
}

func (f *fakeExceptionAdmin) Create(_ context.Context, window *models.ExceptionWindow) error {
	for _, w := range f.windows {
		if w.ProviderID == window.ProviderID && schedule.Overlaps(window.StartAt, window.EndAt, w.StartAt, w.EndAt) {
			return errs.Conflict("the window overlaps an existing exception window")
		}
	}
	for _, b := range f.bookings {
		if b.ProviderID == window.ProviderID && b.IsCommitted() && schedule.Overlaps(window.StartAt, window.EndAt, b.StartAt, b.EndAt) {
			return errs.Conflict("committed bookings exist inside the window; cancel them first")
		}
	}
	window.ID = uint(len(f.windows) + 1)
	f.windows = append(f.windows, *window)
	return nil
}

func (f *fakeExceptionAdmin) List(_ context.Context, providerID uint) ([]models.ExceptionWindow, error) {
	var out []models.ExceptionWindow
	for _, w := range f.windows {
		if w.ProviderID == providerID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeExceptionAdmin) Delete(_ context.Context, id, providerID uint) error {
	for i, w := range f.windows {
		if w.ID != id {
			continue
		}
		if w.ProviderID != providerID {
			return errs.Authorization("the exception window belongs to another provider")
		}
		f.windows = append(f.windows[:i], f.windows[i+1:]...)
		return nil
	}
	return errs.NotFound("exception window not found")
}

// asActor fakes the JWT middleware for handler tests.
func asActor(userID uint, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("role", role)
		return c.Next()
	}
}
