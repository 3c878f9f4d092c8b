package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
)

// EventBookingCreated is published after a booking is admitted to the ledger.
const EventBookingCreated = "booking.created"

// CreateRequest is a fully parsed booking admission request.
type CreateRequest struct {
	ProviderID uint
	ClientID   uint
	StartAt    time.Time
	EndAt      time.Time
	Price      float64
	Notes      string

	// ManualEntry marks a booking the provider types in for a walk-in or
	// phone client. Manual entries start confirmed and may be placed inside
	// the provider's own exception windows.
	ManualEntry bool
}

// Booker admits booking requests against the ledger and exception windows.
// The per-provider lease serializes concurrent requests so the overlap check
// and the insert act as one critical section; the ledger's transactional
// check is the final guarantee underneath it.
type Booker struct {
	ledger     BookingLedger
	exceptions ExceptionChecker
	locks      Locker
	events     Publisher
}

func NewBooker(ledger BookingLedger, exceptions ExceptionChecker, locks Locker, events Publisher) *Booker {
	return &Booker{ledger: ledger, exceptions: exceptions, locks: locks, events: events}
}

func (bk *Booker) Create(ctx context.Context, req CreateRequest) (*models.Booking, error) {
	if !req.EndAt.After(req.StartAt) {
		return nil, errs.Validation("booking end must be after its start")
	}

	release, err := bk.locks.Acquire(ctx, req.ProviderID)
	if err != nil {
		return nil, errs.Upstream("could not serialize booking request", err)
	}
	defer release()

	if !req.ManualEntry {
		blocked, err := bk.exceptions.IsBlocked(ctx, req.ProviderID, req.StartAt, req.EndAt)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, errs.Conflict("provider is closed during the requested time")
		}
	}

	status := models.StatusPending
	if req.ManualEntry {
		status = models.StatusConfirmed
	}
	booking := &models.Booking{
		ProviderID: req.ProviderID,
		ClientID:   req.ClientID,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Status:     status,
		Price:      req.Price,
		Notes:      req.Notes,
	}
	if err := bk.ledger.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := bk.events.Publish(ctx, EventBookingCreated, booking); err != nil {
		log.Printf("failed to publish %s for booking %d: %v", EventBookingCreated, booking.ID, err)
	}
	return booking, nil
}
