package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
	"github.com/slotworks/booking-app/scheduler"
)

// Booker admits parsed booking requests. Satisfied by *scheduler.Booker.
type Booker interface {
	Create(ctx context.Context, req scheduler.CreateRequest) (*models.Booking, error)
}

// BookingLedger exposes the ledger operations the HTTP layer needs beyond
// admission. Satisfied by *store.BookingStore.
type BookingLedger interface {
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uint, actorID uint, role string, newStatus models.BookingStatus) (*models.Booking, error)
	ListUpcoming(ctx context.Context, providerID uint, from time.Time, limit int) ([]models.Booking, error)
}

type BookingController struct {
	providers ProviderSource
	booker    Booker
	ledger    BookingLedger
}

func NewBookingController(providers ProviderSource, booker Booker, ledger BookingLedger) *BookingController {
	return &BookingController{providers: providers, booker: booker, ledger: ledger}
}

type createBookingRequest struct {
	ProviderID uint    `json:"provider_id"`
	ClientID   uint    `json:"client_id"`
	StartAt    string  `json:"start_at"`
	EndAt      string  `json:"end_at"`
	Price      float64 `json:"price"`
	Notes      string  `json:"notes"`
}

// CreateBooking admits a new booking. A provider posting into its own
// calendar is a manual entry: created confirmed and allowed to sit inside the
// provider's own exception windows. Anyone else books as a client and starts
// pending.
func (bc *BookingController) CreateBooking(c *fiber.Ctx) error {
	actorID, role, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var body createBookingRequest
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, errs.Validation("failed to parse request body"))
	}
	if body.ProviderID == 0 {
		return respondError(c, errs.Validation("a provider id is required"))
	}
	if _, err := bc.providers.GetProvider(c.Context(), body.ProviderID); err != nil {
		return respondError(c, err)
	}

	startAt, err := time.Parse(time.RFC3339, body.StartAt)
	if err != nil {
		return respondError(c, errs.Validation("invalid start_at, expected RFC3339"))
	}
	endAt, err := time.Parse(time.RFC3339, body.EndAt)
	if err != nil {
		return respondError(c, errs.Validation("invalid end_at, expected RFC3339"))
	}

	manual := (role == models.RoleProvider || role == models.RoleAdmin) && body.ProviderID == actorID
	clientID := actorID
	if manual {
		clientID = body.ClientID
	}

	booking, err := bc.booker.Create(c.Context(), scheduler.CreateRequest{
		ProviderID:  body.ProviderID,
		ClientID:    clientID,
		StartAt:     startAt,
		EndAt:       endAt,
		Price:       body.Price,
		Notes:       body.Notes,
		ManualEntry: manual,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetBooking returns one booking to a party of it.
func (bc *BookingController) GetBooking(c *fiber.Ctx) error {
	actorID, role, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, errs.Validation("invalid booking id"))
	}

	booking, err := bc.ledger.GetByID(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	if role != models.RoleAdmin && booking.ProviderID != actorID && booking.ClientID != actorID {
		return forbidden(c, "you are not a party to this booking")
	}
	return c.JSON(booking)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus applies a state-machine transition; ownership checks live in
// the ledger.
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	actorID, role, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, errs.Validation("invalid booking id"))
	}

	var body updateStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, errs.Validation("failed to parse request body"))
	}

	booking, err := bc.ledger.UpdateStatus(c.Context(), uint(id), actorID, role, models.BookingStatus(body.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}

// ListUpcoming returns the authenticated provider's next committed bookings.
func (bc *BookingController) ListUpcoming(c *fiber.Ctx) error {
	actorID, role, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	if role != models.RoleProvider && role != models.RoleAdmin {
		return forbidden(c, "only providers can list their bookings")
	}

	limit := c.QueryInt("limit", 10)
	bookings, err := bc.ledger.ListUpcoming(c.Context(), actorID, time.Now(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"bookings": bookings,
		"count":    len(bookings),
	})
}
