package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
)

// ExceptionAdmin manages a provider's closure windows. Satisfied by
// *store.ExceptionStore.
type ExceptionAdmin interface {
	Create(ctx context.Context, window *models.ExceptionWindow) error
	List(ctx context.Context, providerID uint) ([]models.ExceptionWindow, error)
	Delete(ctx context.Context, id, providerID uint) error
}

type ExceptionController struct {
	exceptions ExceptionAdmin
}

func NewExceptionController(exceptions ExceptionAdmin) *ExceptionController {
	return &ExceptionController{exceptions: exceptions}
}

type createExceptionRequest struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
	Reason  string `json:"reason"`
}

// CreateException closes a time range for the authenticated provider. The
// store rejects windows overlapping committed bookings, with a message
// telling the provider to cancel those bookings first.
func (ec *ExceptionController) CreateException(c *fiber.Ctx) error {
	providerID, ok := requireProvider(c)
	if !ok {
		return forbidden(c, "only providers manage exception windows")
	}

	var body createExceptionRequest
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, errs.Validation("failed to parse request body"))
	}
	startAt, err := time.Parse(time.RFC3339, body.StartAt)
	if err != nil {
		return respondError(c, errs.Validation("invalid start_at, expected RFC3339"))
	}
	endAt, err := time.Parse(time.RFC3339, body.EndAt)
	if err != nil {
		return respondError(c, errs.Validation("invalid end_at, expected RFC3339"))
	}

	window := &models.ExceptionWindow{
		ProviderID: providerID,
		StartAt:    startAt,
		EndAt:      endAt,
		Reason:     body.Reason,
	}
	if err := ec.exceptions.Create(c.Context(), window); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(window)
}

// ListExceptions returns the provider's closure windows.
func (ec *ExceptionController) ListExceptions(c *fiber.Ctx) error {
	providerID, ok := requireProvider(c)
	if !ok {
		return forbidden(c, "only providers manage exception windows")
	}
	windows, err := ec.exceptions.List(c.Context(), providerID)
	if err != nil {
		return respondError(c, err)
	}
	if windows == nil {
		windows = []models.ExceptionWindow{}
	}
	return c.JSON(fiber.Map{"exceptions": windows})
}

// DeleteException removes one of the provider's own windows.
func (ec *ExceptionController) DeleteException(c *fiber.Ctx) error {
	providerID, ok := requireProvider(c)
	if !ok {
		return forbidden(c, "only providers manage exception windows")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, errs.Validation("invalid exception window id"))
	}
	if err := ec.exceptions.Delete(c.Context(), uint(id), providerID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
