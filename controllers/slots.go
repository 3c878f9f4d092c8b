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

// ProviderSource resolves provider identities for the public slot calendar.
type ProviderSource interface {
	GetProvider(ctx context.Context, id uint) (*models.User, error)
}

// SlotGenerator computes the slot calendar. Satisfied by *scheduler.Generator.
type SlotGenerator interface {
	ComputeSlots(ctx context.Context, providerID uint, from, to time.Time, granularity time.Duration) ([]models.Slot, error)
}

type SlotController struct {
	providers ProviderSource
	generator SlotGenerator
}

func NewSlotController(providers ProviderSource, generator SlotGenerator) *SlotController {
	return &SlotController{providers: providers, generator: generator}
}

// GetSlots returns the provider's slot calendar for the requested range.
// Booked and blocked slots are included with available=false.
func (sc *SlotController) GetSlots(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("provider_id")
	if err != nil || providerID <= 0 {
		return respondError(c, errs.Validation("a provider id is required"))
	}

	provider, err := sc.providers.GetProvider(c.Context(), uint(providerID))
	if err != nil {
		return respondError(c, err)
	}

	granularity, err := schedule.ParseGranularity(c.QueryInt("granularity"))
	if err != nil {
		return respondError(c, errs.Validation("%v", err))
	}

	from, to, err := parseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}

	slots, err := sc.generator.ComputeSlots(c.Context(), provider.ID, from, to, granularity)
	if err != nil {
		return respondError(c, err)
	}
	if slots == nil {
		slots = []models.Slot{}
	}

	return c.JSON(fiber.Map{
		"provider": fiber.Map{
			"id":   provider.ID,
			"name": provider.Name,
		},
		"from":  from,
		"to":    to,
		"slots": slots,
	})
}

// parseRange resolves the optional from/to query parameters, defaulting to
// the next seven days.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	from, to := scheduler.DefaultRange(now)

	if fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, errs.Validation("invalid 'from', expected RFC3339")
		}
		from = parsed
		to = from.AddDate(0, 0, scheduler.DefaultRangeDays)
	}
	if toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, errs.Validation("invalid 'to', expected RFC3339")
		}
		to = parsed
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errs.Validation("'to' must not be before 'from'")
	}
	return from, to, nil
}
