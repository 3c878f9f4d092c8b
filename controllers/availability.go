package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
)

// RuleAdmin manages a provider's weekly rules. Satisfied by
// *store.AvailabilityStore.
type RuleAdmin interface {
	GetRules(ctx context.Context, providerID uint) ([]models.AvailabilityRule, error)
	UpsertRules(ctx context.Context, providerID uint, rules []models.AvailabilityRule) error
}

type AvailabilityController struct {
	rules RuleAdmin
}

func NewAvailabilityController(rules RuleAdmin) *AvailabilityController {
	return &AvailabilityController{rules: rules}
}

// GetRules returns the authenticated provider's weekly schedule.
func (ac *AvailabilityController) GetRules(c *fiber.Ctx) error {
	providerID, ok := requireProvider(c)
	if !ok {
		return forbidden(c, "only providers manage availability")
	}
	rules, err := ac.rules.GetRules(c.Context(), providerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"rules": rules})
}

type ruleRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	Breaks    []struct {
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	} `json:"breaks"`
}

// UpsertRules replaces the provider's rule for each submitted weekday.
func (ac *AvailabilityController) UpsertRules(c *fiber.Ctx) error {
	providerID, ok := requireProvider(c)
	if !ok {
		return forbidden(c, "only providers manage availability")
	}

	var body struct {
		Rules []ruleRequest `json:"rules"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, errs.Validation("failed to parse request body"))
	}
	if len(body.Rules) == 0 {
		return respondError(c, errs.Validation("at least one rule is required"))
	}

	rules := make([]models.AvailabilityRule, 0, len(body.Rules))
	for _, r := range body.Rules {
		rule := models.AvailabilityRule{
			ProviderID: providerID,
			DayOfWeek:  models.DayOfWeek(r.DayOfWeek),
			IsOpen:     r.IsOpen,
			OpenTime:   r.OpenTime,
			CloseTime:  r.CloseTime,
		}
		for _, br := range r.Breaks {
			rule.Breaks = append(rule.Breaks, models.BreakWindow{
				StartTime: br.StartTime,
				EndTime:   br.EndTime,
			})
		}
		rules = append(rules, rule)
	}

	if err := ac.rules.UpsertRules(c.Context(), providerID, rules); err != nil {
		return respondError(c, err)
	}

	updated, err := ac.rules.GetRules(c.Context(), providerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"rules": updated})
}

// requireProvider returns the actor id when the caller is a provider.
func requireProvider(c *fiber.Ctx) (uint, bool) {
	actorID, role, ok := actor(c)
	if !ok {
		return 0, false
	}
	if role != models.RoleProvider && role != models.RoleAdmin {
		return 0, false
	}
	return actorID, true
}
