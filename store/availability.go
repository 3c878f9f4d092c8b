package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
	"github.com/slotworks/booking-app/schedule"
)

// AvailabilityStore persists the weekly open/close rules and their break
// windows.
type AvailabilityStore struct {
	db *gorm.DB
}

func NewAvailabilityStore(db *gorm.DB) *AvailabilityStore {
	return &AvailabilityStore{db: db}
}

// GetRule returns the rule for one weekday, or (nil, nil) when the provider
// has none configured for that day.
func (s *AvailabilityStore) GetRule(ctx context.Context, providerID uint, day models.DayOfWeek) (*models.AvailabilityRule, error) {
	var rule models.AvailabilityRule
	err := s.db.WithContext(ctx).
		Preload("Breaks").
		Where("provider_id = ? AND day_of_week = ?", providerID, day).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Upstream("failed to load availability rule", err)
	}
	return &rule, nil
}

// GetRules returns all weekday rules for a provider, ordered by weekday.
func (s *AvailabilityStore) GetRules(ctx context.Context, providerID uint) ([]models.AvailabilityRule, error) {
	var rules []models.AvailabilityRule
	err := s.db.WithContext(ctx).
		Preload("Breaks").
		Where("provider_id = ?", providerID).
		Order("day_of_week asc").
		Find(&rules).Error
	if err != nil {
		return nil, errs.Upstream("failed to load availability rules", err)
	}
	return rules, nil
}

// UpsertRules replaces the provider's rule for each weekday present in rules.
// Weekdays not mentioned keep their existing rule. The whole batch is applied
// in one transaction, all or nothing.
func (s *AvailabilityStore) UpsertRules(ctx context.Context, providerID uint, rules []models.AvailabilityRule) error {
	seen := map[models.DayOfWeek]bool{}
	for i := range rules {
		if err := validateRule(&rules[i]); err != nil {
			return err
		}
		if seen[rules[i].DayOfWeek] {
			return errs.Validation("duplicate rule for weekday %d", rules[i].DayOfWeek)
		}
		seen[rules[i].DayOfWeek] = true
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rules {
			rule := rules[i]
			rule.ID = 0
			rule.ProviderID = providerID
			for j := range rule.Breaks {
				rule.Breaks[j].ID = 0
			}

			var existing models.AvailabilityRule
			err := tx.Where("provider_id = ? AND day_of_week = ?", providerID, rule.DayOfWeek).First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Unscoped().Where("rule_id = ?", existing.ID).Delete(&models.BreakWindow{}).Error; err != nil {
					return err
				}
				if err := tx.Unscoped().Delete(&existing).Error; err != nil {
					return err
				}
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}

			if err := tx.Create(&rule).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errs.KindOf(err) != errs.KindUnknown {
			return err
		}
		return errs.Upstream("failed to save availability rules", err)
	}
	return nil
}

func validateRule(rule *models.AvailabilityRule) error {
	if rule.DayOfWeek < models.Sunday || rule.DayOfWeek > models.Saturday {
		return errs.Validation("weekday must be between 0 and 6, got %d", rule.DayOfWeek)
	}
	if !rule.IsOpen {
		// Closed days keep whatever times they carry; nothing to check.
		return nil
	}
	if _, err := schedule.ParseClock(rule.OpenTime); err != nil {
		return errs.Validation("open time: %v", err)
	}
	if _, err := schedule.ParseClock(rule.CloseTime); err != nil {
		return errs.Validation("close time: %v", err)
	}
	if !schedule.ClockBefore(rule.OpenTime, rule.CloseTime) {
		return errs.Validation("open time %s must be before close time %s", rule.OpenTime, rule.CloseTime)
	}
	for _, br := range rule.Breaks {
		if _, err := schedule.ParseClock(br.StartTime); err != nil {
			return errs.Validation("break start: %v", err)
		}
		if _, err := schedule.ParseClock(br.EndTime); err != nil {
			return errs.Validation("break end: %v", err)
		}
		if !schedule.ClockBefore(br.StartTime, br.EndTime) {
			return errs.Validation("break start %s must be before break end %s", br.StartTime, br.EndTime)
		}
		if schedule.ClockBefore(br.StartTime, rule.OpenTime) || schedule.ClockBefore(rule.CloseTime, br.EndTime) {
			return errs.Validation("break %s-%s must sit inside open hours %s-%s",
				br.StartTime, br.EndTime, rule.OpenTime, rule.CloseTime)
		}
	}
	return nil
}
