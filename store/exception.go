package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
)

// ExceptionStore persists one-off closure windows (vacations, single-day
// closures) that override the weekly schedule.
type ExceptionStore struct {
	db *gorm.DB
}

func NewExceptionStore(db *gorm.DB) *ExceptionStore {
	return &ExceptionStore{db: db}
}

// Create validates and inserts a closure window. It is rejected when it
// overlaps another exception window of the same provider, or when committed
// bookings already sit inside it; closing over booked time requires the
// provider to cancel those bookings first, a window never cancels them
// silently.
func (s *ExceptionStore) Create(ctx context.Context, window *models.ExceptionWindow) error {
	if window.EndAt.Before(window.StartAt) {
		return errs.Validation("exception window end must not be before its start")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var overlapping int64
		if err := tx.Model(&models.ExceptionWindow{}).
			Where("provider_id = ?", window.ProviderID).
			Where("start_at < ? AND end_at > ?", window.EndAt, window.StartAt).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return errs.Conflict("the window overlaps an existing exception window")
		}

		var booked int64
		if err := tx.Model(&models.Booking{}).
			Where("provider_id = ?", window.ProviderID).
			Where("status IN ?", models.CommittedStatuses).
			Where("start_at < ? AND end_at > ?", window.EndAt, window.StartAt).
			Count(&booked).Error; err != nil {
			return err
		}
		if booked > 0 {
			return errs.Conflict("committed bookings exist inside the window; cancel them first")
		}

		return tx.Create(window).Error
	})
	if err != nil {
		if errs.KindOf(err) != errs.KindUnknown {
			return err
		}
		return errs.Upstream("failed to create exception window", err)
	}
	return nil
}

// List returns a provider's exception windows, soonest first.
func (s *ExceptionStore) List(ctx context.Context, providerID uint) ([]models.ExceptionWindow, error) {
	var windows []models.ExceptionWindow
	err := s.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("start_at asc").
		Find(&windows).Error
	if err != nil {
		return nil, errs.Upstream("failed to load exception windows", err)
	}
	return windows, nil
}

// Delete removes a window after checking the caller owns it.
func (s *ExceptionStore) Delete(ctx context.Context, id, providerID uint) error {
	var window models.ExceptionWindow
	if err := s.db.WithContext(ctx).First(&window, id).Error; err != nil {
		return translate(err, "exception window not found")
	}
	if window.ProviderID != providerID {
		return errs.Authorization("the exception window belongs to another provider")
	}
	if err := s.db.WithContext(ctx).Delete(&window).Error; err != nil {
		return errs.Upstream("failed to delete exception window", err)
	}
	return nil
}

// Overlapping returns the provider's exception windows intersecting
// [start, end).
func (s *ExceptionStore) Overlapping(ctx context.Context, providerID uint, start, end time.Time) ([]models.ExceptionWindow, error) {
	var windows []models.ExceptionWindow
	err := s.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Where("start_at < ? AND end_at > ?", end, start).
		Find(&windows).Error
	if err != nil {
		return nil, errs.Upstream("failed to query exception windows", err)
	}
	return windows, nil
}

// IsBlocked reports whether any exception window intersects [start, end).
func (s *ExceptionStore) IsBlocked(ctx context.Context, providerID uint, start, end time.Time) (bool, error) {
	windows, err := s.Overlapping(ctx, providerID, start, end)
	if err != nil {
		return false, err
	}
	return len(windows) > 0, nil
}
