package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
)

// BookingStore is the booking ledger: the single source of truth for time
// already spoken for, and the only writer of booking status transitions.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

// Create admits a booking. The overlap check and the insert run inside one
// transaction, with the conflicting rows locked FOR UPDATE, so two concurrent
// requests for the same range can never both commit.
func (s *BookingStore) Create(ctx context.Context, booking *models.Booking) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflicting models.Booking
		err := tx.Raw(`
			SELECT *
			FROM bookings
			WHERE provider_id = ?
			  AND status IN ?
			  AND start_at < ? AND end_at > ?
			  AND deleted_at IS NULL
			FOR UPDATE
			LIMIT 1
		`, booking.ProviderID, committedStatusStrings(), booking.EndAt, booking.StartAt).
			Scan(&conflicting).Error
		if err != nil {
			return err
		}
		if conflicting.ID != 0 {
			return errs.Conflict("the requested time slot is already taken")
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		if errs.KindOf(err) != errs.KindUnknown {
			return err
		}
		return errs.Upstream("failed to create booking", err)
	}
	return nil
}

// GetByID loads one booking with its parties.
func (s *BookingStore) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Provider").
		Preload("Client").
		First(&booking, id).Error
	if err != nil {
		return nil, translate(err, "booking not found")
	}
	return &booking, nil
}

// ListCommitted returns pending and confirmed bookings intersecting
// [start, end) for a provider.
func (s *BookingStore) ListCommitted(ctx context.Context, providerID uint, start, end time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Where("status IN ?", models.CommittedStatuses).
		Where("start_at < ? AND end_at > ?", end, start).
		Order("start_at asc").
		Find(&bookings).Error
	if err != nil {
		return nil, errs.Upstream("failed to load bookings", err)
	}
	return bookings, nil
}

// ListUpcoming returns a provider's next committed bookings from now on.
func (s *BookingStore) ListUpcoming(ctx context.Context, providerID uint, from time.Time, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	query := s.db.WithContext(ctx).
		Preload("Client").
		Where("provider_id = ?", providerID).
		Where("status IN ?", models.CommittedStatuses).
		Where("start_at >= ?", from).
		Order("start_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&bookings).Error; err != nil {
		return nil, errs.Upstream("failed to load upcoming bookings", err)
	}
	return bookings, nil
}

// UpdateStatus applies one state-machine transition on behalf of an actor.
// The row is locked for the duration of the check so concurrent transitions
// serialize; there is exactly one writer per transition.
func (s *BookingStore) UpdateStatus(ctx context.Context, id uint, actorID uint, role string, newStatus models.BookingStatus) (*models.Booking, error) {
	if !models.ValidStatus(newStatus) {
		return nil, errs.Validation("unknown status %q", newStatus)
	}

	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			return translate(err, "booking not found")
		}
		if err := authorizeTransition(&booking, actorID, role, newStatus); err != nil {
			return err
		}
		if err := models.CanTransition(booking.Status, newStatus); err != nil {
			return errs.Validation("%v", err)
		}
		booking.Status = newStatus
		return tx.Save(&booking).Error
	})
	if err != nil {
		if errs.KindOf(err) != errs.KindUnknown {
			return nil, err
		}
		return nil, errs.Upstream("failed to update booking status", err)
	}
	return &booking, nil
}

// RemindersDue returns confirmed bookings starting inside [from, to), with the
// parties preloaded for the reminder job.
func (s *BookingStore) RemindersDue(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Provider").
		Where("status = ?", models.StatusConfirmed).
		Where("start_at >= ? AND start_at < ?", from, to).
		Find(&bookings).Error
	if err != nil {
		return nil, errs.Upstream("failed to load bookings due for reminders", err)
	}
	return bookings, nil
}

// authorizeTransition enforces who may move a booking where: confirming,
// completing and no-showing are provider actions; canceling is open to either
// party of the booking.
func authorizeTransition(booking *models.Booking, actorID uint, role string, newStatus models.BookingStatus) error {
	if role == models.RoleAdmin {
		return nil
	}
	switch newStatus {
	case models.StatusConfirmed, models.StatusCompleted, models.StatusNoShow:
		if booking.ProviderID != actorID {
			return errs.Authorization("only the booking's provider may set status %s", newStatus)
		}
	case models.StatusCanceled:
		if booking.ProviderID != actorID && booking.ClientID != actorID {
			return errs.Authorization("only a party to the booking may cancel it")
		}
	default:
		return errs.Validation("status %s cannot be set directly", newStatus)
	}
	return nil
}

func committedStatusStrings() []string {
	out := make([]string, len(models.CommittedStatuses))
	for i, s := range models.CommittedStatuses {
		out[i] = string(s)
	}
	return out
}
