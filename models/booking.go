package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCanceled  BookingStatus = "canceled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// CommittedStatuses are the statuses that hold a provider's time. Only these
// count in overlap checks and slot availability.
var CommittedStatuses = []BookingStatus{StatusPending, StatusConfirmed}

// Booking is a client's claim on a provider time range. Created pending when
// the client requests it, or confirmed directly when the provider enters it
// manually.
type Booking struct {
	gorm.Model
	ProviderID uint          `json:"provider_id" gorm:"index"`
	Provider   User          `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ClientID   uint          `json:"client_id"`
	Client     User          `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	StartAt    time.Time     `json:"start_at"`
	EndAt      time.Time     `json:"end_at"`
	Status     BookingStatus `json:"status"`
	Price      float64       `json:"price"`
	Notes      string        `json:"notes"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// IsCommitted reports whether the booking still holds its time range.
func (b *Booking) IsCommitted() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransition validates the booking state machine:
//
//	pending   -> confirmed | canceled
//	confirmed -> completed | canceled | no_show
//
// completed, canceled and no_show are terminal.
func CanTransition(from, to BookingStatus) error {
	switch from {
	case StatusPending:
		if to != StatusConfirmed && to != StatusCanceled {
			return fmt.Errorf("invalid transition from pending to %s", to)
		}
	case StatusConfirmed:
		if to != StatusCompleted && to != StatusCanceled && to != StatusNoShow {
			return fmt.Errorf("invalid transition from confirmed to %s", to)
		}
	case StatusCompleted, StatusCanceled, StatusNoShow:
		return fmt.Errorf("no transitions allowed from %s", from)
	default:
		return fmt.Errorf("unknown status %s", from)
	}
	return nil
}

// ValidStatus reports whether s is one of the enumerated booking statuses.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}
