package models

import (
	"time"

	"gorm.io/gorm"
)

// ExceptionWindow is an explicit closure interval (vacation, one-off closure)
// that overrides the weekly schedule. It never cancels bookings on its own;
// creation is rejected while committed bookings sit inside it.
type ExceptionWindow struct {
	gorm.Model
	ProviderID uint      `json:"provider_id" gorm:"index"`
	Provider   User      `json:"-" gorm:"foreignKey:ProviderID"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	Reason     string    `json:"reason,omitempty"`
}
