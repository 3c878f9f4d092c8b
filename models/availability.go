package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// AvailabilityRule is a provider's recurring weekly open window for one
// weekday. Exactly one rule per provider per weekday; a closed day is
// IsOpen=false, not a missing row. Times are local "HH:MM" in 24h format.
type AvailabilityRule struct {
	gorm.Model
	ProviderID uint          `json:"provider_id" gorm:"uniqueIndex:idx_provider_weekday"`
	Provider   User          `json:"-" gorm:"foreignKey:ProviderID"`
	DayOfWeek  DayOfWeek     `json:"day_of_week" gorm:"uniqueIndex:idx_provider_weekday"`
	IsOpen     bool          `json:"is_open" gorm:"default:true"`
	OpenTime   string        `json:"open_time"`  // Format "HH:MM" in 24h
	CloseTime  string        `json:"close_time"` // Format "HH:MM" in 24h
	Breaks     []BreakWindow `json:"breaks" gorm:"foreignKey:RuleID;constraint:OnDelete:CASCADE"`
}

// BreakWindow is a pause inside the day's open window, e.g. lunch. Stored as
// its own table row so break times are queryable and validated on write.
type BreakWindow struct {
	gorm.Model
	RuleID    uint   `json:"rule_id"`
	StartTime string `json:"start_time"` // Format "HH:MM" in 24h
	EndTime   string `json:"end_time"`   // Format "HH:MM" in 24h
}
