package models

import "time"

// Slot is a fixed-length candidate window inside a provider's open hours.
// Slots are recomputed on every query and never persisted; booked slots are
// still returned, flagged unavailable, so callers can render them explicitly.
type Slot struct {
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Available bool      `json:"available"`
}
