package models

import (
	"time"
)

const (
	RoleProvider = "provider"
	RoleClient   = "client"
	RoleAdmin    = "admin"
)

// User is the thin identity record the engine needs to resolve ownership.
// Account lifecycle (registration, passwords, sessions) lives in a separate
// service; requests arrive with tokens already signed.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"unique"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsProvider() bool {
	return u.Role == RoleProvider || u.Role == RoleAdmin
}
