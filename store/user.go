package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/slotworks/booking-app/errs"
	"github.com/slotworks/booking-app/models"
)

// UserStore resolves the identity records the engine references. Accounts are
// managed elsewhere; this is read-only lookup.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// GetProvider returns the provider with the given id, or NotFound when the id
// is unknown or belongs to a non-provider account.
func (s *UserStore) GetProvider(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "provider not found")
	}
	if user.Role != models.RoleProvider && user.Role != models.RoleAdmin {
		return nil, errs.NotFound("provider not found")
	}
	return &user, nil
}
