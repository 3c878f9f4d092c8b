package db

import (
	"gorm.io/gorm"

	"github.com/slotworks/booking-app/models"
)

// Migrate brings the schema up to date for the three range-queryable
// collections plus the identity reference table.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.AvailabilityRule{},
		&models.BreakWindow{},
		&models.ExceptionWindow{},
		&models.Booking{},
	)
}
