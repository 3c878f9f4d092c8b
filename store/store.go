// Package store holds the GORM-backed repositories. One store per collection,
// constructed at startup and injected into the components that need it.
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/slotworks/booking-app/errs"
)

// translate maps a gorm failure onto the domain error taxonomy. notFoundMsg is
// used when the record simply is not there; anything else is an upstream
// persistence failure whose details stay out of API responses.
func translate(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("%s", notFoundMsg)
	}
	return errs.Upstream("persistence failure", err)
}
