// Package vehicletype holds the vehicle-type definitions and their pricing
// formulas. Definitions enter the registry only after their formula has been
// validated, and reloads are published atomically: a bad batch never
// replaces, or partially overwrites, the live set.
package vehicletype

import (
	"context"
	"errors"

	"github.com/fleetrent/rentd/core/model"
)

// ErrNotFound is returned when no definition exists for a canonical id.
var ErrNotFound = errors.New("vehicle type not found")

// Store is the read port the pricing selector and the checkout workflow use.
type Store interface {
	// GetByID returns the definition for the id. The id is normalized
	// before lookup; ErrNotFound is returned when it is absent.
	GetByID(ctx context.Context, id string) (model.VehicleType, error)
	// ListAll returns every definition, ordered by id.
	ListAll(ctx context.Context) ([]model.VehicleType, error)
}
