package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Vehicle is one physical vehicle in the station catalog.
type Vehicle struct {
	RegistrationNumber string          // unique key within the catalog
	VehicleTypeID      string          // canonical id of the vehicle's type
	CurrentOdometer    decimal.Decimal // advisory reading, updated after a return
	Location           string
}

// Validate checks that the vehicle record is sound.
func (v Vehicle) Validate() error {
	if v.RegistrationNumber == "" {
		return fmt.Errorf("registration number is required")
	}
	if _, err := NormalizeID(v.VehicleTypeID); err != nil {
		return fmt.Errorf("vehicle %s: vehicle type id: %w", v.RegistrationNumber, err)
	}
	if v.CurrentOdometer.IsNegative() {
		return fmt.Errorf("vehicle %s: odometer must not be negative", v.RegistrationNumber)
	}
	return nil
}
