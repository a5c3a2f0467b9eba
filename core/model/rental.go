package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Rental tracks one booking from checkout to return. The checkout fields are
// written once by the checkout workflow; the return fields are written exactly
// once by the return workflow. Rentals are never deleted by the core.
//
// Only the vehicle-type id is recorded at checkout, not a snapshot of the
// formula or the base rates: a return priced after an admin edits the type's
// formula uses the edited formula.
type Rental struct {
	BookingNumber      string // globally unique key
	CustomerID         string
	RegistrationNumber string
	VehicleTypeID      string // canonical id resolved at checkout
	CheckoutTime       time.Time
	CheckoutOdometer   decimal.Decimal

	ReturnTime     *time.Time
	ReturnOdometer *decimal.Decimal
	RentalPrice    *decimal.Decimal
}

// IsActive reports whether the rental has not been returned yet.
func (r Rental) IsActive() bool { return r.ReturnTime == nil }

// PricingParams carries the per-return base rates bound into the pricing
// formula. They are supplied at return time, not stored with the type.
type PricingParams struct {
	BaseDayRate decimal.Decimal
	BaseKmPrice decimal.Decimal
}

// Validate checks that both rates are non-negative.
func (p PricingParams) Validate() error {
	if p.BaseDayRate.IsNegative() {
		return fmt.Errorf("base day rate must not be negative")
	}
	if p.BaseKmPrice.IsNegative() {
		return fmt.Errorf("base km price must not be negative")
	}
	return nil
}
