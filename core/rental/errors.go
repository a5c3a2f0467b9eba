package rental

import "errors"

// Validation failures. All of them are caller-correctable: the workflows
// return them as values and nothing in this package ever panics on bad input.
var (
	ErrBookingNumberRequired = errors.New("booking number must not be blank")
	ErrRegistrationRequired  = errors.New("registration number must not be blank")
	ErrNegativeOdometer      = errors.New("odometer reading must not be negative")

	// ErrBookingExists is returned when the booking number is already taken.
	ErrBookingExists = errors.New("booking number already exists")
	// ErrBookingNotFound is returned when no rental has the booking number.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrVehicleAlreadyRented is returned when the vehicle has an active rental.
	ErrVehicleAlreadyRented = errors.New("vehicle is already rented")
	// ErrAlreadyCompleted is returned when the rental was returned before.
	ErrAlreadyCompleted = errors.New("rental already completed")

	ErrReturnBeforeCheckout = errors.New("return time is before checkout time")
	ErrDurationTooShort     = errors.New("rental duration is below one minute")
	ErrDurationTooLong      = errors.New("rental duration exceeds sixty days")
	ErrOdometerRegressed    = errors.New("return odometer is below checkout odometer")
)
