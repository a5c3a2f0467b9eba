package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalEventKind discriminates lifecycle events published on the bus.
type RentalEventKind string

const (
	EventCheckout RentalEventKind = "checkout"
	EventReturn   RentalEventKind = "return"
)

// RentalEvent is published after a checkout or return has been persisted.
// Subscribers (metrics sinks, audit log, inter-location relay) must never
// influence the outcome of the operation that produced the event.
type RentalEvent struct {
	Kind               RentalEventKind `json:"kind"`
	BookingNumber      string          `json:"booking_number"`
	RegistrationNumber string          `json:"registration_number"`
	VehicleTypeID      string          `json:"vehicle_type_id"`
	Location           string          `json:"location,omitempty"`
	Time               time.Time       `json:"time"`

	// Return-only figures; zero on checkout events.
	Days        int64           `json:"days,omitempty"`
	Kilometers  decimal.Decimal `json:"kilometers,omitempty"`
	RentalPrice decimal.Decimal `json:"rental_price,omitempty"`
}
