// Package metrics defines the observability events emitted by the rental
// workflows and the sink interfaces adapters implement. Recording is best
// effort: a sink error never fails the operation that produced the event.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutEvent is recorded after a rental has been persisted.
type CheckoutEvent struct {
	BookingNumber      string
	RegistrationNumber string
	VehicleTypeID      string
	Location           string
	Time               time.Time
}

// ReturnEvent is recorded after a rental has been completed and priced.
type ReturnEvent struct {
	BookingNumber      string
	RegistrationNumber string
	VehicleTypeID      string
	Location           string
	Days               int64
	Kilometers         decimal.Decimal
	RentalPrice        decimal.Decimal
	Time               time.Time
}

// FormulaFailureEvent is recorded when pricing a return fails inside the
// formula evaluator.
type FormulaFailureEvent struct {
	VehicleTypeID string
	Reason        string
	Time          time.Time
}

// Sink records rental lifecycle events for observability purposes.
type Sink interface {
	RecordCheckout(ev CheckoutEvent) error
	RecordReturn(ev ReturnEvent) error
	RecordFormulaFailure(ev FormulaFailureEvent) error
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) RecordCheckout(CheckoutEvent) error             { return nil }
func (NopSink) RecordReturn(ReturnEvent) error                 { return nil }
func (NopSink) RecordFormulaFailure(FormulaFailureEvent) error { return nil }
