// Package rental implements the checkout and return workflows. Both validate
// their input in a fixed order, fail on the first violation with a typed
// error, and only then touch the stores. All I/O goes through the injected
// ports; the service itself holds no state between calls.
package rental

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetrent/rentd/core/fleet"
	"github.com/fleetrent/rentd/core/logger"
	"github.com/fleetrent/rentd/core/metrics"
	"github.com/fleetrent/rentd/core/model"
	"github.com/fleetrent/rentd/core/pricing"
	"github.com/fleetrent/rentd/core/vehicletype"
	"github.com/fleetrent/rentd/internal/eventbus"
)

const (
	// MinDuration is the shortest billable rental.
	MinDuration = time.Minute
	// MaxDuration is the longest allowed rental. A return after exactly
	// MaxDuration succeeds; one second more fails.
	MaxDuration = 60 * 24 * time.Hour
)

// Service orchestrates checkouts and returns over the three ports.
type Service struct {
	rentals  Store
	catalog  fleet.Catalog
	types    vehicletype.Store
	selector *pricing.Selector
	log      logger.Logger
	sink     metrics.Sink
	bus      *eventbus.Bus[model.RentalEvent]
	location string
}

// NewService wires the workflows. sink and bus may be nil; log must not be.
func NewService(rentals Store, catalog fleet.Catalog, types vehicletype.Store, log logger.Logger, sink metrics.Sink, bus *eventbus.Bus[model.RentalEvent], location string) *Service {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Service{
		rentals:  rentals,
		catalog:  catalog,
		types:    types,
		selector: pricing.NewSelector(types),
		log:      log,
		sink:     sink,
		bus:      bus,
		location: location,
	}
}

// CheckoutRequest carries the staff input for a new rental.
type CheckoutRequest struct {
	BookingNumber      string
	CustomerID         string
	RegistrationNumber string
	// VehicleTypeOverride, when non-blank, is used instead of the
	// vehicle's own type id.
	VehicleTypeOverride string
	CheckoutTime        time.Time
	CheckoutOdometer    decimal.Decimal
}

// CheckoutResult confirms a persisted checkout.
type CheckoutResult struct {
	BookingNumber      string
	RegistrationNumber string
	VehicleTypeID      string
	CheckoutTime       time.Time
}

// Checkout validates the request and persists a new active rental. Exactly
// one rental is added on success; nothing is written on failure.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error) {
	booking := strings.TrimSpace(req.BookingNumber)
	if booking == "" {
		return CheckoutResult{}, ErrBookingNumberRequired
	}
	reg := strings.TrimSpace(req.RegistrationNumber)
	if reg == "" {
		return CheckoutResult{}, ErrRegistrationRequired
	}
	if req.CheckoutOdometer.IsNegative() {
		return CheckoutResult{}, ErrNegativeOdometer
	}

	if exists, err := s.rentals.Exists(ctx, booking); err != nil {
		return CheckoutResult{}, fmt.Errorf("rental store: %w", err)
	} else if exists {
		return CheckoutResult{}, fmt.Errorf("booking %q: %w", booking, ErrBookingExists)
	}

	vehicle, err := s.catalog.GetByRegistration(ctx, reg)
	if err != nil {
		if errors.Is(err, fleet.ErrNotFound) {
			return CheckoutResult{}, fmt.Errorf("vehicle %q: %w", reg, err)
		}
		return CheckoutResult{}, fmt.Errorf("vehicle catalog: %w", err)
	}

	if rented, err := s.rentals.HasActive(ctx, reg); err != nil {
		return CheckoutResult{}, fmt.Errorf("rental store: %w", err)
	} else if rented {
		return CheckoutResult{}, fmt.Errorf("vehicle %q: %w", reg, ErrVehicleAlreadyRented)
	}

	typeID := vehicle.VehicleTypeID
	if strings.TrimSpace(req.VehicleTypeOverride) != "" {
		typeID = req.VehicleTypeOverride
	}
	typeID, err = model.NormalizeID(typeID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if _, err := s.types.GetByID(ctx, typeID); err != nil {
		return CheckoutResult{}, err
	}

	r := model.Rental{
		BookingNumber:      booking,
		CustomerID:         strings.TrimSpace(req.CustomerID),
		RegistrationNumber: reg,
		VehicleTypeID:      typeID,
		CheckoutTime:       req.CheckoutTime,
		CheckoutOdometer:   req.CheckoutOdometer,
	}
	// The store's Add is the atomic insert closing the race between the
	// pre-checks above and two concurrent checkouts of the same vehicle.
	if err := s.rentals.Add(ctx, r); err != nil {
		return CheckoutResult{}, err
	}

	s.log.Infof("checked out booking %s: vehicle %s type %s", booking, reg, typeID)
	s.emit(model.RentalEvent{
		Kind:               model.EventCheckout,
		BookingNumber:      booking,
		RegistrationNumber: reg,
		VehicleTypeID:      typeID,
		Location:           s.location,
		Time:               req.CheckoutTime,
	})
	if err := s.sink.RecordCheckout(metrics.CheckoutEvent{
		BookingNumber:      booking,
		RegistrationNumber: reg,
		VehicleTypeID:      typeID,
		Location:           s.location,
		Time:               req.CheckoutTime,
	}); err != nil {
		s.log.Warnf("record checkout metrics: %v", err)
	}

	return CheckoutResult{
		BookingNumber:      booking,
		RegistrationNumber: reg,
		VehicleTypeID:      typeID,
		CheckoutTime:       req.CheckoutTime,
	}, nil
}

// ReturnRequest carries the staff input for completing a rental.
type ReturnRequest struct {
	BookingNumber  string
	ReturnTime     time.Time
	ReturnOdometer decimal.Decimal
	Params         model.PricingParams
}

// ReturnResult reports the billing quantities and the final price.
type ReturnResult struct {
	BookingNumber    string
	Days             int64
	KilometersDriven decimal.Decimal
	RentalPrice      decimal.Decimal
}

// Return validates the request, derives days and distance, prices the rental
// through its stored vehicle-type id and completes the record. The active to
// completed transition happens exactly once per booking.
func (s *Service) Return(ctx context.Context, req ReturnRequest) (ReturnResult, error) {
	booking := strings.TrimSpace(req.BookingNumber)
	if booking == "" {
		return ReturnResult{}, ErrBookingNumberRequired
	}
	if req.ReturnOdometer.IsNegative() {
		return ReturnResult{}, ErrNegativeOdometer
	}
	if err := req.Params.Validate(); err != nil {
		return ReturnResult{}, err
	}

	r, err := s.rentals.Get(ctx, booking)
	if err != nil {
		return ReturnResult{}, err
	}
	if !r.IsActive() {
		return ReturnResult{}, fmt.Errorf("booking %q: %w", booking, ErrAlreadyCompleted)
	}

	// Instant comparisons: wall-clock offsets never matter.
	elapsed := req.ReturnTime.Sub(r.CheckoutTime)
	if elapsed < 0 {
		return ReturnResult{}, ErrReturnBeforeCheckout
	}
	if elapsed < MinDuration {
		return ReturnResult{}, ErrDurationTooShort
	}
	if elapsed > MaxDuration {
		return ReturnResult{}, ErrDurationTooLong
	}
	if req.ReturnOdometer.LessThan(r.CheckoutOdometer) {
		return ReturnResult{}, ErrOdometerRegressed
	}

	days := pricing.RentalDays(r.CheckoutTime, req.ReturnTime)
	km := pricing.Distance(r.CheckoutOdometer, req.ReturnOdometer)

	raw, err := s.selector.Calculate(ctx, r.VehicleTypeID, req.Params, days, km)
	if err != nil {
		var fe pricing.FormulaError
		if errors.As(err, &fe) {
			if serr := s.sink.RecordFormulaFailure(metrics.FormulaFailureEvent{
				VehicleTypeID: fe.TypeID,
				Reason:        fe.Err.Error(),
				Time:          req.ReturnTime,
			}); serr != nil {
				s.log.Warnf("record formula failure: %v", serr)
			}
		}
		return ReturnResult{}, err
	}
	price := pricing.RoundFinal(raw)

	returnTime := req.ReturnTime
	returnOdo := req.ReturnOdometer
	r.ReturnTime = &returnTime
	r.ReturnOdometer = &returnOdo
	r.RentalPrice = &price
	if err := s.rentals.Update(ctx, r); err != nil {
		return ReturnResult{}, fmt.Errorf("complete booking %q: %w", booking, err)
	}

	// Advisory odometer write-back; a failure here never fails the return.
	if ok, err := s.catalog.UpdateOdometer(ctx, r.RegistrationNumber, req.ReturnOdometer); err != nil {
		s.log.Warnf("update odometer for %s: %v", r.RegistrationNumber, err)
	} else if !ok {
		s.log.Warnf("vehicle %s vanished from catalog before odometer update", r.RegistrationNumber)
	}

	s.log.Infof("returned booking %s: %d days, %s km, price %s", booking, days, km, price)
	s.emit(model.RentalEvent{
		Kind:               model.EventReturn,
		BookingNumber:      booking,
		RegistrationNumber: r.RegistrationNumber,
		VehicleTypeID:      r.VehicleTypeID,
		Location:           s.location,
		Time:               req.ReturnTime,
		Days:               days,
		Kilometers:         km,
		RentalPrice:        price,
	})
	if err := s.sink.RecordReturn(metrics.ReturnEvent{
		BookingNumber:      booking,
		RegistrationNumber: r.RegistrationNumber,
		VehicleTypeID:      r.VehicleTypeID,
		Location:           s.location,
		Days:               days,
		Kilometers:         km,
		RentalPrice:        price,
		Time:               req.ReturnTime,
	}); err != nil {
		s.log.Warnf("record return metrics: %v", err)
	}

	return ReturnResult{
		BookingNumber:    booking,
		Days:             days,
		KilometersDriven: km,
		RentalPrice:      price,
	}, nil
}

func (s *Service) emit(ev model.RentalEvent) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}
