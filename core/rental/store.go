package rental

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fleetrent/rentd/core/model"
)

// Store persists rental records. Implementations must make Add an atomic
// conditional insert: the booking-number uniqueness check and the
// one-active-rental-per-vehicle check happen together with the insert, so two
// concurrent checkouts of the same vehicle cannot both succeed. A naive
// check-then-add sequence does not satisfy this contract.
type Store interface {
	Exists(ctx context.Context, bookingNumber string) (bool, error)
	// Get returns the rental or ErrBookingNotFound.
	Get(ctx context.Context, bookingNumber string) (model.Rental, error)
	// HasActive reports whether the vehicle has an active rental.
	HasActive(ctx context.Context, registrationNumber string) (bool, error)
	// Add inserts a new active rental. It fails with ErrBookingExists or
	// ErrVehicleAlreadyRented without inserting anything.
	Add(ctx context.Context, r model.Rental) error
	// Update replaces the rental with the same booking number.
	Update(ctx context.Context, r model.Rental) error
	// ListAll returns every rental, ordered by booking number.
	ListAll(ctx context.Context) ([]model.Rental, error)
}

// MemoryStore is the in-process Store. One mutex guards both indexes, which
// makes Add the single atomic conditional insert the contract asks for.
type MemoryStore struct {
	mu       sync.RWMutex
	byNumber map[string]model.Rental
	active   map[string]string // registration number -> active booking number
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byNumber: map[string]model.Rental{},
		active:   map[string]string{},
	}
}

// Exists implements Store.
func (s *MemoryStore) Exists(_ context.Context, bookingNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byNumber[bookingNumber]
	return ok, nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, bookingNumber string) (model.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byNumber[bookingNumber]
	if !ok {
		return model.Rental{}, fmt.Errorf("booking %q: %w", bookingNumber, ErrBookingNotFound)
	}
	return r, nil
}

// HasActive implements Store.
func (s *MemoryStore) HasActive(_ context.Context, registrationNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[registrationNumber]
	return ok, nil
}

// Add implements Store.
func (s *MemoryStore) Add(_ context.Context, r model.Rental) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byNumber[r.BookingNumber]; ok {
		return fmt.Errorf("booking %q: %w", r.BookingNumber, ErrBookingExists)
	}
	if holder, ok := s.active[r.RegistrationNumber]; ok {
		return fmt.Errorf("vehicle %q held by booking %q: %w", r.RegistrationNumber, holder, ErrVehicleAlreadyRented)
	}
	s.byNumber[r.BookingNumber] = r
	if r.IsActive() {
		s.active[r.RegistrationNumber] = r.BookingNumber
	}
	return nil
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, r model.Rental) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byNumber[r.BookingNumber]; !ok {
		return fmt.Errorf("booking %q: %w", r.BookingNumber, ErrBookingNotFound)
	}
	s.byNumber[r.BookingNumber] = r
	if !r.IsActive() && s.active[r.RegistrationNumber] == r.BookingNumber {
		delete(s.active, r.RegistrationNumber)
	}
	return nil
}

// ListAll implements Store.
func (s *MemoryStore) ListAll(context.Context) ([]model.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Rental, 0, len(s.byNumber))
	for _, r := range s.byNumber {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingNumber < out[j].BookingNumber })
	return out, nil
}
