// Package fleet exposes the vehicle catalog the rental workflows read from.
package fleet

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fleetrent/rentd/core/model"
)

// ErrNotFound is returned when a registration number is not in the catalog.
var ErrNotFound = errors.New("vehicle not found")

// Catalog is the read/write port for vehicle records. The odometer update is
// advisory bookkeeping after a return, never part of rental validation.
type Catalog interface {
	GetByRegistration(ctx context.Context, reg string) (model.Vehicle, error)
	ListAll(ctx context.Context) ([]model.Vehicle, error)
	// UpdateOdometer stores the new reading and reports whether the
	// vehicle exists.
	UpdateOdometer(ctx context.Context, reg string, value decimal.Decimal) (bool, error)
}

// MemoryCatalog is an in-memory Catalog keyed by registration number.
type MemoryCatalog struct {
	mu   sync.RWMutex
	data map[string]model.Vehicle
}

// NewMemoryCatalog creates a catalog seeded with the given vehicles. Every
// vehicle must validate.
func NewMemoryCatalog(vehicles ...model.Vehicle) (*MemoryCatalog, error) {
	c := &MemoryCatalog{data: make(map[string]model.Vehicle, len(vehicles))}
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		id, err := model.NormalizeID(v.VehicleTypeID)
		if err != nil {
			return nil, err
		}
		v.VehicleTypeID = id
		c.data[v.RegistrationNumber] = v
	}
	return c, nil
}

// GetByRegistration implements Catalog.
func (c *MemoryCatalog) GetByRegistration(_ context.Context, reg string) (model.Vehicle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[reg]
	if !ok {
		return model.Vehicle{}, ErrNotFound
	}
	return v, nil
}

// ListAll implements Catalog.
func (c *MemoryCatalog) ListAll(context.Context) ([]model.Vehicle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Vehicle, 0, len(c.data))
	for _, v := range c.data {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegistrationNumber < out[j].RegistrationNumber
	})
	return out, nil
}

// UpdateOdometer implements Catalog.
func (c *MemoryCatalog) UpdateOdometer(_ context.Context, reg string, value decimal.Decimal) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[reg]
	if !ok {
		return false, nil
	}
	v.CurrentOdometer = value
	c.data[reg] = v
	return true, nil
}
