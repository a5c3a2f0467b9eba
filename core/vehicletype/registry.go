package vehicletype

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/fleetrent/rentd/core/formula"
	"github.com/fleetrent/rentd/core/model"
)

// Registry is an in-memory Store whose whole definition set is swapped in a
// single atomic publish. Readers always see either the previous set or the
// fully validated new one, never a mix.
type Registry struct {
	probe map[string]decimal.Decimal
	defs  atomic.Pointer[map[string]model.VehicleType]
}

// NewRegistry creates an empty registry. Every formula accepted by Reload is
// first evaluated against the probe variable set; a formula that cannot be
// evaluated with the probe values is rejected at write time.
func NewRegistry(probe map[string]decimal.Decimal) *Registry {
	r := &Registry{probe: probe}
	empty := map[string]model.VehicleType{}
	r.defs.Store(&empty)
	return r
}

// Reload validates the complete batch off to the side and publishes it with
// one pointer swap. On any validation failure the live set is left untouched.
func (r *Registry) Reload(types []model.VehicleType) error {
	next := make(map[string]model.VehicleType, len(types))
	for _, t := range types {
		t, err := t.Normalize()
		if err != nil {
			return err
		}
		if _, dup := next[t.ID]; dup {
			return fmt.Errorf("vehicle type %q: duplicate definition", t.ID)
		}
		if err := formula.Validate(t.PricingFormula, r.probe); err != nil {
			return fmt.Errorf("vehicle type %q: invalid pricing formula: %w", t.ID, err)
		}
		next[t.ID] = t
	}
	r.defs.Store(&next)
	return nil
}

// GetByID implements Store.
func (r *Registry) GetByID(_ context.Context, id string) (model.VehicleType, error) {
	key, err := model.NormalizeID(id)
	if err != nil {
		return model.VehicleType{}, err
	}
	defs := *r.defs.Load()
	t, ok := defs[key]
	if !ok {
		return model.VehicleType{}, fmt.Errorf("vehicle type %q: %w", key, ErrNotFound)
	}
	return t, nil
}

// ListAll implements Store.
func (r *Registry) ListAll(context.Context) ([]model.VehicleType, error) {
	defs := *r.defs.Load()
	out := make([]model.VehicleType, 0, len(defs))
	for _, t := range defs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
