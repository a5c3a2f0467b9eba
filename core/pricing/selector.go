package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetrent/rentd/core/formula"
	"github.com/fleetrent/rentd/core/model"
	"github.com/fleetrent/rentd/core/vehicletype"
)

// The variable names every pricing formula may reference.
const (
	VarBaseDayRate = "baseDayRate"
	VarBaseKmPrice = "baseKmPrice"
	VarDays        = "days"
	VarKm          = "km"
)

// ProbeVars returns the dummy bindings used to validate a formula before it
// is accepted into a type store. The values are strictly positive so a
// well-formed formula cannot trip the runtime division-by-zero check.
func ProbeVars() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		VarBaseDayRate: decimal.NewFromInt(10),
		VarBaseKmPrice: decimal.NewFromInt(1),
		VarDays:        decimal.NewFromInt(1),
		VarKm:          decimal.NewFromInt(1),
	}
}

// FormulaError wraps any evaluator failure so callers of the selector see a
// single failure surface regardless of which evaluator check tripped.
type FormulaError struct {
	TypeID string
	Err    error
}

func (e FormulaError) Error() string {
	return fmt.Sprintf("pricing formula for vehicle type %q failed: %v", e.TypeID, e.Err)
}

func (e FormulaError) Unwrap() error { return e.Err }

// Selector resolves a vehicle type's formula and evaluates it with the four
// standard variables bound.
type Selector struct {
	types vehicletype.Store
}

// NewSelector creates a Selector reading definitions from the given store.
func NewSelector(types vehicletype.Store) *Selector {
	return &Selector{types: types}
}

// Calculate returns the raw, unrounded price for the given vehicle type.
// The final ceiling rounding is the caller's responsibility.
func (s *Selector) Calculate(ctx context.Context, typeID string, params model.PricingParams, days int64, km decimal.Decimal) (decimal.Decimal, error) {
	id, err := model.NormalizeID(typeID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	def, err := s.types.GetByID(ctx, id)
	if err != nil {
		return decimal.Decimal{}, err
	}
	vars := map[string]decimal.Decimal{
		VarBaseDayRate: params.BaseDayRate,
		VarBaseKmPrice: params.BaseKmPrice,
		VarDays:        decimal.NewFromInt(days),
		VarKm:          km,
	}
	raw, err := formula.Evaluate(def.PricingFormula, vars)
	if err != nil {
		return decimal.Decimal{}, FormulaError{TypeID: id, Err: err}
	}
	return raw, nil
}
