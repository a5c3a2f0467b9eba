package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetrent/rentd/core/formula"
	"github.com/fleetrent/rentd/core/model"
	"github.com/fleetrent/rentd/core/pricing"
)

// FleetConfig seeds the vehicle-type registry and the vehicle catalog.
type FleetConfig struct {
	VehicleTypes []VehicleTypeConfig `json:"vehicle_types"`
	Vehicles     []VehicleConfig     `json:"vehicles"`
}

// VehicleTypeConfig is one vehicle-type definition.
type VehicleTypeConfig struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Formula     string `json:"formula"`
	Description string `json:"description"`
}

// VehicleConfig is one catalog entry.
type VehicleConfig struct {
	RegistrationNumber string  `json:"registration_number"`
	VehicleTypeID      string  `json:"vehicle_type_id"`
	Odometer           float64 `json:"odometer"`
	Location           string  `json:"location"`
}

// Validate checks every definition, including a full parse and probe
// evaluation of each pricing formula. This is the fail-fast write-time
// boundary: a bad formula never reaches the running registry.
func (c FleetConfig) Validate() error {
	seen := map[string]bool{}
	probe := pricing.ProbeVars()
	for _, t := range c.VehicleTypes {
		id, err := model.NormalizeID(t.ID)
		if err != nil {
			return fmt.Errorf("vehicle type %q: %w", t.ID, err)
		}
		if seen[id] {
			return fmt.Errorf("vehicle type %q: duplicate definition", id)
		}
		seen[id] = true
		if err := formula.Validate(t.Formula, probe); err != nil {
			return fmt.Errorf("vehicle type %q: invalid formula: %w", id, err)
		}
	}
	for _, v := range c.Vehicles {
		if v.RegistrationNumber == "" {
			return fmt.Errorf("vehicle with empty registration number")
		}
		id, err := model.NormalizeID(v.VehicleTypeID)
		if err != nil {
			return fmt.Errorf("vehicle %s: %w", v.RegistrationNumber, err)
		}
		if !seen[id] {
			return fmt.Errorf("vehicle %s: unknown vehicle type %q", v.RegistrationNumber, id)
		}
		if v.Odometer < 0 {
			return fmt.Errorf("vehicle %s: negative odometer", v.RegistrationNumber)
		}
	}
	return nil
}

// Types converts the configured definitions into model values.
func (c FleetConfig) Types() []model.VehicleType {
	out := make([]model.VehicleType, 0, len(c.VehicleTypes))
	for _, t := range c.VehicleTypes {
		out = append(out, model.VehicleType{
			ID:             t.ID,
			DisplayName:    t.DisplayName,
			PricingFormula: t.Formula,
			Description:    t.Description,
		})
	}
	return out
}

// VehicleModels converts the configured catalog entries into model values.
func (c FleetConfig) VehicleModels() []model.Vehicle {
	out := make([]model.Vehicle, 0, len(c.Vehicles))
	for _, v := range c.Vehicles {
		out = append(out, model.Vehicle{
			RegistrationNumber: v.RegistrationNumber,
			VehicleTypeID:      v.VehicleTypeID,
			CurrentOdometer:    decimal.NewFromFloat(v.Odometer),
			Location:           v.Location,
		})
	}
	return out
}
