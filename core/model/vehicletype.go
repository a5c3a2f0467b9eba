package model

import "fmt"

// VehicleType describes one rentable vehicle category and the pricing formula
// used when a rental of that category is returned. Definitions are immutable
// once accepted; a definition whose formula does not validate must never
// reach a type store.
type VehicleType struct {
	ID             string // canonical (trimmed, lowercased)
	DisplayName    string
	PricingFormula string
	Description    string
}

// Normalize returns a copy with the canonical id. Fails when the id is blank.
func (t VehicleType) Normalize() (VehicleType, error) {
	id, err := NormalizeID(t.ID)
	if err != nil {
		return VehicleType{}, fmt.Errorf("vehicle type %q: %w", t.ID, err)
	}
	t.ID = id
	return t, nil
}
