// Package export writes rental records to JSON or CSV for back-office
// ingestion.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"time"

	"github.com/fleetrent/rentd/core/model"
)

// WriteJSON writes the rentals to w as a JSON array.
func WriteJSON(w io.Writer, rentals []model.Rental) error {
	enc := json.NewEncoder(w)
	return enc.Encode(rentals)
}

// WriteCSV writes the rentals to w with a fixed header row. Open rentals get
// empty return columns.
func WriteCSV(w io.Writer, rentals []model.Rental) error {
	cw := csv.NewWriter(w)
	header := []string{
		"booking_number", "registration_number", "vehicle_type_id",
		"checkout_time", "checkout_odometer",
		"return_time", "return_odometer", "rental_price",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rentals {
		rec := []string{
			r.BookingNumber,
			r.RegistrationNumber,
			r.VehicleTypeID,
			r.CheckoutTime.Format(time.RFC3339),
			r.CheckoutOdometer.String(),
			"", "", "",
		}
		if r.ReturnTime != nil {
			rec[5] = r.ReturnTime.Format(time.RFC3339)
		}
		if r.ReturnOdometer != nil {
			rec[6] = r.ReturnOdometer.String()
		}
		if r.RentalPrice != nil {
			rec[7] = r.RentalPrice.String()
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write dispatches on format, defaulting to JSON for unknown values.
func Write(w io.Writer, format string, rentals []model.Rental) error {
	if format == "csv" {
		return WriteCSV(w, rentals)
	}
	return WriteJSON(w, rentals)
}
