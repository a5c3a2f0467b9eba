package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetrent/rentd/core/model"
	"github.com/fleetrent/rentd/pkg/export"
)

func sampleRentals() []model.Rental {
	checkout := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	ret := checkout.Add(50 * time.Hour)
	retOdo := decimal.NewFromInt(5150)
	price := decimal.NewFromInt(465)
	return []model.Rental{
		{
			BookingNumber:      "BK1",
			RegistrationNumber: "WAG42",
			VehicleTypeID:      "station-wagon",
			CheckoutTime:       checkout,
			CheckoutOdometer:   decimal.NewFromInt(5000),
			ReturnTime:         &ret,
			ReturnOdometer:     &retOdo,
			RentalPrice:        &price,
		},
		{
			BookingNumber:      "BK2",
			RegistrationNumber: "ABC123",
			VehicleTypeID:      "small-car",
			CheckoutTime:       checkout,
			CheckoutOdometer:   decimal.NewFromInt(1000),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, sampleRentals()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "booking_number")
	assert.Contains(t, lines[1], "BK1")
	assert.Contains(t, lines[1], "465")
	// open rental keeps its return columns empty
	assert.True(t, strings.HasSuffix(lines[2], ",,,"), "got %q", lines[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, sampleRentals()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
}

func TestWriteDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, "yaml", sampleRentals()))
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
