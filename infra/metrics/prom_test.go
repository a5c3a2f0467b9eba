package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	coremetrics "github.com/fleetrent/rentd/core/metrics"
)

func TestPromSink_RecordCheckout(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	ev := coremetrics.CheckoutEvent{
		BookingNumber: "BK1", RegistrationNumber: "V1",
		VehicleTypeID: "small-car", Location: "north", Time: time.Now(),
	}
	if err := sink.RecordCheckout(ev); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := sink.RecordCheckout(ev); err != nil {
		t.Fatalf("record: %v", err)
	}

	got := testutil.ToFloat64(sink.checkouts.WithLabelValues("small-car", "north"))
	if got != 2 {
		t.Fatalf("checkouts counter = %v, want 2", got)
	}
}

func TestPromSink_RecordReturn(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	err = sink.RecordReturn(coremetrics.ReturnEvent{
		BookingNumber: "BK1", VehicleTypeID: "small-car", Location: "north",
		Days: 3, Kilometers: decimal.NewFromInt(150), RentalPrice: decimal.NewFromInt(300),
		Time: time.Now(),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if got := testutil.ToFloat64(sink.returns.WithLabelValues("small-car", "north")); got != 1 {
		t.Fatalf("returns counter = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(sink.durationDays); got != 1 {
		t.Fatalf("duration series = %v, want 1", got)
	}
}

func TestPromSink_RecordFormulaFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordFormulaFailure(coremetrics.FormulaFailureEvent{
		VehicleTypeID: "odd", Reason: "division by zero", Time: time.Now(),
	}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := testutil.ToFloat64(sink.formulaFailures.WithLabelValues("odd")); got != 1 {
		t.Fatalf("failures counter = %v, want 1", got)
	}
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
